package original

import (
	"strings"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// CreateInput is the input for Create.
type CreateInput struct {
	GroupID        uuid.UUID
	Nombre         string
	Marca          *string
	ML             *int
	URLFragrantica *string
	Tags           []string
	Tiendas        []domain.StoreAvailability
}

// Validate checks the input fields.
func (in CreateInput) Validate() error {
	var fields []domain.FieldError
	if strings.TrimSpace(in.Nombre) == "" {
		fields = append(fields, domain.FieldError{Field: "nombre", Message: "is required"})
	}
	if in.ML != nil && *in.ML < 0 {
		fields = append(fields, domain.FieldError{Field: "ml", Message: "must not be negative"})
	}
	fields = append(fields, validateTiendas(in.Tiendas)...)
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// UpdateInput is the input for Update. Nil fields stay unchanged.
type UpdateInput struct {
	GroupID        uuid.UUID
	ID             uuid.UUID
	Nombre         *string
	Marca          *string
	ML             *int
	URLFragrantica *string
	Tags           *[]string
	Tiendas        *[]domain.StoreAvailability
}

// Validate checks the input fields.
func (in UpdateInput) Validate() error {
	var fields []domain.FieldError
	if in.Nombre != nil && strings.TrimSpace(*in.Nombre) == "" {
		fields = append(fields, domain.FieldError{Field: "nombre", Message: "cannot be empty"})
	}
	if in.ML != nil && *in.ML < 0 {
		fields = append(fields, domain.FieldError{Field: "ml", Message: "must not be negative"})
	}
	if in.Tiendas != nil {
		fields = append(fields, validateTiendas(*in.Tiendas)...)
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

func validateTiendas(tiendas []domain.StoreAvailability) []domain.FieldError {
	var fields []domain.FieldError
	for _, t := range tiendas {
		if strings.TrimSpace(t.Tienda) == "" {
			fields = append(fields, domain.FieldError{Field: "tiendas", Message: "tienda name is required"})
			break
		}
		if t.Precio != nil && *t.Precio < 0 {
			fields = append(fields, domain.FieldError{Field: "tiendas", Message: "precio must not be negative"})
			break
		}
	}
	return fields
}
