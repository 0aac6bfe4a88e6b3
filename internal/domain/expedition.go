package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expedition is a planned store visit. Clients treat the most recent
// expedition with estado=activa as "the" active one; nothing enforces a
// single active expedition per group.
type Expedition struct {
	ID        uuid.UUID
	GroupID   uuid.UUID
	Nombre    string
	Fecha     time.Time
	Estado    ExpeditionEstado
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

// ExpeditionItem is an entry on an expedition's try-list. It references a
// catalog dupe or original, or carries a free-text nombre for items not in
// the catalog; at least one of the three must be set.
type ExpeditionItem struct {
	ID           uuid.UUID
	ExpeditionID uuid.UUID
	DupeID       *uuid.UUID
	OriginalID   *uuid.UUID
	Nombre       *string
	Status       ExpeditionItemStatus
	NotasRapidas *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UpdatedBy    uuid.UUID
}

// RefersTo reports whether the item points at the same thing as the given
// references. Used for the advisory duplicate check when adding items.
func (it *ExpeditionItem) RefersTo(dupeID, originalID *uuid.UUID, nombre *string) bool {
	if it.DupeID != nil && dupeID != nil {
		return *it.DupeID == *dupeID
	}
	if it.OriginalID != nil && originalID != nil {
		return *it.OriginalID == *originalID
	}
	if it.Nombre != nil && nombre != nil {
		return *it.Nombre == *nombre
	}
	return false
}
