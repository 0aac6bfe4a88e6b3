package domain

import (
	"time"

	"github.com/google/uuid"
)

// Offer is a price sighting for a dupe at a store on a given date.
type Offer struct {
	ID        uuid.UUID
	DupeID    uuid.UUID
	Tienda    string
	Precio    float64
	Fecha     time.Time
	URLTienda *string
	Nota      *string
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

// MinOfferPrice returns the offer with the lowest price, or nil for an
// empty list.
func MinOfferPrice(offers []Offer) *Offer {
	if len(offers) == 0 {
		return nil
	}
	min := &offers[0]
	for i := 1; i < len(offers); i++ {
		if offers[i].Precio < min.Precio {
			min = &offers[i]
		}
	}
	return min
}

// OffersByTienda groups offers by store name, preserving the input order
// within each store.
func OffersByTienda(offers []Offer) map[string][]Offer {
	out := make(map[string][]Offer)
	for _, o := range offers {
		out[o.Tienda] = append(out[o.Tienda], o)
	}
	return out
}
