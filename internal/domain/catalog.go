package domain

import (
	"time"

	"github.com/google/uuid"
)

// StoreAvailability records where a catalog item has been seen, embedded in
// the item rather than stored as a separate entity.
type StoreAvailability struct {
	Tienda string   `json:"tienda"`
	Precio *float64 `json:"precio,omitempty"`
	URL    *string  `json:"url,omitempty"`
}

// Original is a reference fragrance in a group's catalog.
type Original struct {
	ID              uuid.UUID
	GroupID         uuid.UUID
	Nombre          string
	Marca           *string
	ML              *int
	URLFragrantica  *string
	ImagenPrincipal *string
	Tags            []string
	Slug            string
	Tiendas         []StoreAvailability
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
	UpdatedBy       uuid.UUID
	UpdatedAt       time.Time
}

// DupeURLs groups the external links attached to a dupe.
type DupeURLs struct {
	Fragrantica *string  `json:"fragrantica,omitempty"`
	Marca       *string  `json:"marca,omitempty"`
	Otros       []string `json:"otros,omitempty"`
}

// Dupe is a candidate clone of an Original. The avg* fields and VotesCount
// are denormalized from votes and refreshed best-effort after each vote save;
// they may lag the vote table.
type Dupe struct {
	ID                uuid.UUID
	GroupID           uuid.UUID
	OriginalID        uuid.UUID
	Nombre            string
	Marca             *string
	ML                *int
	ImagenPrincipal   *string
	Tags              []string
	Slug              string
	URLs              DupeURLs
	Tiendas           []StoreAvailability
	AvgParecido       float64
	AvgGustoAlAplicar float64
	AvgGustoDespues   float64
	VotesCount        int
	CreatedBy         uuid.UUID
	CreatedAt         time.Time
	UpdatedBy         uuid.UUID
	UpdatedAt         time.Time
}

// OriginalUpdateParams holds partial update fields for an original.
// nil = don't change; a pointer to the zero value writes that value
// (ml=0 is storable). Slug is recomputed by the service when Nombre changes.
type OriginalUpdateParams struct {
	Nombre          *string
	Marca           *string
	ML              *int
	URLFragrantica  *string
	ImagenPrincipal *string
	Tags            *[]string
	Slug            *string
	Tiendas         *[]StoreAvailability
}

// DupeUpdateParams holds partial update fields for a dupe.
type DupeUpdateParams struct {
	OriginalID      *uuid.UUID
	Nombre          *string
	Marca           *string
	ML              *int
	ImagenPrincipal *string
	Tags            *[]string
	Slug            *string
	URLs            *DupeURLs
	Tiendas         *[]StoreAvailability
}
