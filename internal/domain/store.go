package domain

import (
	"time"

	"github.com/google/uuid"
)

// GroupStore is a store registered in a group, referenced by name from
// offers and availability records. Name uniqueness within a group is
// advisory: the service checks case-insensitively before creating, but
// storage does not enforce it.
type GroupStore struct {
	ID        uuid.UUID
	GroupID   uuid.UUID
	Nombre    string
	Tipo      StoreTipo
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

// StoreUpdateParams holds partial update fields for a store.
// nil = don't change.
type StoreUpdateParams struct {
	Nombre *string
	Tipo   *StoreTipo
}
