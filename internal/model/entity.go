package model

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the fields every entity shares: a unique id, a creation
// timestamp and an advisory soft-disable flag. IsActive is not enforced by
// the store; callers that care must check it explicitly.
type Base struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// EntityID returns the entity's unique identifier.
func (b *Base) EntityID() uuid.UUID { return b.ID }

// SetEntityID stamps the identifier assigned by the store on create.
func (b *Base) SetEntityID(id uuid.UUID) { b.ID = id }

// EntityCreatedAt returns the creation timestamp.
func (b *Base) EntityCreatedAt() time.Time { return b.CreatedAt }

// SetCreatedAt stamps the creation timestamp assigned by the store.
func (b *Base) SetCreatedAt(t time.Time) { b.CreatedAt = t }

// deref exposes an optional ownership id as a scope field value.
// A nil pointer means the row has no such field, so equality never matches.
func deref(id *uuid.UUID) (any, bool) {
	if id == nil {
		return nil, false
	}
	return *id, true
}
