// Package store implements the generic, scope-aware entity store. A Store
// composes the scope filter engine with a backend: every read and write runs
// behind the predicate derived from the calling principal, so a row outside
// scope behaves exactly like a row that does not exist.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// ErrNotFound is returned when an id does not exist or falls outside the
// principal's scope. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("entity not found")

// Entity is the capability set the generic store needs from a row type:
// identifier, creation timestamp, and scope-field access.
type Entity interface {
	authz.FieldGetter
	EntityKind() authz.Kind
	EntityID() uuid.UUID
	SetEntityID(uuid.UUID)
	EntityCreatedAt() time.Time
	SetCreatedAt(time.Time)
}

// ListOptions carries the optional caller filter and pagination window for
// List and Count. The zero Filter matches everything.
type ListOptions struct {
	Filter authz.Predicate
	Limit  int
	Offset int
}

// Backend is a storage adapter exposing predicate-filterable reads and
// id-keyed writes. Update and Delete must report ErrNotFound when the id
// does not match the predicate, without revealing whether the row exists.
type Backend[T Entity] interface {
	Select(ctx context.Context, pred authz.Predicate, opts ListOptions) ([]T, error)
	SelectByID(ctx context.Context, pred authz.Predicate, id uuid.UUID) (T, error)
	Insert(ctx context.Context, e T) error
	Update(ctx context.Context, pred authz.Predicate, id uuid.UUID, e T) error
	Delete(ctx context.Context, pred authz.Predicate, id uuid.UUID) error
	Count(ctx context.Context, pred authz.Predicate) (int, error)
}

// Store is the scoped CRUD surface for one entity kind. The scope predicate
// is recomputed from the principal on every call; nothing is cached across
// requests.
type Store[T Entity] struct {
	kind    authz.Kind
	backend Backend[T]
}

// New creates a scoped store for kind on top of backend.
func New[T Entity](kind authz.Kind, backend Backend[T]) *Store[T] {
	return &Store[T]{kind: kind, backend: backend}
}

// Kind returns the entity kind this store serves.
func (s *Store[T]) Kind() authz.Kind { return s.kind }

// List returns the rows visible to p, optionally narrowed by opts.Filter.
// The scope predicate and the caller filter compose conjunctively.
func (s *Store[T]) List(ctx context.Context, p authz.Principal, opts ListOptions) ([]T, error) {
	pred := authz.ScopeFor(p, s.kind)
	if pred.IsNone() {
		return nil, nil
	}
	return s.backend.Select(ctx, pred, opts)
}

// GetByID returns the row with the given id if it is inside p's scope.
func (s *Store[T]) GetByID(ctx context.Context, p authz.Principal, id uuid.UUID) (T, error) {
	pred := authz.ScopeFor(p, s.kind)
	if pred.IsNone() {
		var zero T
		return zero, ErrNotFound
	}
	return s.backend.SelectByID(ctx, pred, id)
}

// Create inserts e, assigning a fresh id and creation timestamp. Scope is
// not consulted here; the calling service stamps ownership fields onto the
// payload before insert.
func (s *Store[T]) Create(ctx context.Context, e T) error {
	return s.backend.Insert(ctx, e)
}

// Update replaces the row with id by e (full-row replace), failing with
// ErrNotFound when id lies outside p's scope even if the row exists.
func (s *Store[T]) Update(ctx context.Context, p authz.Principal, id uuid.UUID, e T) error {
	pred := authz.ScopeFor(p, s.kind)
	if pred.IsNone() {
		return ErrNotFound
	}
	return s.backend.Update(ctx, pred, id, e)
}

// Delete hard-deletes the row with id under the same scoping rule as Update.
// Deleting an already-deleted id yields ErrNotFound, not an error state.
func (s *Store[T]) Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	pred := authz.ScopeFor(p, s.kind)
	if pred.IsNone() {
		return ErrNotFound
	}
	return s.backend.Delete(ctx, pred, id)
}

// Count returns the number of rows visible to p, narrowed by opts.Filter.
func (s *Store[T]) Count(ctx context.Context, p authz.Principal, opts ListOptions) (int, error) {
	pred := authz.ScopeFor(p, s.kind)
	if pred.IsNone() {
		return 0, nil
	}
	return s.backend.Count(ctx, pred.And(opts.Filter))
}
