package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// MemoryBackend is an in-memory Backend evaluating predicates against each
// row's scope fields. It backs unit tests and small deployments; iteration
// order is insertion order, which keeps List results stable.
type MemoryBackend[T Entity] struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]T
	order []uuid.UUID
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend[T Entity]() *MemoryBackend[T] {
	return &MemoryBackend[T]{rows: make(map[uuid.UUID]T)}
}

// Select returns rows matching both the scope predicate and the caller
// filter, honoring the pagination window.
func (m *MemoryBackend[T]) Select(ctx context.Context, pred authz.Predicate, opts ListOptions) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []T
	skipped := 0
	for _, id := range m.order {
		row := m.rows[id]
		if !pred.Matches(row) || !opts.Filter.Matches(row) {
			continue
		}
		if opts.Offset > 0 && skipped < opts.Offset {
			skipped++
			continue
		}
		out = append(out, row)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}

// SelectByID returns the row with id when it matches the predicate.
func (m *MemoryBackend[T]) SelectByID(ctx context.Context, pred authz.Predicate, id uuid.UUID) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[id]
	if !ok || !pred.Matches(row) {
		var zero T
		return zero, ErrNotFound
	}
	return row, nil
}

// Insert stores e, assigning an id and creation timestamp when unset.
func (m *MemoryBackend[T]) Insert(ctx context.Context, e T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.EntityID() == uuid.Nil {
		e.SetEntityID(uuid.New())
	}
	if e.EntityCreatedAt().IsZero() {
		e.SetCreatedAt(time.Now().UTC())
	}
	m.rows[e.EntityID()] = e
	m.order = append(m.order, e.EntityID())
	return nil
}

// Update replaces the stored row with e, preserving id and creation
// timestamp. An id outside the predicate reads as not found.
func (m *MemoryBackend[T]) Update(ctx context.Context, pred authz.Predicate, id uuid.UUID, e T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.rows[id]
	if !ok || !pred.Matches(existing) {
		return ErrNotFound
	}
	e.SetEntityID(id)
	e.SetCreatedAt(existing.EntityCreatedAt())
	m.rows[id] = e
	return nil
}

// Delete hard-deletes the row with id when it matches the predicate.
func (m *MemoryBackend[T]) Delete(ctx context.Context, pred authz.Predicate, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.rows[id]
	if !ok || !pred.Matches(existing) {
		return ErrNotFound
	}
	delete(m.rows, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of rows matching the predicate.
func (m *MemoryBackend[T]) Count(ctx context.Context, pred authz.Predicate) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, id := range m.order {
		if pred.Matches(m.rows[id]) {
			n++
		}
	}
	return n, nil
}
