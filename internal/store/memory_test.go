package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/stretchr/testify/require"
)

// note is a minimal tenant-scoped entity for store tests.
type note struct {
	id        uuid.UUID
	createdAt time.Time
	schoolID  uuid.UUID
	title     string
}

func (n *note) EntityKind() authz.Kind     { return authz.KindModule }
func (n *note) EntityID() uuid.UUID        { return n.id }
func (n *note) SetEntityID(id uuid.UUID)   { n.id = id }
func (n *note) EntityCreatedAt() time.Time { return n.createdAt }
func (n *note) SetCreatedAt(t time.Time)   { n.createdAt = t }

func (n *note) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID:
		return n.id, true
	case authz.FieldSchoolID:
		return n.schoolID, true
	}
	return nil, false
}

func tenant(schoolID uuid.UUID) authz.Principal {
	return authz.Principal{Role: authz.RoleAdmin, SchoolID: &schoolID, Authenticated: true}
}

func seedNotes(t *testing.T, s *Store[*note], schoolID uuid.UUID, titles ...string) []*note {
	t.Helper()
	ctx := context.Background()
	out := make([]*note, 0, len(titles))
	for _, title := range titles {
		n := &note{schoolID: schoolID, title: title}
		require.NoError(t, s.Create(ctx, n))
		require.NotEqual(t, uuid.Nil, n.id, "create assigns an id")
		require.False(t, n.createdAt.IsZero(), "create stamps created_at")
		out = append(out, n)
	}
	return out
}

func TestStoreListScoping(t *testing.T) {
	ctx := context.Background()
	s := New(authz.KindModule, NewMemoryBackend[*note]())

	schoolA := uuid.New()
	schoolB := uuid.New()
	seedNotes(t, s, schoolA, "a1", "a2")
	seedNotes(t, s, schoolB, "b1")

	got, err := s.List(ctx, tenant(schoolA), ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, n := range got {
		require.Equal(t, schoolA, n.schoolID)
	}

	got, err = s.List(ctx, authz.SuperAdmin(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	got, err = s.List(ctx, authz.Principal{}, ListOptions{})
	require.NoError(t, err)
	require.Empty(t, got, "unauthenticated principal lists nothing")
}

func TestStoreListPagination(t *testing.T) {
	ctx := context.Background()
	s := New(authz.KindModule, NewMemoryBackend[*note]())

	schoolID := uuid.New()
	seeded := seedNotes(t, s, schoolID, "n1", "n2", "n3", "n4")

	got, err := s.List(ctx, tenant(schoolID), ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, seeded[1].id, got[0].id, "insertion order is stable")
	require.Equal(t, seeded[2].id, got[1].id)
}

func TestStoreListCallerFilter(t *testing.T) {
	ctx := context.Background()
	s := New(authz.KindModule, NewMemoryBackend[*note]())

	schoolA := uuid.New()
	schoolB := uuid.New()
	seedNotes(t, s, schoolA, "a1")
	target := seedNotes(t, s, schoolB, "b1")[0]

	// A caller filter can only narrow; it never escapes the scope.
	opts := ListOptions{Filter: authz.FieldEq(authz.FieldID, target.id)}
	got, err := s.List(ctx, tenant(schoolA), opts)
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = s.List(ctx, tenant(schoolB), opts)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestStoreGetByIDMasksOutOfScope(t *testing.T) {
	ctx := context.Background()
	s := New(authz.KindModule, NewMemoryBackend[*note]())

	schoolA := uuid.New()
	schoolB := uuid.New()
	n := seedNotes(t, s, schoolA, "a1")[0]

	got, err := s.GetByID(ctx, tenant(schoolA), n.id)
	require.NoError(t, err)
	require.Equal(t, "a1", got.title)

	_, err = s.GetByID(ctx, tenant(schoolB), n.id)
	require.ErrorIs(t, err, ErrNotFound, "cross-tenant read looks like a missing row")

	_, err = s.GetByID(ctx, tenant(schoolA), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUpdateScoping(t *testing.T) {
	ctx := context.Background()
	s := New(authz.KindModule, NewMemoryBackend[*note]())

	schoolA := uuid.New()
	schoolB := uuid.New()
	n := seedNotes(t, s, schoolA, "before")[0]

	err := s.Update(ctx, tenant(schoolB), n.id, &note{schoolID: schoolA, title: "stolen"})
	require.ErrorIs(t, err, ErrNotFound, "cross-tenant update is masked")

	replacement := &note{schoolID: schoolA, title: "after"}
	require.NoError(t, s.Update(ctx, tenant(schoolA), n.id, replacement))
	require.Equal(t, n.id, replacement.id, "update preserves the id")
	require.Equal(t, n.createdAt, replacement.createdAt, "update preserves created_at")

	got, err := s.GetByID(ctx, tenant(schoolA), n.id)
	require.NoError(t, err)
	require.Equal(t, "after", got.title)
}

func TestStoreDeleteScoping(t *testing.T) {
	ctx := context.Background()
	s := New(authz.KindModule, NewMemoryBackend[*note]())

	schoolA := uuid.New()
	schoolB := uuid.New()
	n := seedNotes(t, s, schoolA, "doomed")[0]

	require.ErrorIs(t, s.Delete(ctx, tenant(schoolB), n.id), ErrNotFound)

	require.NoError(t, s.Delete(ctx, tenant(schoolA), n.id))
	require.ErrorIs(t, s.Delete(ctx, tenant(schoolA), n.id), ErrNotFound,
		"deleting an already-deleted id reads as not found")

	_, err := s.GetByID(ctx, tenant(schoolA), n.id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreCount(t *testing.T) {
	ctx := context.Background()
	s := New(authz.KindModule, NewMemoryBackend[*note]())

	schoolA := uuid.New()
	schoolB := uuid.New()
	seedNotes(t, s, schoolA, "a1", "a2", "a3")
	seedNotes(t, s, schoolB, "b1")

	n, err := s.Count(ctx, tenant(schoolA), ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 3, n)

	n, err = s.Count(ctx, authz.SuperAdmin(), ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 4, n)

	n, err = s.Count(ctx, authz.Principal{}, ListOptions{})
	require.NoError(t, err)
	require.Zero(t, n)
}
