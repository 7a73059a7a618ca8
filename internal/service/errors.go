package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// Common service errors. Scope misses are never reported here — rows outside
// a principal's scope surface as store.ErrNotFound, indistinguishable from
// rows that do not exist.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("operation not permitted for role")
	ErrConflict        = errors.New("duplicate resource")
)

// ValidationError reports payload-level failures with field detail.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func validationErr(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// requireRole gates an operation on a minimum role. It runs before any store
// access, so hierarchy failures never touch data.
func requireRole(p authz.Principal, min authz.Role) error {
	if !p.Authenticated {
		return ErrUnauthenticated
	}
	if !p.Role.AtLeast(min) {
		return ErrForbidden
	}
	return nil
}

// tenantSchool decides which school a new tenant-scoped row belongs to.
// SuperAdmins must say explicitly; everyone else is pinned to their own
// school regardless of what the payload claims.
func tenantSchool(p authz.Principal, requested *uuid.UUID) (uuid.UUID, error) {
	if p.Role == authz.RoleSuperAdmin {
		if requested == nil {
			return uuid.Nil, validationErr("school_id", "school_id is required for super admins")
		}
		return *requested, nil
	}
	if p.SchoolID == nil {
		return uuid.Nil, ErrForbidden
	}
	return *p.SchoolID, nil
}
