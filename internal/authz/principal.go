package authz

import "github.com/google/uuid"

// Principal is the resolved identity for the current request: role plus the
// ownership ids scoping decisions hang off. It is an immutable value passed
// explicitly into every scoping call; there is no ambient request state.
type Principal struct {
	Role          Role
	SchoolID      *uuid.UUID
	TeacherID     *uuid.UUID
	StudentID     *uuid.UUID
	GradeID       *uuid.UUID
	Authenticated bool
}

// Bypass reports whether p skips scoping entirely. Only two principals
// qualify: SuperAdmin, and an authenticated internal caller carrying no role
// (administrative override). An unauthenticated principal never bypasses.
func (p Principal) Bypass() bool {
	return p.Authenticated && (p.Role == "" || p.Role == RoleSuperAdmin)
}

// SuperAdmin builds the internal all-access principal used by trusted
// in-process callers such as seeders and workers.
func SuperAdmin() Principal {
	return Principal{Role: RoleSuperAdmin, Authenticated: true}
}
