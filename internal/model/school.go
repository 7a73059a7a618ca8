package model

import "github.com/sekolahub/sekolahub-backend/internal/authz"

// School is the tenant root. It has no parent scope; non-SuperAdmin
// principals only ever see their own school row.
type School struct {
	Base
	Name string `json:"name"`
	Code string `json:"code"` // unique per deployment
}

// EntityKind identifies the school entity kind.
func (s *School) EntityKind() authz.Kind { return authz.KindSchool }

// ScopeField exposes the fields scope predicates may reference.
func (s *School) ScopeField(name string) (any, bool) {
	if name == authz.FieldID {
		return s.ID, true
	}
	return nil, false
}

// CreateSchoolRequest is the payload for creating a school.
type CreateSchoolRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
	Code string `json:"code" binding:"required,min=2,max=32"`
}
