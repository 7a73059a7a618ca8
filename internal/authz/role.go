package authz

import "fmt"

// Role is a named access level. Roles form a total order; each role grants
// access to itself and every role below it.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleStaff      Role = "STAFF"
	RolePrincipal  Role = "PRINCIPAL"
	RoleTeacher    Role = "TEACHER"
	RoleStudent    Role = "STUDENT"
)

// roleRank orders roles from most to least privileged. Higher rank wins.
var roleRank = map[Role]int{
	RoleSuperAdmin: 6,
	RoleAdmin:      5,
	RoleStaff:      4,
	RolePrincipal:  3,
	RoleTeacher:    2,
	RoleStudent:    1,
}

// Valid reports whether r is one of the six known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants at least the access level of min.
// Unknown roles (including the empty role) never satisfy any minimum.
func (r Role) AtLeast(min Role) bool {
	rr, ok := roleRank[r]
	if !ok {
		return false
	}
	mr, ok := roleRank[min]
	if !ok {
		return false
	}
	return rr >= mr
}

// ParseRole validates a raw role string, e.g. from JWT claims.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
