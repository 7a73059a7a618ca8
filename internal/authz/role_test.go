package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleSuperAdmin, RoleAdmin, RoleStaff, RolePrincipal, RoleTeacher, RoleStudent} {
		require.True(t, r.Valid(), "role %s should be valid", r)
	}
	require.False(t, Role("").Valid())
	require.False(t, Role("JANITOR").Valid())
	require.False(t, Role("admin").Valid(), "role matching is case sensitive")
}

func TestRoleAtLeast(t *testing.T) {
	ordered := []Role{RoleStudent, RoleTeacher, RolePrincipal, RoleStaff, RoleAdmin, RoleSuperAdmin}

	for i, r := range ordered {
		for j, min := range ordered {
			got := r.AtLeast(min)
			want := i >= j
			require.Equal(t, want, got, "%s.AtLeast(%s)", r, min)
		}
	}
}

func TestRoleAtLeastUnknown(t *testing.T) {
	require.False(t, Role("").AtLeast(RoleStudent))
	require.False(t, Role("GHOST").AtLeast(RoleStudent))
	require.False(t, RoleSuperAdmin.AtLeast(Role("GHOST")), "unknown minimum is never satisfied")
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("TEACHER")
	require.NoError(t, err)
	require.Equal(t, RoleTeacher, r)

	_, err = ParseRole("teacher")
	require.Error(t, err)

	_, err = ParseRole("")
	require.Error(t, err)
}
