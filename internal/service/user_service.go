package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// UserService handles login identities. Password, role and active-state are
// controlled transitions with their own methods; the generic update path
// only ever touches profile fields and always preserves the rest.
type UserService struct {
	users *store.Store[*model.User]
	auth  *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(users *store.Store[*model.User], auth *AuthService) *UserService {
	return &UserService{users: users, auth: auth}
}

// ListUsers returns the users visible to p.
func (s *UserService) ListUsers(ctx context.Context, p authz.Principal, opts store.ListOptions) ([]*model.User, error) {
	if err := requireRole(p, authz.RoleStaff); err != nil {
		return nil, err
	}
	return s.users.List(ctx, p, opts)
}

// GetUser retrieves one user by id.
func (s *UserService) GetUser(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.User, error) {
	if err := requireRole(p, authz.RoleStaff); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, p, id)
}

// CreateUser creates a login identity. Nobody can mint a role above their
// own, and only SuperAdmins create other SuperAdmins.
func (s *UserService) CreateUser(ctx context.Context, p authz.Principal, req *model.CreateUserRequest) (*model.User, error) {
	if err := requireRole(p, authz.RoleAdmin); err != nil {
		return nil, err
	}
	role, err := authz.ParseRole(req.Role)
	if err != nil {
		return nil, validationErr("role", "unknown role")
	}
	if !p.Role.AtLeast(role) {
		return nil, ErrForbidden
	}

	var schoolID *uuid.UUID
	if role != authz.RoleSuperAdmin {
		sid, err := tenantSchool(p, req.SchoolID)
		if err != nil {
			return nil, err
		}
		schoolID = &sid
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		SchoolID:     schoolID,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         role,
	}
	user.IsActive = true
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser replaces a user's profile fields, preserving password, role and
// active-state.
func (s *UserService) UpdateUser(ctx context.Context, p authz.Principal, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	if err := requireRole(p, authz.RoleAdmin); err != nil {
		return nil, err
	}
	existing, err := s.users.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		SchoolID:     existing.SchoolID,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: existing.PasswordHash,
		Role:         existing.Role,
	}
	user.IsActive = existing.IsActive
	if err := s.users.Update(ctx, p, id, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword is the controlled password transition.
func (s *UserService) ChangePassword(ctx context.Context, p authz.Principal, id uuid.UUID, password string) error {
	if err := requireRole(p, authz.RoleAdmin); err != nil {
		return err
	}
	existing, err := s.users.GetByID(ctx, p, id)
	if err != nil {
		return err
	}
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}
	existing.PasswordHash = hash
	return s.users.Update(ctx, p, id, existing)
}

// ChangeRole is the controlled role transition, bounded by the caller's own
// role.
func (s *UserService) ChangeRole(ctx context.Context, p authz.Principal, id uuid.UUID, rawRole string) error {
	if err := requireRole(p, authz.RoleAdmin); err != nil {
		return err
	}
	role, err := authz.ParseRole(rawRole)
	if err != nil {
		return validationErr("role", "unknown role")
	}
	if !p.Role.AtLeast(role) {
		return ErrForbidden
	}
	existing, err := s.users.GetByID(ctx, p, id)
	if err != nil {
		return err
	}
	existing.Role = role
	return s.users.Update(ctx, p, id, existing)
}

// SetActive is the controlled active-state transition. Disabling also resets
// any live session so the change takes effect immediately.
func (s *UserService) SetActive(ctx context.Context, p authz.Principal, id uuid.UUID, active bool) error {
	if err := requireRole(p, authz.RoleAdmin); err != nil {
		return err
	}
	existing, err := s.users.GetByID(ctx, p, id)
	if err != nil {
		return err
	}
	existing.IsActive = active
	if err := s.users.Update(ctx, p, id, existing); err != nil {
		return err
	}
	if !active {
		return s.auth.ResetSession(ctx, id)
	}
	return nil
}

// DeleteUser hard-deletes a login identity.
func (s *UserService) DeleteUser(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := requireRole(p, authz.RoleAdmin); err != nil {
		return err
	}
	return s.users.Delete(ctx, p, id)
}
