package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
)

// AuthRepository holds the lookups that run before a principal exists:
// resolving a login email to a user, and a user to their teacher or student
// record. These deliberately bypass scoping — there is nobody to scope as yet.
type AuthRepository struct {
	pool *pgxpool.Pool
}

// NewAuthRepository creates a new AuthRepository.
func NewAuthRepository(pool *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{pool: pool}
}

// GetUserByEmail retrieves a user by email for credential checking.
func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	var role string
	err := r.pool.QueryRow(ctx,
		`SELECT id, created_at, school_id, email, name, password_hash, role, is_active
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.CreatedAt, &u.SchoolID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.IsActive)
	if err != nil {
		return nil, err
	}
	u.Role = authz.Role(role)
	return u, nil
}

// GetTeacherIDByUserID resolves the teacher record linked to a login user.
func (r *AuthRepository) GetTeacherIDByUserID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM teachers WHERE user_id = $1`, userID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// GetStudentByUserID resolves the student record linked to a login user,
// returning its id and grade for principal construction.
func (r *AuthRepository) GetStudentByUserID(ctx context.Context, userID uuid.UUID) (studentID, gradeID *uuid.UUID, err error) {
	var sid, gid uuid.UUID
	err = r.pool.QueryRow(ctx,
		`SELECT id, grade_id FROM students WHERE user_id = $1`, userID,
	).Scan(&sid, &gid)
	if err != nil {
		return nil, nil, err
	}
	return &sid, &gid, nil
}
