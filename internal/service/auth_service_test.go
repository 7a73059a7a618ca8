package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/config"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(secret string) *AuthService {
	cfg := &config.Config{
		JWTSecret:  secret,
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	return NewAuthService(cfg, nil, nil)
}

func signTestToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestPasswordHashing(t *testing.T) {
	svc := newAuthService("secret")

	hash, err := svc.HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.NoError(t, svc.CheckPassword(hash, "hunter22"))
	require.ErrorIs(t, svc.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc := newAuthService("secret")
	userID := uuid.New()
	schoolID := uuid.New()

	raw := signTestToken(t, "secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role:     string(authz.RoleAdmin),
		SchoolID: &schoolID,
	})

	claims, err := svc.ValidateToken(raw)
	require.NoError(t, err)
	require.Equal(t, userID.String(), claims.Subject)
	require.Equal(t, string(authz.RoleAdmin), claims.Role)
	require.NotNil(t, claims.SchoolID)
	require.Equal(t, schoolID, *claims.SchoolID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newAuthService("secret")

	raw := signTestToken(t, "other-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: string(authz.RoleAdmin),
	})

	_, err := svc.ValidateToken(raw)
	require.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newAuthService("secret")

	raw := signTestToken(t, "secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Role: string(authz.RoleAdmin),
	})

	_, err := svc.ValidateToken(raw)
	require.Error(t, err)
}

func TestClaimsPrincipal(t *testing.T) {
	schoolID := uuid.New()
	teacherID := uuid.New()

	claims := &Claims{
		Role:      string(authz.RoleTeacher),
		SchoolID:  &schoolID,
		TeacherID: &teacherID,
	}
	p := claims.Principal()
	require.True(t, p.Authenticated)
	require.Equal(t, authz.RoleTeacher, p.Role)
	require.Equal(t, schoolID, *p.SchoolID)
	require.Equal(t, teacherID, *p.TeacherID)
	require.False(t, p.Bypass())
}

func TestClaimsPrincipalFailsClosedOnBadRole(t *testing.T) {
	claims := &Claims{Role: "GHOST"}
	p := claims.Principal()
	require.False(t, p.Authenticated, "unknown role yields an unauthenticated principal")
	require.False(t, p.Bypass(), "a bad role claim never becomes a bypass")

	claims = &Claims{} // empty role claim
	p = claims.Principal()
	require.False(t, p.Authenticated)
	require.False(t, p.Bypass())
}
