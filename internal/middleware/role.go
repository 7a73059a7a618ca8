package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/response"
)

// RequireRole checks that the caller's role sits at or above min in the role
// hierarchy. Services re-check the same rule; this gate only exists to reject
// obvious mismatches before any handler work happens.
func RequireRole(min authz.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if !p.Authenticated {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		if p.Bypass() {
			c.Next()
			return
		}
		if !p.Role.AtLeast(min) {
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}
		c.Next()
	}
}
