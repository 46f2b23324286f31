package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/auth"
)

// RequireAdmin gates mutating back-office routes behind the admin policy.
// Every rejection, whether the session is missing, invalid, or belongs to
// the wrong identity, is the same generic 403 so probing requests learn
// nothing about which identities are privileged or whether a token parsed.
func (m *AuthMiddleware) RequireAdmin(policy auth.AdminPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := m.claimsFromBearer(c)

		if !policy.IsAuthorized(claims) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(CtxClaims, claims)
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}
