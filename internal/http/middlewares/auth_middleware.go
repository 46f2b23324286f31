package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/auth"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// claimsFromBearer extracts and verifies the Authorization header. A nil
// result means there is no usable session.
func (m *AuthMiddleware) claimsFromBearer(c *gin.Context) *auth.Claims {
	authHeader := c.GetHeader("Authorization")

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}

	raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))

	if raw == "" {
		return nil
	}

	claims, err := m.jwt.VerifyAccessToken(raw)

	if err != nil {
		return nil
	}

	return claims
}

// Helpers so handlers don't need to know the magic keys.

func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
