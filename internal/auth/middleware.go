package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/runquest/runquest-backend/pkg/response"
)

const claimsKey = "auth.claims"

// Middleware rejects requests without a valid access token and stores the claims on the context
func Middleware(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseHeader(m, c.GetHeader("Authorization"))
		if err != nil {
			response.Unauthorized(c, err.Error())
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func parseHeader(m *Manager, header string) (*Claims, error) {
	if header == "" {
		return nil, ErrMissingToken
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return nil, ErrInvalidToken
	}
	return m.Parse(header[len("Bearer "):], AccessToken)
}

// ClaimsFrom returns the claims stored by Middleware
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// UserID returns the authenticated user's ID, or 0
func UserID(c *gin.Context) int64 {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return 0
	}
	return claims.UserID
}
