package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skybook/skybook/internal/domain"
)

const userKey = "auth.user"

// Middleware resolves the bearer token, if any, and stashes the user on
// the request context. Requests without a token pass through; handlers
// that need a user call MustUser.
func Middleware(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token != "" {
			if user, err := svc.Current(c.Request.Context(), token); err == nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

// MustUser returns the authenticated user or writes a 401 and aborts.
func MustUser(c *gin.Context) (ok bool) {
	if _, exists := c.Get(userKey); !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return false
	}
	return true
}

// UserFrom returns the authenticated user, or nil when the request is
// anonymous.
func UserFrom(c *gin.Context) *domain.User {
	if v, exists := c.Get(userKey); exists {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
