package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/identity"
	"reviewhub/internal/api/service"
)

const identityKey = "identity"

// Authenticate decodes the bearer token into an Identity and stores it in the
// request context. A missing or invalid token yields the anonymous identity;
// rejecting anonymous callers is the job of the Require* middlewares below,
// so read endpoints stay public.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		who := identity.Anonymous()

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			// format: "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if decoded, err := authService.ValidateToken(parts[1]); err == nil {
					who = *decoded
				}
			}
		}

		c.Set(identityKey, who)
		c.Next()
	}
}

// CurrentIdentity retrieves the acting identity set by Authenticate.
func CurrentIdentity(c *gin.Context) identity.Identity {
	if v, exists := c.Get(identityKey); exists {
		if who, ok := v.(identity.Identity); ok {
			return who
		}
	}
	return identity.Anonymous()
}

// RequireAuthenticated rejects anonymous requests.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).Authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anyone without the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		who := CurrentIdentity(c)
		if !who.Authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication required"})
			c.Abort()
			return
		}
		if !who.CanAdminister() {
			c.JSON(http.StatusForbidden, gin.H{"detail": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
