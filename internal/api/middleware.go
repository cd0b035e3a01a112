package api

import (
	"net/http"
	"strings"

	"github.com/HASGITH/Mathforces/internal/auth"
	"github.com/HASGITH/Mathforces/internal/config"
	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BearerToken extracts the token from the Authorization header. It is the
// single place bearer parsing happens; middleware and the handlers that do
// optional authentication both go through it.
func BearerToken(c *gin.Context) (string, bool) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// allowedOrigin resolves the Access-Control-Allow-Origin value for a
// request origin, or empty when the origin is not allowed.
func allowedOrigin(cfg config.CORS, origin string) string {
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			return "*"
		}
		if o == origin {
			return origin
		}
	}
	return ""
}

// CORSMiddleware answers cross-origin requests for the origins listed in
// the config. With no origins configured it is a no-op.
func CORSMiddleware(cfg config.CORS) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(cfg.AllowedOrigins) == 0 {
			c.Next()
			return
		}

		origin := allowedOrigin(cfg, c.Request.Header.Get("Origin"))
		if origin != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
		}
		c.Next()
	}
}

// AuthMiddleware validates the bearer token and stores the caller's user ID
// in the request context under "userID".
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, "Authorization header with a Bearer token is required")
			c.Abort()
			return
		}

		claims, err := auth.ValidateJWT(token, secret)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		c.Set("userID", claims.Subject)
		c.Next()
	}
}

// RequireStaff rejects callers whose account does not carry the staff flag.
// Must run after AuthMiddleware. The flag is read per request, so revoking
// staff takes effect immediately.
func RequireStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := database.GetUserByID(db, c.GetString("userID"))
		if err != nil {
			util.Error(c, http.StatusUnauthorized, "unknown user")
			c.Abort()
			return
		}
		if !user.IsStaff {
			util.Error(c, http.StatusForbidden, "staff access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
