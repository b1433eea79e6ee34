package middleware

import (
	"net/http"
	"strings"

	"go-candidate-backend/internal/delivery/http/response"
	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/auth"
	"go-candidate-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards candidate endpoints with the HMAC session token.
// Only a token that validates cleanly passes; every other status is a 401,
// and non-empty bad tokens are logged with their failure reason.
func AuthMiddleware(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		status := manager.Validate(tokenString)
		if status != auth.StatusValid {
			logger.Log.Warn("unauthorized request",
				"path", c.FullPath(), "ip", c.ClientIP(), "tokenStatus", status.String())
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		email, err := manager.ExtractSubject(tokenString)
		if err != nil || email == "" {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserEmail), email)
		c.Next()
	}
}
