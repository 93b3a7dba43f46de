package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

// AuthMiddleware requires a staff bearer token and stores its claims in the
// context under "user_id", "role", "token" and "token_expiry".
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid authorization format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if !setClaims(c, tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware reads a bearer token when one is sent and otherwise
// lets the request through anonymously. A bad token is still rejected.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || !setClaims(c, tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// WebSocketAuthMiddleware reads the token from the query string, since
// browsers cannot set headers on a websocket upgrade.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" || !setClaims(c, token) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, tokenString string) bool {
	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		utils.InfoLogger.WithField("path", c.Request.URL.Path).Debugf("token rejected: %v", err)
		return false
	}

	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
	c.Set("token", tokenString)
	if claims.ExpiresAt != nil {
		c.Set("token_expiry", claims.ExpiresAt.Time)
	}
	return true
}
