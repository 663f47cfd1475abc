package middleware

import (
	"net/http"
	"strings"

	"petstore_manager/internal/auth"
	"petstore_manager/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks for a valid bearer token and stores the acting staff
// member on the context for handlers to use.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("actor", models.Actor{
			UserID: claims.UserID,
			Name:   claims.Name,
			Role:   claims.Role,
		})
		c.Next()
	}
}

// RequireRole guards routes that only a specific role may reach.
func RequireRole(allowedRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, exists := c.Get("actor")
		if !exists || actor.(models.Actor).Role != allowedRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorFrom extracts the authenticated actor placed by AuthMiddleware.
func ActorFrom(c *gin.Context) models.Actor {
	if v, exists := c.Get("actor"); exists {
		return v.(models.Actor)
	}
	return models.Actor{}
}
