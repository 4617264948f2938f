package middleware

import (
	"littlelemon/internal/auth"   // Role resolution
	"littlelemon/internal/domain" // Importing domain models
	"littlelemon/internal/utils"  // Token utility functions
	"net/http"                    // HTTP status codes
	"strings"                     // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// TokenAuthMiddleware resolves the `Authorization: Token <value>` header to a
// user and their role. The three failure modes carry distinct bodies: a missing
// header and a malformed prefix are 400s, an unknown token is a 404. The role
// is resolved exactly once here and passed to handlers through the context.
func TokenAuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check that the Authorization header is present
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing authorization token"})
			return
		}
		// Check that the header carries the expected Token prefix
		if !strings.HasPrefix(authHeader, "Token ") {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid authorization token format"})
			return
		}
		key := strings.TrimPrefix(authHeader, "Token ") // Extract the token string
		var token domain.AuthToken
		// Look the token up by row; issued tokens are revocable by deleting the row
		if err := db.Where("`key` = ?", key).First(&token).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Token not found"})
			return
		}
		// Validate the token signature and expiry
		if _, err := utils.ParseToken(key, secret); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
			return
		}
		var user domain.User
		// Load the user with their group memberships for role resolution
		if err := db.Preload("Groups").First(&user, token.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
			return
		}
		c.Set("userID", user.ID)          // Store userID in context
		c.Set("user", &user)              // Store the full user in context
		c.Set("role", auth.RoleOf(&user)) // Store the resolved role in context
		c.Next()                          // Proceed to the next handler
	}
}

// CurrentUser returns the authenticated user stored by TokenAuthMiddleware
func CurrentUser(c *gin.Context) *domain.User {
	user, _ := c.MustGet("user").(*domain.User)
	return user
}

// CurrentRole returns the role stored by TokenAuthMiddleware
func CurrentRole(c *gin.Context) auth.Role {
	role, _ := c.MustGet("role").(auth.Role)
	return role
}
