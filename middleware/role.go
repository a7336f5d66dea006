package middleware

import (
	"net/http"
	"strings"

	userRepo "pawhub/database/repository/user"
	"pawhub/models"

	"github.com/gin-gonic/gin"
)

// RequireProMiddleware gates provider-only endpoints. It trusts the role
// claim set by JWTAuthUserMiddleware.
func RequireProMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		roleStr, _ := role.(string)
		if !strings.EqualFold(roleStr, models.RolePro) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Professional account required"})
			return
		}
		c.Next()
	}
}

// RequireAdminMiddleware gates back-office endpoints. The role is re-checked
// against the database, not just the token, so a demoted admin loses access
// as soon as the record changes. The comparison is case-insensitive: legacy
// records carry "admin" in lowercase.
func RequireAdminMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, ok := c.Get("userID")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		userID, _ := userIDVal.(string)

		usr, err := users.GetByID(userID)
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if !strings.EqualFold(usr.Role, models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Set("adminID", usr.ID)
		c.Next()
	}
}
