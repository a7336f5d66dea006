package middleware

import (
	"net/http"

	"pawhub/services/admin"

	"github.com/gin-gonic/gin"
)

// AccessCheckMiddleware blocks banned and suspended accounts. It runs after
// authentication; expired suspensions are cleared lazily inside the check.
func AccessCheckMiddleware(adminSvc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, ok := c.Get("userID")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		userID, _ := userIDVal.(string)

		check, err := adminSvc.CheckAccess(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if !check.Allowed {
			resp := gin.H{"error": "Account blocked", "reason": check.Reason}
			if check.Until != nil {
				resp["until"] = check.Until
			}
			c.AbortWithStatusJSON(http.StatusForbidden, resp)
			return
		}
		c.Next()
	}
}
