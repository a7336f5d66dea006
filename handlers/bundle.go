// File: pawhub/handlers/bundle.go
package handlers

import (
	"net/http"

	"pawhub/services/admin"
	"pawhub/services/booking"
	"pawhub/services/earnings"
	"pawhub/services/pet"
	"pawhub/services/provider"
	"pawhub/services/support"
	"pawhub/services/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers around their services.
type HandlerBundle struct {
	UserService     user.UserService
	PetService      pet.PetService
	ProviderService provider.ProviderService
	BookingService  booking.BookingService
	EarningsService earnings.EarningsService
	AdminService    admin.AdminService
	SupportService  support.SupportService
}

// ctxString pulls a string value the middleware placed on the context.
func ctxString(c *gin.Context, key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	return s, true
}
