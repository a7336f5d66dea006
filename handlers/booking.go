package handlers

import (
	"net/http"

	"pawhub/models"
	"pawhub/utils"

	"github.com/gin-gonic/gin"
)

// CreateBookingHandler handles POST /bookings.
func (h *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking payload", err.Error())
		return
	}
	b, err := h.BookingService.CreateBooking(userID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListMyBookingsHandler handles GET /bookings.
func (h *HandlerBundle) ListMyBookingsHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	bookings, err := h.BookingService.ListMine(userID, c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingHandler handles GET /bookings/:id.
func (h *HandlerBundle) GetBookingHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	b, err := h.BookingService.GetBooking(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler handles POST /bookings/:id/cancel.
func (h *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := h.BookingService.CancelBooking(userID, c.Param("id"), req.Reason); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

// ConfirmCompletionHandler handles POST /bookings/:id/confirm-completion:
// the client acknowledges the service happened.
func (h *HandlerBundle) ConfirmCompletionHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	b, err := h.BookingService.ConfirmCompletionByClient(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
