package handlers

import (
	"net/http"

	"pawhub/utils"

	"github.com/gin-gonic/gin"
)

// ProAgendaHandler handles GET /pro/agenda?day=YYYY-MM-DD.
func (h *HandlerBundle) ProAgendaHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	day := c.Query("day")
	if day == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing day parameter", "expected ?day=YYYY-MM-DD")
		return
	}
	bookings, err := h.BookingService.ListAgenda(userID, day)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ProBookingsHandler handles GET /pro/bookings.
func (h *HandlerBundle) ProBookingsHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	bookings, err := h.BookingService.ListProviderBookings(userID, c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ConfirmSimpleHandler handles POST /pro/bookings/:id/confirm.
func (h *HandlerBundle) ConfirmSimpleHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	b, err := h.BookingService.ConfirmSimple(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ConfirmByReferenceHandler handles POST /pro/bookings/confirm-by-reference.
func (h *HandlerBundle) ConfirmByReferenceHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var req struct {
		ReferenceCode string `json:"referenceCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid confirmation payload", err.Error())
		return
	}
	b, err := h.BookingService.ConfirmByReferenceCode(userID, req.ReferenceCode)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// VerifyOTPHandler handles POST /pro/bookings/:id/verify-otp.
func (h *HandlerBundle) VerifyOTPHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid confirmation payload", err.Error())
		return
	}
	b, err := h.BookingService.VerifyOTP(userID, c.Param("id"), req.Code)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ScanPetTagHandler handles POST /pro/bookings/scan.
func (h *HandlerBundle) ScanPetTagHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid scan payload", err.Error())
		return
	}
	b, err := h.BookingService.ConfirmByPetToken(userID, req.Token)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CompleteBookingHandler handles POST /pro/bookings/:id/complete.
func (h *HandlerBundle) CompleteBookingHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	b, err := h.BookingService.CompleteByPro(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ProEarningsHandler handles GET /pro/earnings?month=YYYY-MM: the provider's
// own view of one ledger month.
func (h *HandlerBundle) ProEarningsHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	prov, err := h.ProviderService.GetByUserID(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	month := c.Query("month")
	if month == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing month parameter", "expected ?month=YYYY-MM")
		return
	}
	row, err := h.EarningsService.MonthRow(prov.ID, month)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}
