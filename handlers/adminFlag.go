package handlers

import (
	"net/http"
	"strconv"

	"pawhub/models"
	"pawhub/utils"

	"github.com/gin-gonic/gin"
)

// AdminCreateFlagHandler handles POST /admin/flags.
func (h *HandlerBundle) AdminCreateFlagHandler(c *gin.Context) {
	var req struct {
		UserID    string `json:"userId" binding:"required"`
		Type      string `json:"type" binding:"required"`
		BookingID string `json:"bookingId"`
		Note      string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid flag payload", err.Error())
		return
	}
	flag, err := h.AdminService.CreateFlag(req.UserID, req.Type, req.BookingID, req.Note)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flag)
}

// AdminListFlagsHandler handles GET /admin/flags.
func (h *HandlerBundle) AdminListFlagsHandler(c *gin.Context) {
	filter := models.FlagListFilter{
		Type:   c.Query("type"),
		UserID: c.Query("userId"),
	}
	if resolved := c.Query("resolved"); resolved != "" {
		v := resolved == "true"
		filter.Resolved = &v
	}
	filter.Limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	flags, err := h.AdminService.ListFlags(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flags)
}

// AdminResolveFlagHandler handles POST /admin/flags/:id/resolve.
func (h *HandlerBundle) AdminResolveFlagHandler(c *gin.Context) {
	var req struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&req)
	if err := h.AdminService.ResolveFlag(c.Param("id"), req.Note); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flag resolved"})
}

// AdminUnresolveFlagHandler handles POST /admin/flags/:id/unresolve.
func (h *HandlerBundle) AdminUnresolveFlagHandler(c *gin.Context) {
	if err := h.AdminService.UnresolveFlag(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flag reopened"})
}

// AdminDeleteFlagHandler handles DELETE /admin/flags/:id.
func (h *HandlerBundle) AdminDeleteFlagHandler(c *gin.Context) {
	if err := h.AdminService.DeleteFlag(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flag deleted"})
}

// AdminFlagStatsHandler handles GET /admin/flags/stats.
func (h *HandlerBundle) AdminFlagStatsHandler(c *gin.Context) {
	stats, err := h.AdminService.FlagStats()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AdminRunAnalysisHandler handles POST /admin/analysis/run.
func (h *HandlerBundle) AdminRunAnalysisHandler(c *gin.Context) {
	report, err := h.AdminService.RunAnalysis()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
