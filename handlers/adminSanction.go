package handlers

import (
	"net/http"

	"pawhub/utils"

	"github.com/gin-gonic/gin"
)

type sanctionRequest struct {
	Reason string `json:"reason"`
	Days   int    `json:"days"`
}

// AdminWarnHandler handles POST /admin/users/:id/warn.
func (h *HandlerBundle) AdminWarnHandler(c *gin.Context) {
	adminID, ok := ctxString(c, "adminID")
	if !ok {
		return
	}
	var req sanctionRequest
	_ = c.ShouldBindJSON(&req)
	s, err := h.AdminService.Warn(adminID, c.Param("id"), req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// AdminSuspendHandler handles POST /admin/users/:id/suspend.
func (h *HandlerBundle) AdminSuspendHandler(c *gin.Context) {
	adminID, ok := ctxString(c, "adminID")
	if !ok {
		return
	}
	var req sanctionRequest
	_ = c.ShouldBindJSON(&req)
	s, err := h.AdminService.Suspend(adminID, c.Param("id"), req.Reason, req.Days)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// AdminBanHandler handles POST /admin/users/:id/ban.
func (h *HandlerBundle) AdminBanHandler(c *gin.Context) {
	adminID, ok := ctxString(c, "adminID")
	if !ok {
		return
	}
	var req sanctionRequest
	_ = c.ShouldBindJSON(&req)
	s, err := h.AdminService.Ban(adminID, c.Param("id"), req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// AdminUnbanHandler handles POST /admin/users/:id/unban.
func (h *HandlerBundle) AdminUnbanHandler(c *gin.Context) {
	adminID, ok := ctxString(c, "adminID")
	if !ok {
		return
	}
	var req sanctionRequest
	_ = c.ShouldBindJSON(&req)
	s, err := h.AdminService.Unban(adminID, c.Param("id"), req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// AdminLiftSuspensionHandler handles POST /admin/users/:id/lift-suspension.
func (h *HandlerBundle) AdminLiftSuspensionHandler(c *gin.Context) {
	adminID, ok := ctxString(c, "adminID")
	if !ok {
		return
	}
	var req sanctionRequest
	_ = c.ShouldBindJSON(&req)
	s, err := h.AdminService.LiftSuspension(adminID, c.Param("id"), req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// AdminSanctionHistoryHandler handles GET /admin/users/:id/sanctions.
func (h *HandlerBundle) AdminSanctionHistoryHandler(c *gin.Context) {
	history, err := h.AdminService.SanctionHistory(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
