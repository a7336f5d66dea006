package handlers

import (
	"net/http"
	"strconv"

	"pawhub/models"
	"pawhub/utils"

	"github.com/gin-gonic/gin"
)

// AdminListUsersHandler handles GET /admin/users.
func (h *HandlerBundle) AdminListUsersHandler(c *gin.Context) {
	filter := models.UserListFilter{
		Query:       c.Query("q"),
		Role:        c.Query("role"),
		TrustStatus: c.Query("trust"),
	}
	if banned := c.Query("banned"); banned != "" {
		v := banned == "true"
		filter.IsBanned = &v
	}
	filter.Limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	filter.Offset, _ = strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

	users, total, err := h.AdminService.ListUsers(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

// AdminUserProfileHandler handles GET /admin/users/:id.
func (h *HandlerBundle) AdminUserProfileHandler(c *gin.Context) {
	profile, err := h.AdminService.FullProfile(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// AdminUpdateUserHandler handles PUT /admin/users/:id.
func (h *HandlerBundle) AdminUpdateUserHandler(c *gin.Context) {
	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}
	usr, err := h.AdminService.UpdateUser(c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// AdminCheckAccessHandler handles GET /admin/users/:id/access.
func (h *HandlerBundle) AdminCheckAccessHandler(c *gin.Context) {
	check, err := h.AdminService.CheckAccess(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}

// AdminSetApprovalHandler handles PUT /admin/providers/:id/approval.
func (h *HandlerBundle) AdminSetApprovalHandler(c *gin.Context) {
	var req struct {
		Approval string `json:"approval" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid approval payload", err.Error())
		return
	}
	prov, err := h.ProviderService.SetApproval(c.Param("id"), req.Approval)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prov)
}

// AdminUpdateCommissionHandler handles PUT /admin/providers/:id/commission.
func (h *HandlerBundle) AdminUpdateCommissionHandler(c *gin.Context) {
	var upd models.CommissionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid commission payload", err.Error())
		return
	}
	prov, err := h.ProviderService.UpdateCommission(c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prov)
}

// AdminResetCommissionHandler handles POST /admin/providers/:id/commission/reset.
func (h *HandlerBundle) AdminResetCommissionHandler(c *gin.Context) {
	prov, err := h.ProviderService.ResetCommission(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prov)
}
