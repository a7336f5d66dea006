package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"pawhub/models"
	"pawhub/utils"

	"github.com/gin-gonic/gin"
)

func isAdminRole(c *gin.Context) bool {
	return strings.EqualFold(c.GetString("role"), models.RoleAdmin)
}

// OpenTicketHandler handles POST /support/tickets.
func (h *HandlerBundle) OpenTicketHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var req struct {
		Subject  string `json:"subject" binding:"required"`
		Category string `json:"category"`
		Body     string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid ticket payload", err.Error())
		return
	}
	ticket, err := h.SupportService.OpenTicket(userID, req.Subject, req.Category, req.Body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// ListMyTicketsHandler handles GET /support/tickets.
func (h *HandlerBundle) ListMyTicketsHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	tickets, err := h.SupportService.ListMine(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GetTicketHandler handles GET /support/tickets/:id. Admins can read any
// ticket; clients only their own.
func (h *HandlerBundle) GetTicketHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	ticket, err := h.SupportService.GetTicket(userID, isAdminRole(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// ReplyTicketHandler handles POST /support/tickets/:id/messages.
func (h *HandlerBundle) ReplyTicketHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid message payload", err.Error())
		return
	}
	msg, err := h.SupportService.Reply(userID, isAdminRole(c), c.Param("id"), req.Body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// AdminListTicketsHandler handles GET /admin/support/tickets.
func (h *HandlerBundle) AdminListTicketsHandler(c *gin.Context) {
	filter := models.TicketListFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		UserID:   c.Query("userId"),
	}
	filter.Limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	tickets, err := h.SupportService.ListAll(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// AdminSetTicketStatusHandler handles PUT /admin/support/tickets/:id/status.
func (h *HandlerBundle) AdminSetTicketStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status payload", err.Error())
		return
	}
	ticket, err := h.SupportService.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// AdminSetTicketPriorityHandler handles PUT /admin/support/tickets/:id/priority.
func (h *HandlerBundle) AdminSetTicketPriorityHandler(c *gin.Context) {
	var req struct {
		Priority string `json:"priority" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid priority payload", err.Error())
		return
	}
	ticket, err := h.SupportService.SetPriority(c.Param("id"), req.Priority)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}
