package handlers

import (
	"net/http"

	"pawhub/models"
	"pawhub/utils"

	"github.com/gin-gonic/gin"
)

// GetMeHandler handles GET /me.
func (h *HandlerBundle) GetMeHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	usr, err := h.UserService.GetUserByID(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateMeHandler handles PUT /me.
func (h *HandlerBundle) UpdateMeHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}
	usr, err := h.UserService.UpdateProfile(userID, upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// DeleteMeHandler handles DELETE /me.
func (h *HandlerBundle) DeleteMeHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	if err := h.UserService.DeleteUser(userID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
