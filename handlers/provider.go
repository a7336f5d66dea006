package handlers

import (
	"net/http"
	"strconv"

	"pawhub/models"
	"pawhub/utils"

	"github.com/gin-gonic/gin"
)

// ApplyProviderHandler handles POST /providers/apply.
func (h *HandlerBundle) ApplyProviderHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var p models.ProviderProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid application payload", err.Error())
		return
	}
	created, err := h.ProviderService.Apply(userID, p)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetProviderHandler handles GET /providers/:id.
func (h *HandlerBundle) GetProviderHandler(c *gin.Context) {
	p, err := h.ProviderService.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListProvidersHandler handles GET /providers.
func (h *HandlerBundle) ListProvidersHandler(c *gin.Context) {
	filter := models.ProviderListFilter{
		Query:    c.Query("q"),
		Approval: c.Query("approval"),
		Kind:     models.ProviderKind(c.Query("kind")),
	}
	filter.Limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	filter.Offset, _ = strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

	providers, total, err := h.ProviderService.List(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers, "total": total})
}

// GetMyProviderHandler handles GET /pro/profile.
func (h *HandlerBundle) GetMyProviderHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	p, err := h.ProviderService.GetByUserID(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateMyProviderHandler handles PUT /pro/profile.
func (h *HandlerBundle) UpdateMyProviderHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var p models.ProviderProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}
	updated, err := h.ProviderService.UpdateProfile(userID, p)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListProviderServicesHandler handles GET /providers/:id/services.
func (h *HandlerBundle) ListProviderServicesHandler(c *gin.Context) {
	services, err := h.ProviderService.ListServices(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// CreateServiceHandler handles POST /pro/services.
func (h *HandlerBundle) CreateServiceHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid service payload", err.Error())
		return
	}
	created, err := h.ProviderService.CreateService(userID, svc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateServiceHandler handles PUT /pro/services/:id.
func (h *HandlerBundle) UpdateServiceHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid service payload", err.Error())
		return
	}
	svc.ID = c.Param("id")
	updated, err := h.ProviderService.UpdateService(userID, svc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteServiceHandler handles DELETE /pro/services/:id.
func (h *HandlerBundle) DeleteServiceHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	if err := h.ProviderService.DeleteService(userID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
