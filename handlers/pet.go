package handlers

import (
	"net/http"

	"pawhub/models"
	"pawhub/utils"

	"github.com/gin-gonic/gin"
)

// AddPetHandler handles POST /pets.
func (h *HandlerBundle) AddPetHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var p models.Pet
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid pet payload", err.Error())
		return
	}
	created, err := h.PetService.AddPet(userID, p)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListPetsHandler handles GET /pets.
func (h *HandlerBundle) ListPetsHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	pets, err := h.PetService.ListPets(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pets)
}

// GetPetHandler handles GET /pets/:id.
func (h *HandlerBundle) GetPetHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	p, err := h.PetService.GetPet(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdatePetHandler handles PUT /pets/:id.
func (h *HandlerBundle) UpdatePetHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	var p models.Pet
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid pet payload", err.Error())
		return
	}
	p.ID = c.Param("id")
	updated, err := h.PetService.UpdatePet(userID, p)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePetHandler handles DELETE /pets/:id.
func (h *HandlerBundle) DeletePetHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	if err := h.PetService.DeletePet(userID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pet deleted"})
}

// PetQRTagHandler handles GET /pets/:id/qr. The PNG goes on the collar tag.
func (h *HandlerBundle) PetQRTagHandler(c *gin.Context) {
	userID, ok := ctxString(c, "userID")
	if !ok {
		return
	}
	png, err := h.PetService.PetQRTag(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
