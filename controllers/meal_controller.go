package controllers

import (
	"net/http"

	"recipehub/services"
	"recipehub/utils"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Svc *services.MealService
}

func NewMealController(svc *services.MealService) *MealController {
	return &MealController{Svc: svc}
}

func (h *MealController) AddMealEntry(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var in services.MealEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	entry, err := h.Svc.AddMealEntry(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *MealController) GetMealEntries(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	out, err := h.Svc.GetMealEntries(c.Request.Context(), uid, c.DefaultQuery("date", utils.Today()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": out})
}

func (h *MealController) DeleteMealEntry(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.DeleteMealEntry(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
