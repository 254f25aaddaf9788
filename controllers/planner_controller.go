package controllers

import (
	"net/http"
	"strconv"

	"recipehub/services"

	"github.com/gin-gonic/gin"
)

type PlannerController struct {
	Svc *services.PlannerService
}

func NewPlannerController(svc *services.PlannerService) *PlannerController {
	return &PlannerController{Svc: svc}
}

func (h *PlannerController) DayPlan(c *gin.Context) {
	calories := 0
	if raw := c.Query("calories"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "calories must be an integer")
			return
		}
		calories = v
	}
	out, err := h.Svc.DayPlan(c.Request.Context(), calories, c.Query("diet"), c.Query("exclude"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PlannerController) IngredientNutrition(c *gin.Context) {
	out, err := h.Svc.IngredientNutrition(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PlannerController) TrackNutrition(c *gin.Context) {
	var body struct {
		Items []services.TrackItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := h.Svc.TrackNutrition(c.Request.Context(), body.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
