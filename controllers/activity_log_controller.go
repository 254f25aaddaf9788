package controllers

import (
	"net/http"

	"recipehub/services"
	"recipehub/utils"

	"github.com/gin-gonic/gin"
)

type ActivityLogController struct {
	Svc *services.ActivityLogService
}

func NewActivityLogController(svc *services.ActivityLogService) *ActivityLogController {
	return &ActivityLogController{Svc: svc}
}

func (h *ActivityLogController) AddWeight(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var req struct {
		WeightKG float64 `json:"weight_kg" binding:"required"`
		Date     string  `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := h.Svc.AddWeightLog(c.Request.Context(), uid, req.WeightKG, req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ActivityLogController) GetWeights(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", 30, 365)
	if !ok {
		return
	}
	out, err := h.Svc.GetWeightLogs(c.Request.Context(), uid, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weights": out})
}

func (h *ActivityLogController) AddWater(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var req struct {
		AmountML float64 `json:"amount_ml" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := h.Svc.AddWaterLog(c.Request.Context(), uid, req.AmountML)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *ActivityLogController) GetWater(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	out, err := h.Svc.GetWaterLogs(c.Request.Context(), uid, c.DefaultQuery("date", utils.Today()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"water": out})
}

func (h *ActivityLogController) DeleteWater(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.DeleteWaterLog(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
