package controllers

import (
	"net/http"
	"time"

	"recipehub/services"
	"recipehub/utils"

	"github.com/gin-gonic/gin"
)

type ScheduleController struct {
	Svc *services.ScheduleService
}

func NewScheduleController(svc *services.ScheduleService) *ScheduleController {
	return &ScheduleController{Svc: svc}
}

func (h *ScheduleController) AddMealSchedule(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var in services.ScheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := h.Svc.AddMealSchedule(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GetMealSchedules defaults to the coming week.
func (h *ScheduleController) GetMealSchedules(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	now := time.Now()
	from := c.DefaultQuery("from", utils.DayOf(now))
	to := c.DefaultQuery("to", utils.DayOf(now.AddDate(0, 0, 6)))
	out, err := h.Svc.GetMealSchedules(c.Request.Context(), uid, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": out})
}

func (h *ScheduleController) DeleteMealSchedule(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.DeleteMealSchedule(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
