package controllers

import (
	"net/http"

	"recipehub/services"
	"recipehub/utils"

	"github.com/gin-gonic/gin"
)

type DailyLogController struct {
	Svc *services.DailyLogService
}

func NewDailyLogController(svc *services.DailyLogService) *DailyLogController {
	return &DailyLogController{Svc: svc}
}

func (h *DailyLogController) GetDailyLog(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	out, err := h.Svc.GetDailyLog(c.Request.Context(), uid, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_log": out})
}

func (h *DailyLogController) GetDailyLogs(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	today := utils.Today()
	out, err := h.Svc.GetDailyLogs(c.Request.Context(), uid, c.DefaultQuery("from", today), c.DefaultQuery("to", today))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_logs": out})
}
