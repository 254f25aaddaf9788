package controllers

import (
	"net/http"

	"recipehub/services"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	Svc *services.GoalService
}

func NewGoalController(svc *services.GoalService) *GoalController {
	return &GoalController{Svc: svc}
}

// GetGoals responds with null goals when none were saved.
func (h *GoalController) GetGoals(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	goal, err := h.Svc.GetGoals(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goal})
}

func (h *GoalController) UpsertGoals(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var in services.GoalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	goal, err := h.Svc.UpsertGoals(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goal})
}
