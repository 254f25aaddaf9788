package controllers

import (
	"net/http"

	"recipehub/services"

	"github.com/gin-gonic/gin"
)

type RatingController struct {
	Svc *services.RatingService
}

func NewRatingController(svc *services.RatingService) *RatingController {
	return &RatingController{Svc: svc}
}

func (h *RatingController) RateRecipe(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var in services.RatingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := h.Svc.RateRecipe(c.Request.Context(), uid, c.Param("recipeId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *RatingController) GetRecipeRating(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	out, err := h.Svc.GetRecipeRating(c.Request.Context(), uid, c.Param("recipeId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": out})
}

func (h *RatingController) GetFavoriteRecipes(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	out, err := h.Svc.GetFavoriteRecipes(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": out})
}
