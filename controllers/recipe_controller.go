package controllers

import (
	"net/http"
	"strings"

	"recipehub/services"

	"github.com/gin-gonic/gin"
)

const (
	defaultRecipeLimit = 12
	maxRecipeLimit     = 50
)

type RecipeController struct {
	Svc *services.RecipeService
}

func NewRecipeController(svc *services.RecipeService) *RecipeController {
	return &RecipeController{Svc: svc}
}

func (h *RecipeController) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		badRequest(c, "q is required")
		return
	}
	limit, ok := intQuery(c, "limit", defaultRecipeLimit, maxRecipeLimit)
	if !ok {
		return
	}
	out, err := h.Svc.SearchAll(c.Request.Context(), q, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func (h *RecipeController) Random(c *gin.Context) {
	count, ok := intQuery(c, "count", defaultRecipeLimit, maxRecipeLimit)
	if !ok {
		return
	}
	out, err := h.Svc.Random(c.Request.Context(), count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func (h *RecipeController) GetByID(c *gin.Context) {
	source := c.Query("source")
	if source != "" && source != "mealdb" && source != "spoonacular" {
		badRequest(c, "source must be spoonacular or mealdb")
		return
	}
	out, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"), source)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecipeController) ByCategory(c *gin.Context) {
	limit, ok := intQuery(c, "limit", defaultRecipeLimit, maxRecipeLimit)
	if !ok {
		return
	}
	out, err := h.Svc.FilterByCategory(c.Request.Context(), c.Param("category"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func (h *RecipeController) ByArea(c *gin.Context) {
	limit, ok := intQuery(c, "limit", defaultRecipeLimit, maxRecipeLimit)
	if !ok {
		return
	}
	out, err := h.Svc.FilterByArea(c.Request.Context(), c.Param("area"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func (h *RecipeController) Categories(c *gin.Context) {
	out, err := h.Svc.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (h *RecipeController) Areas(c *gin.Context) {
	out, err := h.Svc.Areas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"areas": out})
}

func (h *RecipeController) Ingredients(c *gin.Context) {
	out, err := h.Svc.Ingredients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": out})
}

func (h *RecipeController) Cuisines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cuisines": h.Svc.Cuisines()})
}

func (h *RecipeController) Instructions(c *gin.Context) {
	out, err := h.Svc.Instructions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"instructions": out})
}

func (h *RecipeController) Recognize(c *gin.Context) {
	var body struct {
		Image string `json:"image" binding:"required"`
		Limit int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	if body.Limit <= 0 || body.Limit > maxRecipeLimit {
		body.Limit = defaultRecipeLimit
	}
	out, err := h.Svc.RecognizeAndSearch(c.Request.Context(), body.Image, body.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
