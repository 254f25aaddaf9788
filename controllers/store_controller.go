package controllers

import (
	"net/http"
	"strconv"

	"recipehub/stores"

	"github.com/gin-gonic/gin"
)

// StoreController serves the per-user favorites, shopping list and custom
// recipe documents.
type StoreController struct {
	Registry *stores.Registry
}

func NewStoreController(reg *stores.Registry) *StoreController {
	return &StoreController{Registry: reg}
}

func recipeIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("recipeId"))
	if err != nil {
		badRequest(c, "recipe id must be numeric")
		return 0, false
	}
	return id, true
}

func (h *StoreController) favorites(c *gin.Context) (*stores.FavoriteStore, bool) {
	uid, ok := mustUser(c)
	if !ok {
		return nil, false
	}
	s, err := h.Registry.Favorites(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return s, true
}

func (h *StoreController) ListFavorites(c *gin.Context) {
	s, ok := h.favorites(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": s.List()})
}

func (h *StoreController) AddFavorite(c *gin.Context) {
	s, ok := h.favorites(c)
	if !ok {
		return
	}
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	if err := s.Add(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": s.List()})
}

func (h *StoreController) RemoveFavorite(c *gin.Context) {
	s, ok := h.favorites(c)
	if !ok {
		return
	}
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	if err := s.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": s.List()})
}

func (h *StoreController) ToggleFavorite(c *gin.Context) {
	s, ok := h.favorites(c)
	if !ok {
		return
	}
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	now, err := s.Toggle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe_id": id, "is_favorite": now})
}

func (h *StoreController) IsFavorite(c *gin.Context) {
	s, ok := h.favorites(c)
	if !ok {
		return
	}
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe_id": id, "is_favorite": s.IsFavorite(id)})
}

// ---------- shopping list ----------

func (h *StoreController) shopping(c *gin.Context) (*stores.ShoppingListStore, bool) {
	uid, ok := mustUser(c)
	if !ok {
		return nil, false
	}
	s, err := h.Registry.ShoppingList(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return s, true
}

func (h *StoreController) ListShoppingItems(c *gin.Context) {
	s, ok := h.shopping(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": s.List()})
}

// AddShoppingItems accepts either one item or {"items": [...]}.
func (h *StoreController) AddShoppingItems(c *gin.Context) {
	s, ok := h.shopping(c)
	if !ok {
		return
	}
	var body struct {
		stores.ShoppingItem
		Items []stores.ShoppingItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	items := body.Items
	if len(items) == 0 {
		if body.Name == "" {
			badRequest(c, "name is required")
			return
		}
		items = []stores.ShoppingItem{body.ShoppingItem}
	}
	added, err := s.AddItems(c.Request.Context(), items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": added})
}

func (h *StoreController) UpdateShoppingItem(c *gin.Context) {
	s, ok := h.shopping(c)
	if !ok {
		return
	}
	var patch stores.ShoppingItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := s.UpdateItem(c.Request.Context(), c.Param("itemId"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *StoreController) ToggleShoppingItem(c *gin.Context) {
	s, ok := h.shopping(c)
	if !ok {
		return
	}
	out, err := s.ToggleItemChecked(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *StoreController) RemoveShoppingItem(c *gin.Context) {
	s, ok := h.shopping(c)
	if !ok {
		return
	}
	if err := s.RemoveItem(c.Request.Context(), c.Param("itemId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearShoppingItems removes everything, or only checked items with ?checked=true.
func (h *StoreController) ClearShoppingItems(c *gin.Context) {
	s, ok := h.shopping(c)
	if !ok {
		return
	}
	var err error
	if c.Query("checked") == "true" {
		err = s.ClearChecked(c.Request.Context())
	} else {
		err = s.ClearItems(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------- custom recipes ----------

func (h *StoreController) custom(c *gin.Context) (*stores.CustomRecipeStore, bool) {
	uid, ok := mustUser(c)
	if !ok {
		return nil, false
	}
	s, err := h.Registry.CustomRecipes(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return s, true
}

func (h *StoreController) ListCustomRecipes(c *gin.Context) {
	s, ok := h.custom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": s.List()})
}

func (h *StoreController) GetCustomRecipe(c *gin.Context) {
	s, ok := h.custom(c)
	if !ok {
		return
	}
	r := s.GetRecipeByID(c.Param("recipeId"))
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *StoreController) AddCustomRecipe(c *gin.Context) {
	s, ok := h.custom(c)
	if !ok {
		return
	}
	var in stores.CustomRecipe
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if in.Title == "" {
		badRequest(c, "title is required")
		return
	}
	out, err := s.AddRecipe(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *StoreController) UpdateCustomRecipe(c *gin.Context) {
	s, ok := h.custom(c)
	if !ok {
		return
	}
	var patch stores.CustomRecipePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := s.UpdateRecipe(c.Request.Context(), c.Param("recipeId"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *StoreController) RemoveCustomRecipe(c *gin.Context) {
	s, ok := h.custom(c)
	if !ok {
		return
	}
	if err := s.RemoveRecipe(c.Request.Context(), c.Param("recipeId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
