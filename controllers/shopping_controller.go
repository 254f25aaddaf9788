package controllers

import (
	"net/http"

	"recipehub/services"

	"github.com/gin-gonic/gin"
)

type ShoppingController struct {
	Svc *services.ShoppingService
}

func NewShoppingController(svc *services.ShoppingService) *ShoppingController {
	return &ShoppingController{Svc: svc}
}

func (h *ShoppingController) CreateList(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := h.Svc.CreateShoppingList(c.Request.Context(), uid, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *ShoppingController) GenerateFromMeals(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var req struct {
		From string `json:"from" binding:"required"`
		To   string `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := h.Svc.GenerateShoppingListFromMeals(c.Request.Context(), uid, req.From, req.To)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *ShoppingController) ListLists(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	out, err := h.Svc.ListShoppingLists(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_lists": out})
}

func (h *ShoppingController) GetList(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	out, err := h.Svc.GetShoppingList(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ShoppingController) DeleteList(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.DeleteShoppingList(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShoppingController) AddItem(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.ShoppingItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := h.Svc.AddShoppingListItem(c.Request.Context(), uid, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *ShoppingController) ToggleItem(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "itemId")
	if !ok {
		return
	}
	out, err := h.Svc.ToggleShoppingListItem(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ShoppingController) DeleteItem(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "itemId")
	if !ok {
		return
	}
	if err := h.Svc.DeleteShoppingListItem(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
