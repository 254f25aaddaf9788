package stores

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

const CustomRecipesKey = "custom-recipes"

type CustomIngredient struct {
	ID     string  `json:"id,omitempty"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type CustomRecipe struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Image          string             `json:"image,omitempty"`
	ReadyInMinutes int                `json:"readyInMinutes"`
	Servings       int                `json:"servings"`
	Cuisines       []string           `json:"cuisines"`
	Diets          []string           `json:"diets"`
	Instructions   string             `json:"instructions"`
	Ingredients    []CustomIngredient `json:"ingredients"`
	IsCustom       bool               `json:"isCustom"`
}

type CustomRecipePatch struct {
	Title          *string             `json:"title"`
	Image          *string             `json:"image"`
	ReadyInMinutes *int                `json:"readyInMinutes"`
	Servings       *int                `json:"servings"`
	Cuisines       []string            `json:"cuisines"`
	Diets          []string            `json:"diets"`
	Instructions   *string             `json:"instructions"`
	Ingredients    *[]CustomIngredient `json:"ingredients"`
}

type CustomRecipeStore struct {
	doc *document[CustomRecipe]
}

func OpenCustomRecipeStore(ctx context.Context, storage Storage, key string) (*CustomRecipeStore, error) {
	doc, err := openDocument[CustomRecipe](ctx, storage, key)
	if err != nil {
		return nil, err
	}
	return &CustomRecipeStore{doc: doc}, nil
}

func (s *CustomRecipeStore) AddRecipe(ctx context.Context, r CustomRecipe) (CustomRecipe, error) {
	r.ID = uuid.NewString()
	r.IsCustom = true
	if r.Cuisines == nil {
		r.Cuisines = []string{}
	}
	if r.Diets == nil {
		r.Diets = []string{}
	}
	if r.Ingredients == nil {
		r.Ingredients = []CustomIngredient{}
	}
	for i := range r.Ingredients {
		if r.Ingredients[i].ID == "" {
			r.Ingredients[i].ID = uuid.NewString()
		}
	}
	err := s.doc.update(ctx, func(cur []CustomRecipe) ([]CustomRecipe, error) {
		return append(cur, r), nil
	})
	return r, err
}

func (s *CustomRecipeStore) UpdateRecipe(ctx context.Context, id string, p CustomRecipePatch) (CustomRecipe, error) {
	var out CustomRecipe
	err := s.doc.update(ctx, func(cur []CustomRecipe) ([]CustomRecipe, error) {
		i := slices.IndexFunc(cur, func(r CustomRecipe) bool { return r.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("custom recipe %s: %w", id, ErrItemNotFound)
		}
		r := &cur[i]
		if p.Title != nil {
			r.Title = *p.Title
		}
		if p.Image != nil {
			r.Image = *p.Image
		}
		if p.ReadyInMinutes != nil {
			r.ReadyInMinutes = *p.ReadyInMinutes
		}
		if p.Servings != nil {
			r.Servings = *p.Servings
		}
		if p.Cuisines != nil {
			r.Cuisines = p.Cuisines
		}
		if p.Diets != nil {
			r.Diets = p.Diets
		}
		if p.Instructions != nil {
			r.Instructions = *p.Instructions
		}
		if p.Ingredients != nil {
			r.Ingredients = *p.Ingredients
		}
		out = *r
		return cur, nil
	})
	return out, err
}

func (s *CustomRecipeStore) RemoveRecipe(ctx context.Context, id string) error {
	return s.doc.update(ctx, func(cur []CustomRecipe) ([]CustomRecipe, error) {
		return slices.DeleteFunc(cur, func(r CustomRecipe) bool { return r.ID == id }), nil
	})
}

// GetRecipeByID returns nil when no recipe has the id.
func (s *CustomRecipeStore) GetRecipeByID(id string) *CustomRecipe {
	for _, r := range s.doc.list() {
		if r.ID == id {
			return &r
		}
	}
	return nil
}

func (s *CustomRecipeStore) List() []CustomRecipe { return s.doc.list() }
