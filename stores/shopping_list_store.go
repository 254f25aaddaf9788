package stores

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

const ShoppingListKey = "shopping-list"

type ShoppingItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Unit        string  `json:"unit"`
	Checked     bool    `json:"checked"`
	RecipeID    *int    `json:"recipeId,omitempty"`
	RecipeTitle string  `json:"recipeTitle,omitempty"`
}

// ShoppingItemPatch carries the fields to change; nil fields are kept.
type ShoppingItemPatch struct {
	Name        *string  `json:"name"`
	Amount      *float64 `json:"amount"`
	Unit        *string  `json:"unit"`
	Checked     *bool    `json:"checked"`
	RecipeID    *int     `json:"recipeId"`
	RecipeTitle *string  `json:"recipeTitle"`
}

type ShoppingListStore struct {
	doc *document[ShoppingItem]
}

func OpenShoppingListStore(ctx context.Context, storage Storage, key string) (*ShoppingListStore, error) {
	doc, err := openDocument[ShoppingItem](ctx, storage, key)
	if err != nil {
		return nil, err
	}
	return &ShoppingListStore{doc: doc}, nil
}

func (s *ShoppingListStore) AddItem(ctx context.Context, item ShoppingItem) (ShoppingItem, error) {
	added, err := s.AddItems(ctx, []ShoppingItem{item})
	if err != nil {
		return ShoppingItem{}, err
	}
	return added[0], nil
}

// AddItems assigns fresh ids and appends the items unchecked.
func (s *ShoppingListStore) AddItems(ctx context.Context, items []ShoppingItem) ([]ShoppingItem, error) {
	added := make([]ShoppingItem, len(items))
	for i, it := range items {
		it.ID = uuid.NewString()
		it.Checked = false
		added[i] = it
	}
	err := s.doc.update(ctx, func(cur []ShoppingItem) ([]ShoppingItem, error) {
		return append(cur, added...), nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (s *ShoppingListStore) modify(ctx context.Context, id string, fn func(*ShoppingItem)) (ShoppingItem, error) {
	var out ShoppingItem
	err := s.doc.update(ctx, func(cur []ShoppingItem) ([]ShoppingItem, error) {
		i := slices.IndexFunc(cur, func(it ShoppingItem) bool { return it.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("shopping item %s: %w", id, ErrItemNotFound)
		}
		fn(&cur[i])
		out = cur[i]
		return cur, nil
	})
	return out, err
}

func (s *ShoppingListStore) UpdateItem(ctx context.Context, id string, p ShoppingItemPatch) (ShoppingItem, error) {
	return s.modify(ctx, id, func(it *ShoppingItem) {
		if p.Name != nil {
			it.Name = *p.Name
		}
		if p.Amount != nil {
			it.Amount = *p.Amount
		}
		if p.Unit != nil {
			it.Unit = *p.Unit
		}
		if p.Checked != nil {
			it.Checked = *p.Checked
		}
		if p.RecipeID != nil {
			it.RecipeID = p.RecipeID
		}
		if p.RecipeTitle != nil {
			it.RecipeTitle = *p.RecipeTitle
		}
	})
}

func (s *ShoppingListStore) ToggleItemChecked(ctx context.Context, id string) (ShoppingItem, error) {
	return s.modify(ctx, id, func(it *ShoppingItem) { it.Checked = !it.Checked })
}

// RemoveItem ignores unknown ids.
func (s *ShoppingListStore) RemoveItem(ctx context.Context, id string) error {
	return s.doc.update(ctx, func(cur []ShoppingItem) ([]ShoppingItem, error) {
		return slices.DeleteFunc(cur, func(it ShoppingItem) bool { return it.ID == id }), nil
	})
}

func (s *ShoppingListStore) ClearItems(ctx context.Context) error {
	return s.doc.update(ctx, func([]ShoppingItem) ([]ShoppingItem, error) {
		return []ShoppingItem{}, nil
	})
}

func (s *ShoppingListStore) ClearChecked(ctx context.Context) error {
	return s.doc.update(ctx, func(cur []ShoppingItem) ([]ShoppingItem, error) {
		return slices.DeleteFunc(cur, func(it ShoppingItem) bool { return it.Checked }), nil
	})
}

func (s *ShoppingListStore) List() []ShoppingItem { return s.doc.list() }
