package services

import (
	"context"
	"fmt"
	"strings"

	"recipehub/models"

	"gorm.io/gorm"
)

const (
	itemBatchSize   = 100
	defaultCategory = "other"
)

type ShoppingService struct {
	db      *gorm.DB
	recipes *RecipeService
}

func NewShoppingService(db *gorm.DB, recipes *RecipeService) *ShoppingService {
	return &ShoppingService{db: db, recipes: recipes}
}

type ShoppingItemInput struct {
	IngredientName string `json:"ingredient_name"`
	Quantity       string `json:"quantity"`
	Category       string `json:"category"`
	RecipeID       string `json:"recipe_id"`
	RecipeTitle    string `json:"recipe_title"`
}

func (s *ShoppingService) CreateShoppingList(ctx context.Context, userID uint, name string) (*models.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	list := models.ShoppingList{UserID: userID, Name: name}
	if err := s.db.WithContext(ctx).Create(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *ShoppingService) ListShoppingLists(ctx context.Context, userID uint) ([]models.ShoppingList, error) {
	out := []models.ShoppingList{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (s *ShoppingService) GetShoppingList(ctx context.Context, userID, listID uint) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ? AND user_id = ?", listID, userID).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *ShoppingService) ownedList(ctx context.Context, userID, listID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ShoppingList{}).
		Where("id = ? AND user_id = ?", listID, userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ShoppingService) AddShoppingListItem(ctx context.Context, userID, listID uint, in ShoppingItemInput) (*models.ShoppingListItem, error) {
	if strings.TrimSpace(in.IngredientName) == "" {
		return nil, invalid("ingredient_name is required")
	}
	if err := s.ownedList(ctx, userID, listID); err != nil {
		return nil, err
	}
	if in.Category == "" {
		in.Category = defaultCategory
	}
	item := models.ShoppingListItem{
		ShoppingListID: listID,
		IngredientName: strings.TrimSpace(in.IngredientName),
		Quantity:       in.Quantity,
		Category:       in.Category,
		RecipeID:       in.RecipeID,
		RecipeTitle:    in.RecipeTitle,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// itemForUser loads an item only if its list belongs to userID.
func (s *ShoppingService) itemForUser(ctx context.Context, userID, itemID uint) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	err := s.db.WithContext(ctx).
		Joins("JOIN shopping_lists ON shopping_lists.id = shopping_list_items.shopping_list_id").
		Where("shopping_list_items.id = ? AND shopping_lists.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ShoppingService) ToggleShoppingListItem(ctx context.Context, userID, itemID uint) (*models.ShoppingListItem, error) {
	item, err := s.itemForUser(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	item.IsChecked = !item.IsChecked
	if err := s.db.WithContext(ctx).Model(item).Update("is_checked", item.IsChecked).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ShoppingService) DeleteShoppingListItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.itemForUser(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(item).Error
}

func (s *ShoppingService) DeleteShoppingList(ctx context.Context, userID, listID uint) error {
	if err := s.ownedList(ctx, userID, listID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shopping_list_id = ?", listID).Delete(&models.ShoppingListItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ShoppingList{}, listID).Error
	})
}

type mergedIngredient struct {
	name       string
	quantities []string
	recipeIDs  []string
	titles     []string
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// GenerateShoppingListFromMeals builds a list from the ingredients of every
// meal scheduled between from and to. Ingredients are merged by name,
// case-insensitively. A meal whose recipe cannot be resolved adds a single
// "1 serving" line.
func (s *ShoppingService) GenerateShoppingListFromMeals(ctx context.Context, userID uint, from, to string) (*models.ShoppingList, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}

	var meals []models.MealSchedule
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC, id ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}

	order := []string{}
	merged := map[string]*mergedIngredient{}
	add := func(name, qty, recipeID, title string) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return
		}
		m, ok := merged[key]
		if !ok {
			m = &mergedIngredient{name: strings.TrimSpace(name)}
			merged[key] = m
			order = append(order, key)
		}
		m.quantities = append(m.quantities, qty)
		m.recipeIDs = appendUnique(m.recipeIDs, recipeID)
		m.titles = appendUnique(m.titles, title)
	}

	for _, meal := range meals {
		var recipe *models.UnifiedRecipe
		if s.recipes != nil && meal.Source != "" {
			r, err := s.recipes.ResolveForUser(ctx, userID, meal.RecipeID, meal.Source)
			if err == nil {
				recipe = r
			} else {
				s.recipes.warn(err, "resolve scheduled recipe")
			}
		}
		if recipe == nil || len(recipe.Ingredients) == 0 {
			add(fmt.Sprintf("Ingredient for %s", meal.RecipeTitle), "1 serving", meal.RecipeID, meal.RecipeTitle)
			continue
		}
		title := meal.RecipeTitle
		if title == "" {
			title = recipe.Title
		}
		for _, ing := range recipe.Ingredients {
			add(ing.Name, strings.TrimSpace(ing.Amount+" "+ing.Unit), meal.RecipeID, title)
		}
	}

	list := models.ShoppingList{UserID: userID, Name: fmt.Sprintf("Meal Plan %s to %s", from, to)}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&list).Error; err != nil {
			return err
		}
		if len(order) == 0 {
			return nil
		}
		items := make([]models.ShoppingListItem, 0, len(order))
		for _, key := range order {
			m := merged[key]
			var qty []string
			for _, q := range m.quantities {
				if q != "" {
					qty = append(qty, q)
				}
			}
			item := models.ShoppingListItem{
				ShoppingListID: list.ID,
				IngredientName: m.name,
				Quantity:       strings.Join(qty, " + "),
				Category:       defaultCategory,
				RecipeTitle:    strings.Join(m.titles, ", "),
			}
			if len(m.recipeIDs) == 1 {
				item.RecipeID = m.recipeIDs[0]
			}
			items = append(items, item)
		}
		if err := tx.CreateInBatches(&items, itemBatchSize).Error; err != nil {
			return err
		}
		list.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}
