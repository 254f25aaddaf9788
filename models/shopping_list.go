package models

import "time"

type ShoppingList struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	UserID    uint               `gorm:"index;not null" json:"user_id"`
	Name      string             `gorm:"not null" json:"name"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Items     []ShoppingListItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type ShoppingListItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ShoppingListID uint      `gorm:"index;not null" json:"shopping_list_id"`
	IngredientName string    `gorm:"not null" json:"ingredient_name"`
	Quantity       string    `json:"quantity,omitempty"`
	Category       string    `gorm:"size:32;default:other" json:"category"`
	IsChecked      bool      `json:"is_checked"`
	RecipeID       string    `gorm:"size:64" json:"recipe_id,omitempty"`
	RecipeTitle    string    `json:"recipe_title,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
