package models

import "time"

type RecipeRating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex:idx_recipe_ratings_user_recipe;not null" json:"user_id"`
	RecipeID   string    `gorm:"size:64;uniqueIndex:idx_recipe_ratings_user_recipe;not null" json:"recipe_id"`
	Rating     int       `json:"rating"` // 1..5
	IsFavorite bool      `gorm:"index" json:"is_favorite"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
