package models

import (
	"time"

	"gorm.io/datatypes"
)

// RecipeSnapshot freezes the unified record a user planned or logged, so
// estimated nutrition stays the same on every later read.
type RecipeSnapshot struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    uint           `gorm:"uniqueIndex:idx_recipe_snapshots_key;not null"`
	Source    string         `gorm:"size:16;uniqueIndex:idx_recipe_snapshots_key;not null"`
	RecipeID  string         `gorm:"size:64;uniqueIndex:idx_recipe_snapshots_key;not null"`
	Title     string
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
