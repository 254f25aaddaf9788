package models

import "time"

// MealSchedule is a planned meal; unlike MealEntry it has not been eaten yet.
type MealSchedule struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index:idx_meal_schedules_user_date;not null" json:"user_id"`
	Date        string    `gorm:"size:10;index:idx_meal_schedules_user_date;not null" json:"date"`
	MealType    string    `gorm:"size:16;not null" json:"meal_type"`
	RecipeID    string    `gorm:"size:64;not null" json:"recipe_id"`
	RecipeTitle string    `json:"recipe_title"`
	RecipeImage string    `json:"recipe_image,omitempty"`
	Source      string    `gorm:"size:16" json:"source,omitempty"`
	Servings    int       `json:"servings"`
	Calories    *float64  `json:"calories,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
