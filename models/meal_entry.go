package models

import "time"

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

func ValidMealType(t string) bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// MealEntry is one logged (eaten) meal.
type MealEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index:idx_meal_entries_user_date;not null" json:"user_id"`
	Date        string    `gorm:"size:10;index:idx_meal_entries_user_date;not null" json:"date"`
	MealType    string    `gorm:"size:16;not null" json:"meal_type"`
	RecipeID    string    `gorm:"size:64;not null" json:"recipe_id"`
	RecipeTitle string    `json:"recipe_title"`
	Quantity    float64   `json:"quantity"`
	Calories    float64   `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fat         float64   `json:"fat"`
	CreatedAt   time.Time `json:"created_at"`
}
