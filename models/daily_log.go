package models

import "time"

// DailyLog aggregates one user's totals for one day.
type DailyLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex:idx_daily_logs_user_date;not null" json:"user_id"`
	Date          string    `gorm:"size:10;uniqueIndex:idx_daily_logs_user_date;not null" json:"date"` // YYYY-MM-DD
	TotalCalories float64   `json:"total_calories"`
	TotalProtein  float64   `json:"total_protein"`
	TotalCarbs    float64   `json:"total_carbs"`
	TotalFat      float64   `json:"total_fat"`
	WaterIntakeML float64   `json:"water_intake_ml"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
