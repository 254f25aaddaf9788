package models

import "time"

// WeightLog keeps one measurement per user per day.
type WeightLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_weight_logs_user_date;not null" json:"user_id"`
	Date      string    `gorm:"size:10;uniqueIndex:idx_weight_logs_user_date;not null" json:"date"`
	WeightKG  float64   `json:"weight_kg"`
	CreatedAt time.Time `json:"created_at"`
}

type WaterLog struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"index:idx_water_logs_user_date;not null" json:"user_id"`
	Date     string    `gorm:"size:10;index:idx_water_logs_user_date;not null" json:"date"`
	AmountML float64   `json:"amount_ml"`
	LoggedAt time.Time `json:"logged_at"`
}
