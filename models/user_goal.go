package models

import "time"

// UserGoal holds a user's daily targets. One row per user.
type UserGoal struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	DailyCalorieTarget float64   `json:"daily_calorie_target"` // kcal
	WaterTargetML      float64   `json:"water_target_ml"`
	PreferredDietType  string    `gorm:"size:32" json:"preferred_diet_type,omitempty"`
	ProteinTargetG     float64   `json:"protein_target_g"`
	CarbsTargetG       float64   `json:"carbs_target_g"`
	FatTargetG         float64   `json:"fat_target_g"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DefaultUserGoal mirrors the targets offered before a user saves their own.
func DefaultUserGoal(userID uint) UserGoal {
	return UserGoal{
		UserID:             userID,
		DailyCalorieTarget: 2000,
		WaterTargetML:      2000,
		ProteinTargetG:     150,
		CarbsTargetG:       250,
		FatTargetG:         65,
	}
}
