package services

import (
	"context"
	"errors"

	"recipehub/models"

	"gorm.io/gorm"
)

type GoalService struct{ db *gorm.DB }

func NewGoalService(db *gorm.DB) *GoalService { return &GoalService{db: db} }

type GoalInput struct {
	DailyCalorieTarget float64 `json:"daily_calorie_target"`
	WaterTargetML      float64 `json:"water_target_ml"`
	PreferredDietType  string  `json:"preferred_diet_type"`
	ProteinTargetG     float64 `json:"protein_target_g"`
	CarbsTargetG       float64 `json:"carbs_target_g"`
	FatTargetG         float64 `json:"fat_target_g"`
}

// GetGoals returns nil, nil when the user never saved goals.
func (s *GoalService) GetGoals(ctx context.Context, userID uint) (*models.UserGoal, error) {
	var goal models.UserGoal
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpsertGoals keeps exactly one goal row per user.
func (s *GoalService) UpsertGoals(ctx context.Context, userID uint, in GoalInput) (*models.UserGoal, error) {
	if err := checkNonNegative(map[string]float64{
		"daily_calorie_target": in.DailyCalorieTarget,
		"water_target_ml":      in.WaterTargetML,
		"protein_target_g":     in.ProteinTargetG,
		"carbs_target_g":       in.CarbsTargetG,
		"fat_target_g":         in.FatTargetG,
	}); err != nil {
		return nil, err
	}

	goal := models.UserGoal{UserID: userID}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Assign(map[string]any{
			"daily_calorie_target": in.DailyCalorieTarget,
			"water_target_ml":      in.WaterTargetML,
			"preferred_diet_type":  in.PreferredDietType,
			"protein_target_g":     in.ProteinTargetG,
			"carbs_target_g":       in.CarbsTargetG,
			"fat_target_g":         in.FatTargetG,
		}).
		FirstOrCreate(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// effectiveGoals falls back to the defaults for users without saved goals.
func (s *GoalService) effectiveGoals(ctx context.Context, userID uint) (models.UserGoal, error) {
	g, err := s.GetGoals(ctx, userID)
	if err != nil {
		return models.UserGoal{}, err
	}
	if g == nil {
		return models.DefaultUserGoal(userID), nil
	}
	return *g, nil
}
