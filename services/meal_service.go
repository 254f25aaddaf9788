package services

import (
	"context"
	"strings"

	"recipehub/models"

	"gorm.io/gorm"
)

type MealService struct {
	db   *gorm.DB
	logs *DailyLogService
}

func NewMealService(db *gorm.DB, logs *DailyLogService) *MealService {
	return &MealService{db: db, logs: logs}
}

type MealEntryInput struct {
	Date        string  `json:"date"`
	MealType    string  `json:"meal_type"`
	RecipeID    string  `json:"recipe_id"`
	RecipeTitle string  `json:"recipe_title"`
	Quantity    float64 `json:"quantity"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}

func (in *MealEntryInput) validate() error {
	if in.Date == "" {
		in.Date = todayString()
	}
	if err := checkDay(in.Date); err != nil {
		return err
	}
	in.MealType = strings.ToLower(strings.TrimSpace(in.MealType))
	if !models.ValidMealType(in.MealType) {
		return invalid("meal_type must be breakfast, lunch, dinner or snack")
	}
	if strings.TrimSpace(in.RecipeID) == "" {
		return invalid("recipe_id is required")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	return checkNonNegative(map[string]float64{
		"quantity": in.Quantity, "calories": in.Calories,
		"protein": in.Protein, "carbs": in.Carbs, "fat": in.Fat,
	})
}

// AddMealEntry appends an entry and refreshes that day's totals.
func (s *MealService) AddMealEntry(ctx context.Context, userID uint, in MealEntryInput) (*models.MealEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	entry := models.MealEntry{
		UserID:      userID,
		Date:        in.Date,
		MealType:    in.MealType,
		RecipeID:    in.RecipeID,
		RecipeTitle: in.RecipeTitle,
		Quantity:    in.Quantity,
		Calories:    in.Calories,
		Protein:     in.Protein,
		Carbs:       in.Carbs,
		Fat:         in.Fat,
	}
	_, err := s.logs.Apply(ctx, userID, entry.Date, func(tx *gorm.DB) error {
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *MealService) GetMealEntries(ctx context.Context, userID uint, date string) ([]models.MealEntry, error) {
	if err := checkDay(date); err != nil {
		return nil, err
	}
	entries := []models.MealEntry{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// DeleteMealEntry removes one of the user's entries; other users' ids are
// reported as not found.
func (s *MealService) DeleteMealEntry(ctx context.Context, userID, id uint) error {
	var entry models.MealEntry
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		return err
	}
	_, err := s.logs.Apply(ctx, userID, entry.Date, func(tx *gorm.DB) error {
		return tx.Delete(&entry).Error
	})
	return err
}
