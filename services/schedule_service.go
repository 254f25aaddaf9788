package services

import (
	"context"
	"strings"

	"recipehub/models"

	"gorm.io/gorm"
)

type ScheduleService struct {
	db      *gorm.DB
	recipes *RecipeService
}

func NewScheduleService(db *gorm.DB, recipes *RecipeService) *ScheduleService {
	return &ScheduleService{db: db, recipes: recipes}
}

type ScheduleInput struct {
	Date        string   `json:"date"`
	MealType    string   `json:"meal_type"`
	RecipeID    string   `json:"recipe_id"`
	RecipeTitle string   `json:"recipe_title"`
	RecipeImage string   `json:"recipe_image"`
	Source      string   `json:"source"`
	Servings    int      `json:"servings"`
	Calories    *float64 `json:"calories"`
}

func (s *ScheduleService) AddMealSchedule(ctx context.Context, userID uint, in ScheduleInput) (*models.MealSchedule, error) {
	if err := checkDay(in.Date); err != nil {
		return nil, err
	}
	in.MealType = strings.ToLower(strings.TrimSpace(in.MealType))
	if !models.ValidMealType(in.MealType) {
		return nil, invalid("meal_type must be breakfast, lunch, dinner or snack")
	}
	if strings.TrimSpace(in.RecipeID) == "" {
		return nil, invalid("recipe_id is required")
	}
	if in.Servings < 0 || (in.Calories != nil && *in.Calories < 0) {
		return nil, invalid("servings and calories must not be negative")
	}
	if in.Servings == 0 {
		in.Servings = 1
	}
	in.Source = strings.ToLower(strings.TrimSpace(in.Source))
	if in.Source != "" && in.Source != models.SourceSpoonacular && in.Source != models.SourceMealDB {
		return nil, invalid("source must be spoonacular or mealdb")
	}

	// Both providers use numeric ids, so without a source the recipe is
	// stored as the client described it. Otherwise snapshot it so later
	// reads see the same estimated nutrition.
	if s.recipes != nil && in.Source != "" && (in.RecipeTitle == "" || in.Calories == nil) {
		if r, err := s.recipes.ResolveForUser(ctx, userID, in.RecipeID, in.Source); err == nil {
			if in.RecipeTitle == "" {
				in.RecipeTitle = r.Title
			}
			if in.RecipeImage == "" {
				in.RecipeImage = r.Image
			}
			in.Source = r.Source
			if in.Calories == nil && r.Nutrition != nil {
				c := r.Nutrition.Calories
				in.Calories = &c
			}
		}
	}

	sched := models.MealSchedule{
		UserID:      userID,
		Date:        in.Date,
		MealType:    in.MealType,
		RecipeID:    in.RecipeID,
		RecipeTitle: in.RecipeTitle,
		RecipeImage: in.RecipeImage,
		Source:      in.Source,
		Servings:    in.Servings,
		Calories:    in.Calories,
	}
	if err := s.db.WithContext(ctx).Create(&sched).Error; err != nil {
		return nil, err
	}
	return &sched, nil
}

func (s *ScheduleService) GetMealSchedules(ctx context.Context, userID uint, from, to string) ([]models.MealSchedule, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	out := []models.MealSchedule{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (s *ScheduleService) DeleteMealSchedule(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.MealSchedule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
