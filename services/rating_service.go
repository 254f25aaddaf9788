package services

import (
	"context"
	"errors"
	"strings"

	"recipehub/models"

	"gorm.io/gorm"
)

type RatingService struct{ db *gorm.DB }

func NewRatingService(db *gorm.DB) *RatingService { return &RatingService{db: db} }

type RatingInput struct {
	Rating     int    `json:"rating"`
	IsFavorite bool   `json:"is_favorite"`
	Notes      string `json:"notes"`
}

// RateRecipe keeps one rating per user and recipe.
func (s *RatingService) RateRecipe(ctx context.Context, userID uint, recipeID string, in RatingInput) (*models.RecipeRating, error) {
	if strings.TrimSpace(recipeID) == "" {
		return nil, invalid("recipe id is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalid("rating must be between 1 and 5")
	}

	rating := models.RecipeRating{UserID: userID, RecipeID: recipeID}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Assign(map[string]any{
			"rating":      in.Rating,
			"is_favorite": in.IsFavorite,
			"notes":       in.Notes,
		}).
		FirstOrCreate(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetRecipeRating returns nil, nil when the user has not rated the recipe.
func (s *RatingService) GetRecipeRating(ctx context.Context, userID uint, recipeID string) (*models.RecipeRating, error) {
	var rating models.RecipeRating
	err := s.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (s *RatingService) GetFavoriteRecipes(ctx context.Context, userID uint) ([]models.RecipeRating, error) {
	out := []models.RecipeRating{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_favorite = ?", userID, true).
		Order("updated_at DESC").
		Find(&out).Error
	return out, err
}
