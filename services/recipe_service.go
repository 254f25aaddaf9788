package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"recipehub/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// fanOutLimit caps concurrent upstream calls per request.
const fanOutLimit = 6

// LabelRecognizer turns an image into descriptive labels.
type LabelRecognizer interface {
	RecognizeLabels(ctx context.Context, base64Img string) ([]string, error)
}

// RecipeService merges both providers into UnifiedRecipe results.
// Individual provider failures are logged and skipped.
type RecipeService struct {
	spoon      *SpoonacularService
	mealdb     *MealDBService
	db         *gorm.DB
	recognizer LabelRecognizer
	log        *logrus.Logger

	mu  sync.Mutex // guards rnd
	rnd *rand.Rand
}

func NewRecipeService(spoon *SpoonacularService, mealdb *MealDBService, db *gorm.DB, log *logrus.Logger) *RecipeService {
	return &RecipeService{
		spoon:  spoon,
		mealdb: mealdb,
		db:     db,
		log:    log,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the estimator's random source.
func (s *RecipeService) WithRand(r *rand.Rand) *RecipeService {
	s.mu.Lock()
	s.rnd = r
	s.mu.Unlock()
	return s
}

func (s *RecipeService) WithRecognizer(r LabelRecognizer) *RecipeService {
	s.recognizer = r
	return s
}

func (s *RecipeService) convertMeal(m MealDBMeal) models.UnifiedRecipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ConvertMealDB(m, s.rnd)
}

func (s *RecipeService) warn(err error, msg string) {
	if s.log != nil {
		s.log.WithError(err).Warn(msg)
	}
}

func split(limit int) (spoon, meal int) {
	return (limit + 1) / 2, limit / 2
}

// settled runs every task to completion and keeps the successful results
// in task order. The returned error is non-nil only when all tasks failed.
func settled[T any](ctx context.Context, n int, task func(ctx context.Context, i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	errs := make([]error, n)

	var g errgroup.Group
	g.SetLimit(fanOutLimit)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			results[i], errs[i] = task(ctx, i)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]T, 0, n)
	var failed []error
	for i := range results {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		out = append(out, results[i])
	}
	if n > 0 && len(failed) == n {
		return nil, errors.Join(failed...)
	}
	return out, nil
}

func (s *RecipeService) spoonacularDetails(ctx context.Context, ids []int) []models.UnifiedRecipe {
	recipes, err := settled(ctx, len(ids), func(ctx context.Context, i int) (models.UnifiedRecipe, error) {
		r, err := s.spoon.GetRecipeByID(ctx, strconv.Itoa(ids[i]))
		if err != nil {
			return models.UnifiedRecipe{}, err
		}
		return ConvertSpoonacular(*r), nil
	})
	if err != nil {
		s.warn(err, "spoonacular details")
	}
	return recipes
}

func (s *RecipeService) mealDBDetails(ctx context.Context, meals []MealDBMeal) []models.UnifiedRecipe {
	recipes, err := settled(ctx, len(meals), func(ctx context.Context, i int) (models.UnifiedRecipe, error) {
		m, err := s.mealdb.LookupByID(ctx, meals[i].IDMeal)
		if err != nil {
			return models.UnifiedRecipe{}, err
		}
		if m == nil {
			return models.UnifiedRecipe{}, fmt.Errorf("meal %s: %w", meals[i].IDMeal, ErrRecipeNotFound)
		}
		return s.convertMeal(*m), nil
	})
	if err != nil {
		s.warn(err, "mealdb details")
	}
	return recipes
}

func (s *RecipeService) spoonacularSearch(ctx context.Context, query, cuisine string, n int) ([]models.UnifiedRecipe, error) {
	if n <= 0 {
		return nil, nil
	}
	res, err := s.spoon.SearchRecipes(ctx, query, cuisine, "", n)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, n)
	for _, r := range res.Results {
		if len(ids) == n {
			break
		}
		ids = append(ids, r.ID)
	}
	return s.spoonacularDetails(ctx, ids), nil
}

// combine joins the provider results in order; err is set only when every
// provider failed.
func (s *RecipeService) combine(limit int, parts [][]models.UnifiedRecipe, errs []error) ([]models.UnifiedRecipe, error) {
	out := []models.UnifiedRecipe{}
	var failed []error
	for i, p := range parts {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			s.warn(errs[i], "recipe provider failed")
			continue
		}
		out = append(out, p...)
	}
	if len(failed) == len(parts) && len(parts) > 0 {
		return nil, errors.Join(failed...)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SearchAll searches both providers, Spoonacular results first.
func (s *RecipeService) SearchAll(ctx context.Context, query string, limit int) ([]models.UnifiedRecipe, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %w", ErrInvalidInput)
	}
	spoonN, mealN := split(limit)

	var spoon, meal []models.UnifiedRecipe
	var spoonErr, mealErr error
	var g errgroup.Group
	g.Go(func() error {
		spoon, spoonErr = s.spoonacularSearch(ctx, query, "", spoonN)
		return nil
	})
	g.Go(func() error {
		meals, err := s.mealdb.SearchByName(ctx, query)
		if err != nil {
			mealErr = err
			return nil
		}
		if len(meals) > mealN {
			meals = meals[:mealN]
		}
		for _, m := range meals {
			meal = append(meal, s.convertMeal(m))
		}
		return nil
	})
	_ = g.Wait()

	return s.combine(limit, [][]models.UnifiedRecipe{spoon, meal}, []error{spoonErr, mealErr})
}

// Random draws ceil(count/2) recipes from Spoonacular and floor(count/2)
// from TheMealDB.
func (s *RecipeService) Random(ctx context.Context, count int) ([]models.UnifiedRecipe, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive: %w", ErrInvalidInput)
	}
	spoonN, mealN := split(count)

	var spoon, meal []models.UnifiedRecipe
	var spoonErr, mealErr error
	var g errgroup.Group
	g.Go(func() error {
		recipes, err := s.spoon.RandomRecipes(ctx, spoonN)
		if err != nil {
			spoonErr = err
			return nil
		}
		for _, r := range recipes {
			spoon = append(spoon, ConvertSpoonacular(r))
		}
		return nil
	})
	g.Go(func() error {
		if mealN == 0 {
			return nil
		}
		meal, mealErr = settled(ctx, mealN, func(ctx context.Context, _ int) (models.UnifiedRecipe, error) {
			m, err := s.mealdb.Random(ctx)
			if err != nil {
				return models.UnifiedRecipe{}, err
			}
			if m == nil {
				return models.UnifiedRecipe{}, fmt.Errorf("mealdb random: empty response: %w", ErrUpstream)
			}
			return s.convertMeal(*m), nil
		})
		return nil
	})
	_ = g.Wait()

	return s.combine(count, [][]models.UnifiedRecipe{spoon, meal}, []error{spoonErr, mealErr})
}

func isNumeric(id string) bool {
	_, err := strconv.ParseFloat(id, 64)
	return err == nil
}

// GetByID resolves id against TheMealDB when source is "mealdb", or when
// no source is given and id is not numeric; otherwise against Spoonacular.
func (s *RecipeService) GetByID(ctx context.Context, id, source string) (*models.UnifiedRecipe, error) {
	if id == "" {
		return nil, fmt.Errorf("recipe id is required: %w", ErrInvalidInput)
	}
	if source == models.SourceMealDB || (source == "" && !isNumeric(id)) {
		m, err := s.mealdb.LookupByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, ErrRecipeNotFound
		}
		r := s.convertMeal(*m)
		return &r, nil
	}

	sr, err := s.spoon.GetRecipeByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	r := ConvertSpoonacular(*sr)
	return &r, nil
}

// FilterByCategory returns TheMealDB category matches first, then
// Spoonacular recipes of the same cuisine.
func (s *RecipeService) FilterByCategory(ctx context.Context, category string, limit int) ([]models.UnifiedRecipe, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %w", ErrInvalidInput)
	}
	spoonN, mealN := split(limit)

	var spoon, meal []models.UnifiedRecipe
	var spoonErr, mealErr error
	var g errgroup.Group
	g.Go(func() error {
		meals, err := s.mealdb.FilterByCategory(ctx, category)
		if err != nil {
			mealErr = err
			return nil
		}
		if len(meals) > mealN {
			meals = meals[:mealN]
		}
		meal = s.mealDBDetails(ctx, meals)
		return nil
	})
	g.Go(func() error {
		spoon, spoonErr = s.spoonacularSearch(ctx, "", category, spoonN)
		return nil
	})
	_ = g.Wait()

	return s.combine(limit, [][]models.UnifiedRecipe{meal, spoon}, []error{mealErr, spoonErr})
}

// FilterByArea lists TheMealDB meals of one cuisine area with full details.
func (s *RecipeService) FilterByArea(ctx context.Context, area string, limit int) ([]models.UnifiedRecipe, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %w", ErrInvalidInput)
	}
	meals, err := s.mealdb.FilterByArea(ctx, area)
	if err != nil {
		return nil, err
	}
	if len(meals) > limit {
		meals = meals[:limit]
	}
	return s.mealDBDetails(ctx, meals), nil
}

type Recognition struct {
	Labels  []string               `json:"labels"`
	Recipes []models.UnifiedRecipe `json:"recipes"`
}

// RecognizeAndSearch labels a photo and searches recipes for the top label.
func (s *RecipeService) RecognizeAndSearch(ctx context.Context, base64Img string, limit int) (*Recognition, error) {
	if s.recognizer == nil {
		return nil, errors.New("image recognition is not configured")
	}
	labels, err := s.recognizer.RecognizeLabels(ctx, base64Img)
	if err != nil {
		return nil, err
	}
	out := &Recognition{Labels: labels, Recipes: []models.UnifiedRecipe{}}
	if len(labels) == 0 {
		return out, nil
	}
	recipes, err := s.SearchAll(ctx, labels[0], limit)
	if err != nil {
		return nil, err
	}
	out.Recipes = recipes
	return out, nil
}

func (s *RecipeService) Categories(ctx context.Context) ([]MealDBCategory, error) {
	return s.mealdb.Categories(ctx)
}

func (s *RecipeService) Areas(ctx context.Context) ([]MealDBArea, error) {
	return s.mealdb.Areas(ctx)
}

func (s *RecipeService) Ingredients(ctx context.Context) ([]MealDBIngredient, error) {
	return s.mealdb.Ingredients(ctx)
}

func (s *RecipeService) Cuisines() []string { return s.spoon.Cuisines() }

func (s *RecipeService) Instructions(ctx context.Context, id string) ([]AnalyzedInstruction, error) {
	out, err := s.spoon.GetRecipeInstructions(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrRecipeNotFound
	}
	return out, err
}

// ---------- Snapshots ----------

// Snapshot stores the unified record for this user, replacing any older copy.
func (s *RecipeService) Snapshot(ctx context.Context, userID uint, r models.UnifiedRecipe) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	row := models.RecipeSnapshot{UserID: userID, Source: r.Source, RecipeID: r.ID}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND source = ? AND recipe_id = ?", userID, r.Source, r.ID).
		Assign(models.RecipeSnapshot{Title: r.Title, Payload: datatypes.JSON(payload)}).
		FirstOrCreate(&row).Error
}

// LoadSnapshot returns nil, nil when the user has no snapshot of the recipe.
func (s *RecipeService) LoadSnapshot(ctx context.Context, userID uint, source, id string) (*models.UnifiedRecipe, error) {
	q := s.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, id)
	if source != "" {
		q = q.Where("source = ?", source)
	}
	var row models.RecipeSnapshot
	if err := q.Order("updated_at DESC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var r models.UnifiedRecipe
	if err := json.Unmarshal(row.Payload, &r); err != nil {
		return nil, fmt.Errorf("decode snapshot %d: %w", row.ID, err)
	}
	return &r, nil
}

// ResolveForUser prefers the user's snapshot and otherwise fetches the
// recipe and snapshots it, so estimated values stay fixed afterwards.
func (s *RecipeService) ResolveForUser(ctx context.Context, userID uint, id, source string) (*models.UnifiedRecipe, error) {
	if r, err := s.LoadSnapshot(ctx, userID, source, id); err != nil || r != nil {
		return r, err
	}
	r, err := s.GetByID(ctx, id, source)
	if err != nil {
		return nil, err
	}
	if err := s.Snapshot(ctx, userID, *r); err != nil {
		s.warn(err, "store recipe snapshot")
	}
	return r, nil
}
