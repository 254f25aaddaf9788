package services

import (
	"math/rand"
	"strconv"
	"strings"

	"recipehub/models"
	"recipehub/utils"
)

// ConvertMealDB maps a TheMealDB meal into the unified shape. TheMealDB has
// no nutrition or timing data, so those fields are estimated from rnd.
func ConvertMealDB(meal MealDBMeal, rnd *rand.Rand) models.UnifiedRecipe {
	ingredients := make([]models.UnifiedIngredient, 0, mealDBIngredientSlots)
	for i := 0; i < mealDBIngredientSlots; i++ {
		name := strings.TrimSpace(meal.Ingredients[i])
		if name == "" {
			continue
		}
		ingredients = append(ingredients, models.UnifiedIngredient{
			Name:   name,
			Amount: strings.TrimSpace(meal.Measures[i]),
			Image:  IngredientImageURL(name, "small"),
		})
	}

	var tags []string
	for _, t := range strings.Split(meal.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	between := func(lo, hi int) int { return lo + rnd.Intn(hi-lo+1) }
	n := &models.Nutrition{
		Calories: float64(between(200, 599)),
		Protein:  float64(between(10, 39)),
		Carbs:    float64(between(20, 69)),
		Fat:      float64(between(5, 29)),
		Fiber:    float64(between(2, 9)),
		Sugar:    float64(between(5, 19)),
		Sodium:   float64(between(200, 999)),
	}

	category := strings.ToLower(meal.Category)
	vegan := strings.Contains(category, "vegan")

	return models.UnifiedRecipe{
		ID:              meal.IDMeal,
		Title:           meal.StrMeal,
		Image:           meal.Thumb,
		ReadyInMinutes:  between(15, 74),
		Servings:        between(2, 5),
		Instructions:    meal.Instructions,
		Ingredients:     ingredients,
		Category:        meal.Category,
		Cuisine:         meal.Area,
		Tags:            tags,
		Source:          models.SourceMealDB,
		SourceURL:       meal.Source,
		YoutubeURL:      meal.Youtube,
		Nutrition:       n,
		HealthScore:     float64(between(60, 99)),
		PricePerServing: float64(between(100, 399)),
		Vegan:           vegan,
		Vegetarian:      vegan || strings.Contains(category, "vegetarian"),
		GlutenFree:      rnd.Float64() < 0.3,
		DairyFree:       rnd.Float64() < 0.4,
		VeryHealthy:     n.Calories < 400 && n.Fat < 15,
		Cheap:           rnd.Float64() < 0.5,
		Sustainable:     rnd.Float64() < 0.3,
	}
}

// ConvertSpoonacular maps a Spoonacular recipe into the unified shape.
// Nutrition stays nil unless the recipe carried a nutrition block.
func ConvertSpoonacular(r SpoonacularRecipe) models.UnifiedRecipe {
	ingredients := make([]models.UnifiedIngredient, 0, len(r.ExtendedIngredients))
	for _, ing := range r.ExtendedIngredients {
		ingredients = append(ingredients, models.UnifiedIngredient{
			Name:   ing.Name,
			Amount: strconv.FormatFloat(ing.Amount, 'f', -1, 64),
			Unit:   ing.Unit,
			Image:  ing.Image,
		})
	}

	var nutrition *models.Nutrition
	if r.Nutrition != nil {
		nutrition = &models.Nutrition{
			Calories: r.Nutrition.Amount("Calories"),
			Protein:  r.Nutrition.Amount("Protein"),
			Carbs:    r.Nutrition.Amount("Carbohydrates"),
			Fat:      r.Nutrition.Amount("Fat"),
			Fiber:    r.Nutrition.Amount("Fiber"),
			Sugar:    r.Nutrition.Amount("Sugar"),
			Sodium:   r.Nutrition.Amount("Sodium"),
		}
	}

	var cuisine string
	if len(r.Cuisines) > 0 {
		cuisine = r.Cuisines[0]
	}

	return models.UnifiedRecipe{
		ID:              strconv.Itoa(r.ID),
		Title:           r.Title,
		Image:           r.Image,
		ReadyInMinutes:  r.ReadyInMinutes,
		Servings:        r.Servings,
		Instructions:    r.Instructions,
		Ingredients:     ingredients,
		Cuisine:         cuisine,
		Source:          models.SourceSpoonacular,
		SourceURL:       r.SourceURL,
		Nutrition:       nutrition,
		HealthScore:     r.HealthScore,
		PricePerServing: r.PricePerServing,
		Vegan:           r.Vegan,
		Vegetarian:      r.Vegetarian,
		GlutenFree:      r.GlutenFree,
		DairyFree:       r.DairyFree,
		VeryHealthy:     r.VeryHealthy,
		Cheap:           r.Cheap,
		Sustainable:     r.Sustainable,
		DishTypes:       r.DishTypes,
		Diets:           r.Diets,
		Summary:         r.Summary,
		SummaryText:     utils.HTMLToText(r.Summary),
	}
}
