package services

import (
	"encoding/json"
	"math/rand"
	"testing"

	"recipehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeMeal(t *testing.T, v map[string]any) MealDBMeal {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var m MealDBMeal
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestConvertMealDB_Fields(t *testing.T) {
	meal := decodeMeal(t, mealJSON("52772"))
	r := ConvertMealDB(meal, rand.New(rand.NewSource(1)))

	assert.Equal(t, "52772", r.ID)
	assert.Equal(t, "Meal 52772", r.Title)
	assert.Equal(t, models.SourceMealDB, r.Source)
	assert.Equal(t, "Indian", r.Cuisine)
	assert.Equal(t, []string{"Curry", "Spicy"}, r.Tags)
	require.Len(t, r.Ingredients, 2, "blank ingredient slots are skipped")
	assert.Equal(t, "Lentils", r.Ingredients[0].Name)
	assert.Equal(t, "1 cup", r.Ingredients[0].Amount)
	assert.Equal(t, "Onion", r.Ingredients[1].Name)
	assert.True(t, r.Vegetarian)
	assert.False(t, r.Vegan)
	require.NotNil(t, r.Nutrition)
}

func TestConvertMealDB_EstimatesStayInRange(t *testing.T) {
	meal := decodeMeal(t, mealJSON("1"))
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		r := ConvertMealDB(meal, rnd)
		n := r.Nutrition
		assert.GreaterOrEqual(t, n.Calories, 200.0)
		assert.LessOrEqual(t, n.Calories, 599.0)
		assert.GreaterOrEqual(t, n.Protein, 10.0)
		assert.LessOrEqual(t, n.Protein, 39.0)
		assert.GreaterOrEqual(t, n.Carbs, 20.0)
		assert.LessOrEqual(t, n.Carbs, 69.0)
		assert.GreaterOrEqual(t, n.Fat, 5.0)
		assert.LessOrEqual(t, n.Fat, 29.0)
		assert.GreaterOrEqual(t, n.Fiber, 2.0)
		assert.LessOrEqual(t, n.Fiber, 9.0)
		assert.GreaterOrEqual(t, n.Sugar, 5.0)
		assert.LessOrEqual(t, n.Sugar, 19.0)
		assert.GreaterOrEqual(t, n.Sodium, 200.0)
		assert.LessOrEqual(t, n.Sodium, 999.0)
		assert.GreaterOrEqual(t, r.HealthScore, 60.0)
		assert.LessOrEqual(t, r.HealthScore, 99.0)
		assert.GreaterOrEqual(t, r.ReadyInMinutes, 15)
		assert.LessOrEqual(t, r.ReadyInMinutes, 74)
		assert.GreaterOrEqual(t, r.Servings, 2)
		assert.LessOrEqual(t, r.Servings, 5)
		assert.GreaterOrEqual(t, r.PricePerServing, 100.0)
		assert.LessOrEqual(t, r.PricePerServing, 399.0)
		assert.Equal(t, n.Calories < 400 && n.Fat < 15, r.VeryHealthy)
	}
}

func TestConvertMealDB_VeganCategory(t *testing.T) {
	v := mealJSON("2")
	v["strCategory"] = "Vegan"
	r := ConvertMealDB(decodeMeal(t, v), rand.New(rand.NewSource(3)))
	assert.True(t, r.Vegan)
	assert.True(t, r.Vegetarian)

	v["strCategory"] = "Beef"
	r = ConvertMealDB(decodeMeal(t, v), rand.New(rand.NewSource(3)))
	assert.False(t, r.Vegan)
	assert.False(t, r.Vegetarian)
}

func TestConvertMealDB_EmptyMeal(t *testing.T) {
	r := ConvertMealDB(MealDBMeal{IDMeal: "9", StrMeal: "Bare"}, rand.New(rand.NewSource(1)))
	assert.NotNil(t, r.Ingredients)
	assert.Empty(t, r.Ingredients)
	assert.Nil(t, r.Tags)
	assert.NotNil(t, r.Nutrition)
}

func TestConvertSpoonacular(t *testing.T) {
	raw, err := json.Marshal(spoonRecipeJSON(715538))
	require.NoError(t, err)
	var sr SpoonacularRecipe
	require.NoError(t, json.Unmarshal(raw, &sr))

	r := ConvertSpoonacular(sr)
	assert.Equal(t, "715538", r.ID)
	assert.Equal(t, models.SourceSpoonacular, r.Source)
	assert.Equal(t, "Italian", r.Cuisine)
	assert.True(t, r.Vegetarian)
	assert.Equal(t, "Tasty dish", r.SummaryText)
	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, "2.5", r.Ingredients[0].Amount)
	assert.Equal(t, "1", r.Ingredients[1].Amount)
	require.NotNil(t, r.Nutrition)
	assert.Equal(t, 420.5, r.Nutrition.Calories)
	assert.Equal(t, 50.0, r.Nutrition.Carbs)
	assert.Zero(t, r.Nutrition.Sodium, "missing nutrients default to zero")
}

func TestConvertSpoonacular_NoNutritionBlock(t *testing.T) {
	r := ConvertSpoonacular(SpoonacularRecipe{ID: 7, Title: "Plain"})
	assert.Nil(t, r.Nutrition)
	assert.NotNil(t, r.Ingredients)
	assert.Equal(t, "", r.Cuisine)
}
