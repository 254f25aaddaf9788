package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealDBService_SearchByName(t *testing.T) {
	f := newFakeProviders(t)
	svc := NewMealDBService(f.mealDBURL())

	meals, err := svc.SearchByName(context.Background(), "curry")
	require.NoError(t, err)
	require.Len(t, meals, 3)
	assert.Equal(t, "Lentils", meals[0].Ingredients[0])
	assert.Equal(t, "1 cup ", meals[0].Measures[0])
	assert.Equal(t, "", meals[0].Ingredients[3], "null slots decode as empty")
}

func TestMealDBService_NullMealsIsEmpty(t *testing.T) {
	f := newFakeProviders(t)
	svc := NewMealDBService(f.mealDBURL())

	meals, err := svc.SearchByName(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, meals)
	assert.Empty(t, meals)

	meal, err := svc.LookupByID(context.Background(), "0")
	require.NoError(t, err)
	assert.Nil(t, meal)
}

func TestMealDBService_Lists(t *testing.T) {
	f := newFakeProviders(t)
	svc := NewMealDBService(f.mealDBURL())
	ctx := context.Background()

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Beef", cats[0].StrCategory)

	areas, err := svc.Areas(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Indian", areas[0].StrArea)

	ings, err := svc.Ingredients(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Chicken", ings[0].StrIngredient)
}

func TestMealDBService_UpstreamError(t *testing.T) {
	f := newFakeProviders(t)
	f.mealDown.Store(true)
	svc := NewMealDBService(f.mealDBURL())

	_, err := svc.Random(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestImageHelpers(t *testing.T) {
	assert.Equal(t, "https://www.themealdb.com/images/ingredients/olive_oil-small.png", IngredientImageURL("Olive Oil", "small"))
	assert.Equal(t, "https://www.themealdb.com/images/ingredients/lime.png", IngredientImageURL("Lime", "medium"))
	assert.Equal(t, "https://x/meal.jpg/large", ThumbnailURL("https://x/meal.jpg", "large"))
	assert.Equal(t, "", ThumbnailURL("", "small"))
}

func TestSpoonacularService_RequestsCarryKey(t *testing.T) {
	f := newFakeProviders(t)
	ctx := context.Background()

	bad := NewSpoonacularService(f.spoonURL(), "wrong")
	_, err := bad.RandomRecipes(ctx, 1)
	assert.ErrorIs(t, err, ErrUpstream)

	svc := NewSpoonacularService(f.spoonURL(), "test-key")
	recipes, err := svc.RandomRecipes(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, recipes, 3)
}

func TestSpoonacularService_GetRecipeByID(t *testing.T) {
	f := newFakeProviders(t)
	svc := NewSpoonacularService(f.spoonURL(), "test-key")

	r, err := svc.GetRecipeByID(context.Background(), "11")
	require.NoError(t, err)
	assert.Equal(t, 11, r.ID)
	assert.Equal(t, 20.0, r.Nutrition.Amount("Protein"))

	_, err = svc.GetRecipeByID(context.Background(), "404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSpoonacularService_NutritionForIngredient(t *testing.T) {
	f := newFakeProviders(t)
	svc := NewSpoonacularService(f.spoonURL(), "test-key")

	info, err := svc.NutritionForIngredient(context.Background(), "apple")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 95.0, info.Nutrition.Amount("Calories"))

	info, err = svc.NutritionForIngredient(context.Background(), "unobtainium")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestSpoonacularService_Cuisines(t *testing.T) {
	svc := NewSpoonacularService("http://unused", "k")
	c := svc.Cuisines()
	assert.Contains(t, c, "Thai")
	c[0] = "changed"
	assert.NotEqual(t, "changed", svc.Cuisines()[0])
}

func TestGetJSON_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	var out map[string]any
	err := getJSON(context.Background(), srv.Client(), "test", srv.URL, &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestDecodeImage(t *testing.T) {
	data, err := DecodeImage("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	data, err = DecodeImage(" aGVsbG8= ")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	for _, bad := range []string{"", "data:image/png;base64", "%%%"} {
		_, err = DecodeImage(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}
