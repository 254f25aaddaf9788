package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"recipehub/config"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // every connection to :memory: is a new database
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// fixedToday pins todayString for the duration of a test.
func fixedToday(t *testing.T, day string) {
	t.Helper()
	prev := todayString
	todayString = func() string { return day }
	t.Cleanup(func() { todayString = prev })
}

// fakeProviders serves a small Spoonacular API under /spoon and a TheMealDB
// API under /mealdb. Either side can be switched to answer 500.
type fakeProviders struct {
	srv       *httptest.Server
	spoonDown atomic.Bool
	mealDown  atomic.Bool
	spoonHits atomic.Int32
	mealHits  atomic.Int32
}

func newFakeProviders(t *testing.T) *fakeProviders {
	t.Helper()
	f := &fakeProviders{}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeProviders) spoonURL() string  { return f.srv.URL + "/spoon" }
func (f *fakeProviders) mealDBURL() string { return f.srv.URL + "/mealdb" }

func (f *fakeProviders) recipeService(t *testing.T) *RecipeService {
	return NewRecipeService(
		NewSpoonacularService(f.spoonURL(), "test-key"),
		NewMealDBService(f.mealDBURL()),
		setupTestDB(t),
		nil,
	)
}

func spoonRecipeJSON(id int) map[string]any {
	return map[string]any{
		"id":             id,
		"title":          fmt.Sprintf("Spoon %d", id),
		"image":          fmt.Sprintf("https://img.example/%d.jpg", id),
		"servings":       2,
		"readyInMinutes": 30,
		"cuisines":       []string{"Italian"},
		"vegetarian":     true,
		"summary":        "<b>Tasty</b> dish",
		"extendedIngredients": []map[string]any{
			{"id": 1, "name": "tomato", "amount": 2.5, "unit": "cup"},
			{"id": 2, "name": "salt", "amount": 1, "unit": "tsp"},
		},
		"nutrition": map[string]any{"nutrients": []map[string]any{
			{"name": "Calories", "amount": 420.5, "unit": "kcal"},
			{"name": "Protein", "amount": 20, "unit": "g"},
			{"name": "Carbohydrates", "amount": 50, "unit": "g"},
			{"name": "Fat", "amount": 12, "unit": "g"},
		}},
	}
}

func mealJSON(id string) map[string]any {
	return map[string]any{
		"idMeal":          id,
		"strMeal":         "Meal " + id,
		"strCategory":     "Vegetarian",
		"strArea":         "Indian",
		"strInstructions": "Cook it.",
		"strMealThumb":    "https://www.themealdb.com/images/media/meals/" + id + ".jpg",
		"strTags":         "Curry, Spicy,",
		"strIngredient1":  "Lentils",
		"strMeasure1":     "1 cup ",
		"strIngredient2":  " ",
		"strMeasure2":     "",
		"strIngredient3":  "Onion",
		"strMeasure3":     "1",
		"strIngredient4":  nil,
		"strMeasure4":     nil,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeProviders) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch {
	case strings.HasPrefix(r.URL.Path, "/spoon/"):
		f.spoonHits.Add(1)
		if f.spoonDown.Load() {
			http.Error(w, "quota exceeded", http.StatusInternalServerError)
			return
		}
		if q.Get("apiKey") != "test-key" {
			http.Error(w, "missing key", http.StatusUnauthorized)
			return
		}
		f.serveSpoon(w, r)
	case strings.HasPrefix(r.URL.Path, "/mealdb/"):
		f.mealHits.Add(1)
		if f.mealDown.Load() {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		f.serveMealDB(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeProviders) serveSpoon(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/spoon")
	q := r.URL.Query()
	switch {
	case path == "/recipes/complexSearch":
		n, _ := strconv.Atoi(q.Get("number"))
		var results []map[string]any
		for i := 1; i <= n+2; i++ {
			results = append(results, map[string]any{"id": 100 + i, "title": fmt.Sprintf("Spoon %d", 100+i)})
		}
		writeJSON(w, map[string]any{"results": results, "totalResults": len(results)})
	case path == "/recipes/random":
		n, _ := strconv.Atoi(q.Get("number"))
		var recipes []map[string]any
		for i := 1; i <= n; i++ {
			recipes = append(recipes, spoonRecipeJSON(200+i))
		}
		writeJSON(w, map[string]any{"recipes": recipes})
	case strings.HasPrefix(path, "/recipes/") && strings.HasSuffix(path, "/information"):
		id, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(path, "/recipes/"), "/information"))
		if err != nil || id == 404 {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, spoonRecipeJSON(id))
	case strings.HasPrefix(path, "/recipes/") && strings.HasSuffix(path, "/analyzedInstructions"):
		writeJSON(w, []map[string]any{{"name": "", "steps": []map[string]any{{"number": 1, "step": "Boil water."}}}})
	case path == "/food/ingredients/search":
		if q.Get("query") == "unobtainium" {
			writeJSON(w, map[string]any{"results": []any{}})
			return
		}
		writeJSON(w, map[string]any{"results": []map[string]any{{"id": 9003, "name": q.Get("query")}}})
	case strings.HasPrefix(path, "/food/ingredients/"):
		writeJSON(w, map[string]any{
			"id": 9003, "name": "apple", "amount": 1, "unit": "serving",
			"nutrition": map[string]any{"nutrients": []map[string]any{
				{"name": "Calories", "amount": 95},
				{"name": "Protein", "amount": 0.5},
				{"name": "Carbohydrates", "amount": 25},
				{"name": "Fat", "amount": 0.3},
			}},
		})
	case path == "/mealplanner/generate":
		writeJSON(w, map[string]any{
			"meals":     []map[string]any{{"id": 1, "title": "Oats", "readyInMinutes": 5, "servings": 1}},
			"nutrients": map[string]any{"calories": 1999.5, "protein": 90, "fat": 60, "carbohydrates": 250},
		})
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeProviders) serveMealDB(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/mealdb")
	q := r.URL.Query()
	switch path {
	case "/search.php":
		if q.Get("s") == "nothing" {
			writeJSON(w, map[string]any{"meals": nil})
			return
		}
		writeJSON(w, map[string]any{"meals": []any{mealJSON("52001"), mealJSON("52002"), mealJSON("52003")}})
	case "/lookup.php":
		if q.Get("i") == "0" {
			writeJSON(w, map[string]any{"meals": nil})
			return
		}
		writeJSON(w, map[string]any{"meals": []any{mealJSON(q.Get("i"))}})
	case "/random.php":
		writeJSON(w, map[string]any{"meals": []any{mealJSON("53000")}})
	case "/filter.php":
		writeJSON(w, map[string]any{"meals": []map[string]any{
			{"idMeal": "52101", "strMeal": "A", "strMealThumb": "x"},
			{"idMeal": "52102", "strMeal": "B", "strMealThumb": "y"},
			{"idMeal": "52103", "strMeal": "C", "strMealThumb": "z"},
		}})
	case "/categories.php":
		writeJSON(w, map[string]any{"categories": []map[string]any{{"idCategory": "1", "strCategory": "Beef"}}})
	case "/list.php":
		if q.Get("a") != "" {
			writeJSON(w, map[string]any{"meals": []map[string]any{{"strArea": "Indian"}}})
			return
		}
		writeJSON(w, map[string]any{"meals": []map[string]any{{"idIngredient": "1", "strIngredient": "Chicken"}}})
	default:
		http.NotFound(w, r)
	}
}
