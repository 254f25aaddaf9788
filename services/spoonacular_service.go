package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// SpoonacularService wraps the key-authenticated Spoonacular REST API.
type SpoonacularService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSpoonacularService(baseURL, apiKey string) *SpoonacularService {
	return &SpoonacularService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  newHTTPClient(),
	}
}

type SpoonacularRecipe struct {
	ID                  int                     `json:"id"`
	Title               string                  `json:"title"`
	Image               string                  `json:"image"`
	Servings            int                     `json:"servings"`
	ReadyInMinutes      int                     `json:"readyInMinutes"`
	SourceURL           string                  `json:"sourceUrl"`
	HealthScore         float64                 `json:"healthScore"`
	PricePerServing     float64                 `json:"pricePerServing"`
	Cheap               bool                    `json:"cheap"`
	DairyFree           bool                    `json:"dairyFree"`
	GlutenFree          bool                    `json:"glutenFree"`
	Sustainable         bool                    `json:"sustainable"`
	Vegan               bool                    `json:"vegan"`
	Vegetarian          bool                    `json:"vegetarian"`
	VeryHealthy         bool                    `json:"veryHealthy"`
	Cuisines            []string                `json:"cuisines"`
	Diets               []string                `json:"diets"`
	DishTypes           []string                `json:"dishTypes"`
	Instructions        string                  `json:"instructions"`
	Summary             string                  `json:"summary"`
	ExtendedIngredients []SpoonacularIngredient `json:"extendedIngredients"`
	Nutrition           *SpoonacularNutrition   `json:"nutrition,omitempty"`
}

type SpoonacularIngredient struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Image  string  `json:"image"`
}

type SpoonacularNutrition struct {
	Nutrients []SpoonacularNutrient `json:"nutrients"`
}

type SpoonacularNutrient struct {
	Name                string  `json:"name"`
	Amount              float64 `json:"amount"`
	Unit                string  `json:"unit"`
	PercentOfDailyNeeds float64 `json:"percentOfDailyNeeds"`
}

// Amount returns the first nutrient with exactly this name, or 0.
func (n *SpoonacularNutrition) Amount(name string) float64 {
	if n == nil {
		return 0
	}
	for _, nu := range n.Nutrients {
		if nu.Name == name {
			return nu.Amount
		}
	}
	return 0
}

type SpoonacularSearchResponse struct {
	Results      []SpoonacularSearchResult `json:"results"`
	Offset       int                       `json:"offset"`
	Number       int                       `json:"number"`
	TotalResults int                       `json:"totalResults"`
}

type SpoonacularSearchResult struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	ImageType string `json:"imageType"`
}

type AnalyzedInstruction struct {
	Name  string            `json:"name"`
	Steps []InstructionStep `json:"steps"`
}

type InstructionStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

type MealPlan struct {
	Meals     []MealPlanItem `json:"meals"`
	Nutrients struct {
		Calories      float64 `json:"calories"`
		Protein       float64 `json:"protein"`
		Fat           float64 `json:"fat"`
		Carbohydrates float64 `json:"carbohydrates"`
	} `json:"nutrients"`
}

type MealPlanItem struct {
	ID             int    `json:"id"`
	ImageType      string `json:"imageType"`
	Title          string `json:"title"`
	ReadyInMinutes int    `json:"readyInMinutes"`
	Servings       int    `json:"servings"`
	SourceURL      string `json:"sourceUrl"`
}

type IngredientInfo struct {
	ID        int                   `json:"id"`
	Name      string                `json:"name"`
	Amount    float64               `json:"amount"`
	Unit      string                `json:"unit"`
	Image     string                `json:"image"`
	Nutrition *SpoonacularNutrition `json:"nutrition,omitempty"`
}

var spoonacularCuisines = []string{
	"African", "American", "British", "Cajun", "Caribbean", "Chinese", "Eastern European",
	"European", "French", "German", "Greek", "Indian", "Irish", "Italian", "Japanese",
	"Jewish", "Korean", "Latin American", "Mediterranean", "Mexican", "Middle Eastern",
	"Nordic", "Southern", "Spanish", "Thai", "Vietnamese",
}

func (s *SpoonacularService) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apiKey", s.apiKey)
	return s.baseURL + path + "?" + params.Encode()
}

func (s *SpoonacularService) RandomRecipes(ctx context.Context, number int) ([]SpoonacularRecipe, error) {
	var out struct {
		Recipes []SpoonacularRecipe `json:"recipes"`
	}
	u := s.endpoint("/recipes/random", url.Values{"number": {strconv.Itoa(number)}})
	if err := getJSON(ctx, s.client, "spoonacular random", u, &out); err != nil {
		return nil, err
	}
	return out.Recipes, nil
}

func (s *SpoonacularService) SearchRecipes(ctx context.Context, query, cuisine, diet string, number int) (*SpoonacularSearchResponse, error) {
	params := url.Values{"query": {query}, "number": {strconv.Itoa(number)}}
	if cuisine != "" {
		params.Set("cuisine", cuisine)
	}
	if diet != "" {
		params.Set("diet", diet)
	}
	var out SpoonacularSearchResponse
	if err := getJSON(ctx, s.client, "spoonacular search", s.endpoint("/recipes/complexSearch", params), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SpoonacularService) GetRecipeByID(ctx context.Context, id string) (*SpoonacularRecipe, error) {
	u := s.endpoint(fmt.Sprintf("/recipes/%s/information", url.PathEscape(id)), url.Values{"includeNutrition": {"true"}})
	var out SpoonacularRecipe
	if err := getJSON(ctx, s.client, "spoonacular information", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SpoonacularService) GetRecipeInstructions(ctx context.Context, id string) ([]AnalyzedInstruction, error) {
	u := s.endpoint(fmt.Sprintf("/recipes/%s/analyzedInstructions", url.PathEscape(id)), nil)
	var out []AnalyzedInstruction
	if err := getJSON(ctx, s.client, "spoonacular instructions", u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Cuisines is a fixed list; the API has no endpoint for it.
func (s *SpoonacularService) Cuisines() []string {
	out := make([]string, len(spoonacularCuisines))
	copy(out, spoonacularCuisines)
	return out
}

// NutritionForIngredient returns nil, nil when no ingredient matches.
func (s *SpoonacularService) NutritionForIngredient(ctx context.Context, ingredient string) (*IngredientInfo, error) {
	var search struct {
		Results []struct {
			ID int `json:"id"`
		} `json:"results"`
	}
	u := s.endpoint("/food/ingredients/search", url.Values{"query": {ingredient}, "number": {"1"}})
	if err := getJSON(ctx, s.client, "spoonacular ingredient search", u, &search); err != nil {
		return nil, err
	}
	if len(search.Results) == 0 {
		return nil, nil
	}

	u = s.endpoint(fmt.Sprintf("/food/ingredients/%d/information", search.Results[0].ID),
		url.Values{"amount": {"1"}, "unit": {"serving"}})
	var info IngredientInfo
	if err := getJSON(ctx, s.client, "spoonacular ingredient information", u, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *SpoonacularService) GenerateMealPlan(ctx context.Context, targetCalories int, diet, exclude string) (*MealPlan, error) {
	params := url.Values{"targetCalories": {strconv.Itoa(targetCalories)}, "timeFrame": {"day"}}
	if diet != "" {
		params.Set("diet", diet)
	}
	if exclude != "" {
		params.Set("exclude", exclude)
	}
	var out MealPlan
	if err := getJSON(ctx, s.client, "spoonacular meal planner", s.endpoint("/mealplanner/generate", params), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
