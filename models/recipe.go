package models

const (
	SourceSpoonacular = "spoonacular"
	SourceMealDB      = "mealdb"
)

// UnifiedRecipe is the common shape both upstream providers are mapped into.
type UnifiedRecipe struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Image          string              `json:"image"`
	ReadyInMinutes int                 `json:"readyInMinutes,omitempty"`
	Servings       int                 `json:"servings,omitempty"`
	Instructions   string              `json:"instructions"`
	Ingredients    []UnifiedIngredient `json:"ingredients"`
	Category       string              `json:"category,omitempty"`
	Cuisine        string              `json:"cuisine,omitempty"`
	Tags           []string            `json:"tags,omitempty"`
	Source         string              `json:"source"`
	SourceURL      string              `json:"sourceUrl,omitempty"`
	YoutubeURL     string              `json:"youtubeUrl,omitempty"`

	Nutrition *Nutrition `json:"nutrition,omitempty"`

	HealthScore     float64 `json:"healthScore,omitempty"`
	PricePerServing float64 `json:"pricePerServing,omitempty"`
	Vegan           bool    `json:"vegan"`
	Vegetarian      bool    `json:"vegetarian"`
	GlutenFree      bool    `json:"glutenFree"`
	DairyFree       bool    `json:"dairyFree"`
	VeryHealthy     bool    `json:"veryHealthy"`
	Cheap           bool    `json:"cheap"`
	Sustainable     bool    `json:"sustainable"`

	DishTypes   []string `json:"dishTypes,omitempty"`
	Diets       []string `json:"diets,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	SummaryText string   `json:"summaryText,omitempty"`
}

type UnifiedIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
	Image  string `json:"image,omitempty"`
}

type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}
