package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const mealDBIngredientSlots = 20

// MealDBService wraps TheMealDB's anonymous JSON API.
type MealDBService struct {
	baseURL string
	client  *http.Client
}

func NewMealDBService(baseURL string) *MealDBService {
	return &MealDBService{baseURL: strings.TrimRight(baseURL, "/"), client: newHTTPClient()}
}

type MealDBMeal struct {
	IDMeal       string `json:"idMeal"`
	StrMeal      string `json:"strMeal"`
	Category     string `json:"strCategory,omitempty"`
	Area         string `json:"strArea,omitempty"`
	Instructions string `json:"strInstructions,omitempty"`
	Thumb        string `json:"strMealThumb"`
	Tags         string `json:"strTags,omitempty"`
	Youtube      string `json:"strYoutube,omitempty"`
	Source       string `json:"strSource,omitempty"`

	Ingredients [mealDBIngredientSlots]string `json:"-"`
	Measures    [mealDBIngredientSlots]string `json:"-"`
}

// UnmarshalJSON folds the numbered strIngredientN/strMeasureN fields into arrays.
func (m *MealDBMeal) UnmarshalJSON(b []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	get := func(k string) string {
		if v := raw[k]; v != nil {
			return *v
		}
		return ""
	}

	m.IDMeal = get("idMeal")
	m.StrMeal = get("strMeal")
	m.Category = get("strCategory")
	m.Area = get("strArea")
	m.Instructions = get("strInstructions")
	m.Thumb = get("strMealThumb")
	m.Tags = get("strTags")
	m.Youtube = get("strYoutube")
	m.Source = get("strSource")
	for i := 0; i < mealDBIngredientSlots; i++ {
		m.Ingredients[i] = get(fmt.Sprintf("strIngredient%d", i+1))
		m.Measures[i] = get(fmt.Sprintf("strMeasure%d", i+1))
	}
	return nil
}

type MealDBCategory struct {
	IDCategory             string `json:"idCategory"`
	StrCategory            string `json:"strCategory"`
	StrCategoryThumb       string `json:"strCategoryThumb"`
	StrCategoryDescription string `json:"strCategoryDescription"`
}

type MealDBArea struct {
	StrArea string `json:"strArea"`
}

type MealDBIngredient struct {
	IDIngredient   string `json:"idIngredient"`
	StrIngredient  string `json:"strIngredient"`
	StrDescription string `json:"strDescription,omitempty"`
	StrType        string `json:"strType,omitempty"`
}

func (s *MealDBService) meals(ctx context.Context, name, path string, params url.Values) ([]MealDBMeal, error) {
	u := s.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	var out struct {
		Meals []MealDBMeal `json:"meals"`
	}
	if err := getJSON(ctx, s.client, name, u, &out); err != nil {
		return nil, err
	}
	if out.Meals == nil {
		return []MealDBMeal{}, nil
	}
	return out.Meals, nil
}

func (s *MealDBService) SearchByName(ctx context.Context, name string) ([]MealDBMeal, error) {
	return s.meals(ctx, "mealdb search", "/search.php", url.Values{"s": {name}})
}

func (s *MealDBService) SearchByFirstLetter(ctx context.Context, letter string) ([]MealDBMeal, error) {
	return s.meals(ctx, "mealdb search", "/search.php", url.Values{"f": {letter}})
}

// LookupByID returns nil, nil when the id is unknown.
func (s *MealDBService) LookupByID(ctx context.Context, id string) (*MealDBMeal, error) {
	meals, err := s.meals(ctx, "mealdb lookup", "/lookup.php", url.Values{"i": {id}})
	if err != nil || len(meals) == 0 {
		return nil, err
	}
	return &meals[0], nil
}

func (s *MealDBService) Random(ctx context.Context) (*MealDBMeal, error) {
	meals, err := s.meals(ctx, "mealdb random", "/random.php", nil)
	if err != nil || len(meals) == 0 {
		return nil, err
	}
	return &meals[0], nil
}

func (s *MealDBService) Categories(ctx context.Context) ([]MealDBCategory, error) {
	var out struct {
		Categories []MealDBCategory `json:"categories"`
	}
	if err := getJSON(ctx, s.client, "mealdb categories", s.baseURL+"/categories.php", &out); err != nil {
		return nil, err
	}
	if out.Categories == nil {
		return []MealDBCategory{}, nil
	}
	return out.Categories, nil
}

func (s *MealDBService) Areas(ctx context.Context) ([]MealDBArea, error) {
	var out struct {
		Meals []MealDBArea `json:"meals"`
	}
	if err := getJSON(ctx, s.client, "mealdb areas", s.baseURL+"/list.php?a=list", &out); err != nil {
		return nil, err
	}
	if out.Meals == nil {
		return []MealDBArea{}, nil
	}
	return out.Meals, nil
}

func (s *MealDBService) Ingredients(ctx context.Context) ([]MealDBIngredient, error) {
	var out struct {
		Meals []MealDBIngredient `json:"meals"`
	}
	if err := getJSON(ctx, s.client, "mealdb ingredients", s.baseURL+"/list.php?i=list", &out); err != nil {
		return nil, err
	}
	if out.Meals == nil {
		return []MealDBIngredient{}, nil
	}
	return out.Meals, nil
}

func (s *MealDBService) FilterByIngredient(ctx context.Context, ingredient string) ([]MealDBMeal, error) {
	return s.meals(ctx, "mealdb filter", "/filter.php", url.Values{"i": {ingredient}})
}

func (s *MealDBService) FilterByCategory(ctx context.Context, category string) ([]MealDBMeal, error) {
	return s.meals(ctx, "mealdb filter", "/filter.php", url.Values{"c": {category}})
}

func (s *MealDBService) FilterByArea(ctx context.Context, area string) ([]MealDBMeal, error) {
	return s.meals(ctx, "mealdb filter", "/filter.php", url.Values{"a": {area}})
}

// IngredientImageURL builds the CDN url for an ingredient picture.
// size is "small", "medium" or "large"; medium has no suffix.
func IngredientImageURL(ingredient, size string) string {
	name := strings.Join(strings.Fields(strings.ToLower(ingredient)), "_")
	suffix := ""
	if size != "" && size != "medium" {
		suffix = "-" + size
	}
	return "https://www.themealdb.com/images/ingredients/" + name + suffix + ".png"
}

func ThumbnailURL(imageURL, size string) string {
	if imageURL == "" {
		return ""
	}
	if size == "" {
		size = "medium"
	}
	return strings.Replace(imageURL, "/preview", "", 1) + "/" + size
}
