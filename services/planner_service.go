package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const defaultPlanCalories = 2000

type PlannerService struct {
	spoon *SpoonacularService
	log   *logrus.Logger
}

func NewPlannerService(spoon *SpoonacularService, log *logrus.Logger) *PlannerService {
	return &PlannerService{spoon: spoon, log: log}
}

func (s *PlannerService) DayPlan(ctx context.Context, calories int, diet, exclude string) (*MealPlan, error) {
	if calories < 0 {
		return nil, invalid("calories must not be negative")
	}
	if calories == 0 {
		calories = defaultPlanCalories
	}
	return s.spoon.GenerateMealPlan(ctx, calories, diet, exclude)
}

type IngredientNutrition struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (s *PlannerService) IngredientNutrition(ctx context.Context, name string) (*IngredientNutrition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("ingredient query is required")
	}
	info, err := s.spoon.NutritionForIngredient(ctx, name)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("ingredient %q: %w", name, ErrNotFound)
	}
	return &IngredientNutrition{
		Name:     info.Name,
		Amount:   1,
		Calories: info.Nutrition.Amount("Calories"),
		Protein:  info.Nutrition.Amount("Protein"),
		Carbs:    info.Nutrition.Amount("Carbohydrates"),
		Fat:      info.Nutrition.Amount("Fat"),
	}, nil
}

type TrackItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type MacroSplit struct {
	ProteinKcal float64 `json:"protein_kcal"`
	CarbsKcal   float64 `json:"carbs_kcal"`
	FatKcal     float64 `json:"fat_kcal"`
	ProteinPct  float64 `json:"protein_pct"`
	CarbsPct    float64 `json:"carbs_pct"`
	FatPct      float64 `json:"fat_pct"`
}

type NutritionSummary struct {
	Items    []IngredientNutrition `json:"items"`
	Missing  []string              `json:"missing,omitempty"`
	Calories float64               `json:"calories"`
	Protein  float64               `json:"protein"`
	Carbs    float64               `json:"carbs"`
	Fat      float64               `json:"fat"`
	Macros   MacroSplit            `json:"macros"`
}

// SplitMacros converts grams to kcal (4/4/9) and each share of the sum.
func SplitMacros(protein, carbs, fat float64) MacroSplit {
	m := MacroSplit{ProteinKcal: protein * 4, CarbsKcal: carbs * 4, FatKcal: fat * 9}
	total := m.ProteinKcal + m.CarbsKcal + m.FatKcal
	if total > 0 {
		m.ProteinPct = m.ProteinKcal * 100 / total
		m.CarbsPct = m.CarbsKcal * 100 / total
		m.FatPct = m.FatKcal * 100 / total
	}
	return m
}

// TrackNutrition looks every item up in parallel. Items that cannot be
// resolved are listed in Missing and left out of the totals.
func (s *PlannerService) TrackNutrition(ctx context.Context, items []TrackItem) (*NutritionSummary, error) {
	if len(items) == 0 {
		return nil, invalid("at least one item is required")
	}
	for i := range items {
		if items[i].Amount < 0 {
			return nil, invalid("amount must not be negative")
		}
		if items[i].Amount == 0 {
			items[i].Amount = 1
		}
	}

	type lookup struct {
		n   *IngredientNutrition
		err error
	}
	results, _ := settled(ctx, len(items), func(ctx context.Context, i int) (lookup, error) {
		n, err := s.IngredientNutrition(ctx, items[i].Name)
		return lookup{n: n, err: err}, nil
	})

	sum := &NutritionSummary{Items: []IngredientNutrition{}}
	for i, r := range results {
		if r.err != nil {
			if s.log != nil {
				s.log.WithError(r.err).WithField("ingredient", items[i].Name).Warn("nutrition lookup")
			}
			sum.Missing = append(sum.Missing, items[i].Name)
			continue
		}
		n := *r.n
		n.Amount = items[i].Amount
		sum.Items = append(sum.Items, n)
		sum.Calories += n.Calories * n.Amount
		sum.Protein += n.Protein * n.Amount
		sum.Carbs += n.Carbs * n.Amount
		sum.Fat += n.Fat * n.Amount
	}
	sum.Macros = SplitMacros(sum.Protein, sum.Carbs, sum.Fat)
	return sum, nil
}
