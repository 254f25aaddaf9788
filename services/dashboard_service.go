package services

import (
	"context"
	"math"

	"recipehub/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	dashboardWeightCount = 7
	mlPerGlass           = 250
)

type DashboardService struct {
	goals    *GoalService
	logs     *DailyLogService
	meals    *MealService
	activity *ActivityLogService
}

func NewDashboardService(db *gorm.DB, logs *DailyLogService) *DashboardService {
	return &DashboardService{
		goals:    NewGoalService(db),
		logs:     logs,
		meals:    NewMealService(db, logs),
		activity: NewActivityLogService(db, logs),
	}
}

type Progress struct {
	Current    float64 `json:"current"`
	Target     float64 `json:"target"`
	Percentage float64 `json:"percentage"`
	Glasses    *int    `json:"glasses,omitempty"`
}

type Dashboard struct {
	Date            string             `json:"date"`
	UserGoals       *models.UserGoal   `json:"user_goals"`
	DailyLog        *models.DailyLog   `json:"daily_log"`
	TodaysMeals     []models.MealEntry `json:"todays_meals"`
	RecentWeight    []models.WeightLog `json:"recent_weight"`
	WaterLogs       []models.WaterLog  `json:"water_logs"`
	CalorieProgress Progress           `json:"calorie_progress"`
	WaterProgress   Progress           `json:"water_progress"`
}

// percentOf caps at 100; a missing target falls back to def.
func percentOf(current, target, def float64) (float64, float64) {
	if target <= 0 {
		target = def
	}
	return target, math.Min(current/target*100, 100)
}

func (s *DashboardService) GetDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	today := todayString()
	d := &Dashboard{Date: today}

	var g errgroup.Group
	g.Go(func() (err error) { d.UserGoals, err = s.goals.GetGoals(ctx, userID); return })
	g.Go(func() (err error) { d.DailyLog, err = s.logs.GetDailyLog(ctx, userID, today); return })
	g.Go(func() (err error) { d.TodaysMeals, err = s.meals.GetMealEntries(ctx, userID, today); return })
	g.Go(func() (err error) {
		d.RecentWeight, err = s.activity.GetWeightLogs(ctx, userID, dashboardWeightCount)
		return
	})
	g.Go(func() (err error) { d.WaterLogs, err = s.activity.GetWaterLogs(ctx, userID, today); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var consumed, water, calTarget, waterTarget float64
	if d.DailyLog != nil {
		consumed, water = d.DailyLog.TotalCalories, d.DailyLog.WaterIntakeML
	}
	if d.UserGoals != nil {
		calTarget, waterTarget = d.UserGoals.DailyCalorieTarget, d.UserGoals.WaterTargetML
	}
	def := models.DefaultUserGoal(userID)

	d.CalorieProgress.Current = consumed
	d.CalorieProgress.Target, d.CalorieProgress.Percentage = percentOf(consumed, calTarget, def.DailyCalorieTarget)

	glasses := int(math.Floor(water / mlPerGlass))
	d.WaterProgress.Current = water
	d.WaterProgress.Target, d.WaterProgress.Percentage = percentOf(water, waterTarget, def.WaterTargetML)
	d.WaterProgress.Glasses = &glasses
	return d, nil
}
