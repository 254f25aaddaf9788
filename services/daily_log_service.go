package services

import (
	"context"
	"errors"

	"recipehub/models"

	"gorm.io/gorm"
)

type DailyLogService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewDailyLogService(db *gorm.DB, notifier Notifier) *DailyLogService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &DailyLogService{db: db, notifier: notifier}
}

// GetDailyLog returns nil, nil when nothing was logged that day.
func (s *DailyLogService) GetDailyLog(ctx context.Context, userID uint, date string) (*models.DailyLog, error) {
	if err := checkDay(date); err != nil {
		return nil, err
	}
	var log models.DailyLog
	err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *DailyLogService) GetDailyLogs(ctx context.Context, userID uint, from, to string) ([]models.DailyLog, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	logs := []models.DailyLog{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC").
		Find(&logs).Error
	return logs, err
}

// Recompute rebuilds one day's totals from its meal entries and water logs.
func (s *DailyLogService) Recompute(ctx context.Context, userID uint, date string) (*models.DailyLog, error) {
	return s.Apply(ctx, userID, date, nil)
}

// Apply runs change and the day's recompute in one transaction. Listeners
// are told only after the commit.
func (s *DailyLogService) Apply(ctx context.Context, userID uint, date string, change func(tx *gorm.DB) error) (*models.DailyLog, error) {
	var log *models.DailyLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if change != nil {
			if err := change(tx); err != nil {
				return err
			}
		}
		var err error
		log, err = recomputeDay(tx, userID, date)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(userID, EventDailyLogUpdated, *log)
	return log, nil
}

func recomputeDay(tx *gorm.DB, userID uint, date string) (*models.DailyLog, error) {
	var totals struct {
		Calories float64
		Protein  float64
		Carbs    float64
		Fat      float64
	}
	if err := tx.Model(&models.MealEntry{}).
		Select("COALESCE(SUM(calories),0) AS calories, COALESCE(SUM(protein),0) AS protein, COALESCE(SUM(carbs),0) AS carbs, COALESCE(SUM(fat),0) AS fat").
		Where("user_id = ? AND date = ?", userID, date).
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	var water float64
	if err := tx.Model(&models.WaterLog{}).
		Select("COALESCE(SUM(amount_ml),0)").
		Where("user_id = ? AND date = ?", userID, date).
		Scan(&water).Error; err != nil {
		return nil, err
	}

	log := models.DailyLog{UserID: userID, Date: date}
	if err := tx.
		Where("user_id = ? AND date = ?", userID, date).
		Assign(map[string]any{
			"total_calories":  totals.Calories,
			"total_protein":   totals.Protein,
			"total_carbs":     totals.Carbs,
			"total_fat":       totals.Fat,
			"water_intake_ml": water,
		}).
		FirstOrCreate(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}
