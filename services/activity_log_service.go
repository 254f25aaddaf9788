package services

import (
	"context"
	"time"

	"recipehub/models"

	"gorm.io/gorm"
)

const defaultWeightLimit = 30

// ActivityLogService records body weight and water intake.
type ActivityLogService struct {
	db   *gorm.DB
	logs *DailyLogService
}

func NewActivityLogService(db *gorm.DB, logs *DailyLogService) *ActivityLogService {
	return &ActivityLogService{db: db, logs: logs}
}

// AddWeightLog keeps one measurement per day; date defaults to today.
func (s *ActivityLogService) AddWeightLog(ctx context.Context, userID uint, weightKG float64, date string) (*models.WeightLog, error) {
	if weightKG <= 0 {
		return nil, invalid("weight_kg must be positive")
	}
	if date == "" {
		date = todayString()
	}
	if err := checkDay(date); err != nil {
		return nil, err
	}

	log := models.WeightLog{UserID: userID, Date: date}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Assign(models.WeightLog{WeightKG: weightKG}).
		FirstOrCreate(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// GetWeightLogs returns the newest entries first.
func (s *ActivityLogService) GetWeightLogs(ctx context.Context, userID uint, limit int) ([]models.WeightLog, error) {
	if limit <= 0 {
		limit = defaultWeightLimit
	}
	logs := []models.WeightLog{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// AddWaterLog records intake for today and refreshes the daily totals.
func (s *ActivityLogService) AddWaterLog(ctx context.Context, userID uint, amountML float64) (*models.WaterLog, error) {
	if amountML <= 0 {
		return nil, invalid("amount_ml must be positive")
	}
	log := models.WaterLog{
		UserID:   userID,
		Date:     todayString(),
		AmountML: amountML,
		LoggedAt: time.Now(),
	}
	_, err := s.logs.Apply(ctx, userID, log.Date, func(tx *gorm.DB) error {
		return tx.Create(&log).Error
	})
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *ActivityLogService) GetWaterLogs(ctx context.Context, userID uint, date string) ([]models.WaterLog, error) {
	if err := checkDay(date); err != nil {
		return nil, err
	}
	logs := []models.WaterLog{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("logged_at ASC").
		Find(&logs).Error
	return logs, err
}

func (s *ActivityLogService) DeleteWaterLog(ctx context.Context, userID, id uint) error {
	var log models.WaterLog
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&log).Error; err != nil {
		return err
	}
	_, err := s.logs.Apply(ctx, userID, log.Date, func(tx *gorm.DB) error {
		return tx.Delete(&log).Error
	})
	return err
}
