package services

import (
	"fmt"
	"time"

	"petstore_manager/internal/apperrors"
	"petstore_manager/internal/models"
	"petstore_manager/internal/redis"
	"petstore_manager/internal/repository"
	"petstore_manager/internal/schedule"

	"gorm.io/gorm"
)

type BusinessHoursInput struct {
	WorkStart           string `json:"work_start"`
	WorkEnd             string `json:"work_end"`
	WorkDays            string `json:"work_days"`
	LateThresholdMin    int    `json:"late_threshold_min"`
	EarlyLeaveThreshold int    `json:"early_leave_threshold_min"`
}

type SettingsService interface {
	GetBusinessHours() (*models.BusinessHours, error)
	UpdateBusinessHours(actor models.Actor, input BusinessHoursInput) (*models.BusinessHours, error)
	// Schedule returns the active config in the form the classification
	// functions take.
	Schedule() (schedule.Hours, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	cache        *redis.Client
	cacheTTL     time.Duration
}

func NewSettingsService(settingsRepo repository.SettingsRepository, cache *redis.Client, cacheTTL time.Duration) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, cache: cache, cacheTTL: cacheTTL}
}

func (s *settingsService) GetBusinessHours() (*models.BusinessHours, error) {
	if s.cache != nil {
		if hours, err := s.cache.GetBusinessHours(); err == nil {
			return hours, nil
		}
	}

	hours, err := s.settingsRepo.GetBusinessHours()
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("business hours are not configured")
		}
		return nil, fmt.Errorf("failed to load business hours: %w", err)
	}

	if s.cache != nil {
		s.cache.SetBusinessHours(hours, s.cacheTTL)
	}
	return hours, nil
}

func (s *settingsService) UpdateBusinessHours(actor models.Actor, input BusinessHoursInput) (*models.BusinessHours, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins may change business hours")
	}
	// Reject malformed config before it can poison every classification.
	if _, _, err := schedule.ParseTimeOfDay(input.WorkStart); err != nil {
		return nil, err
	}
	if _, _, err := schedule.ParseTimeOfDay(input.WorkEnd); err != nil {
		return nil, err
	}
	if _, err := schedule.ParseWorkDays(input.WorkDays); err != nil {
		return nil, err
	}
	if input.LateThresholdMin < 0 || input.EarlyLeaveThreshold < 0 {
		return nil, apperrors.Validation("thresholds must not be negative")
	}

	hours, err := s.settingsRepo.GetBusinessHours()
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to load business hours: %w", err)
		}
		hours = &models.BusinessHours{}
	}

	hours.WorkStart = input.WorkStart
	hours.WorkEnd = input.WorkEnd
	hours.WorkDays = input.WorkDays
	hours.LateThresholdMin = input.LateThresholdMin
	hours.EarlyLeaveThreshold = input.EarlyLeaveThreshold
	hours.UpdatedBy = actor.UserID

	if err := s.settingsRepo.SaveBusinessHours(hours); err != nil {
		return nil, fmt.Errorf("failed to save business hours: %w", err)
	}
	if s.cache != nil {
		s.cache.InvalidateBusinessHours()
	}
	return hours, nil
}

func (s *settingsService) Schedule() (schedule.Hours, error) {
	hours, err := s.GetBusinessHours()
	if err != nil {
		return schedule.Hours{}, err
	}
	return ScheduleFromModel(hours)
}

func ScheduleFromModel(hours *models.BusinessHours) (schedule.Hours, error) {
	days, err := schedule.ParseWorkDays(hours.WorkDays)
	if err != nil {
		return schedule.Hours{}, err
	}
	return schedule.Hours{
		WorkStart:              hours.WorkStart,
		WorkEnd:                hours.WorkEnd,
		WorkDays:               days,
		LateThresholdMin:       hours.LateThresholdMin,
		EarlyLeaveThresholdMin: hours.EarlyLeaveThreshold,
	}, nil
}
