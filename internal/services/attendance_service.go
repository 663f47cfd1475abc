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

const workDateLayout = "2006-01-02"

type AttendanceService interface {
	// CheckIn records the day's check-in. Calling it again for the same day
	// replaces the whole row: last write wins, no merging.
	CheckIn(userID uint, now time.Time, notes string) (*models.AttendanceRecord, error)
	// CheckOut completes the day's record and re-derives the status.
	CheckOut(userID uint, now time.Time) (*models.AttendanceRecord, error)
	GetByUser(userID uint, startDate, endDate string) ([]models.AttendanceRecord, error)
	GetByDateRange(startDate, endDate string) ([]models.AttendanceRecord, error)
	// OverrideStatus is the admin escape hatch for correcting a derived status.
	OverrideStatus(actor models.Actor, recordID uint, status, notes string) (*models.AttendanceRecord, error)
	// CurrentCutoffs reports whether checking in/out right now would count as
	// late / early leave, using the same cutoffs the classifier uses.
	CurrentCutoffs(now time.Time) (isLate, isEarlyLeave bool, err error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	settings       SettingsService
	cache          *redis.Client
	cacheTTL       time.Duration
}

func NewAttendanceService(attendanceRepo repository.AttendanceRepository, settings SettingsService, cache *redis.Client, cacheTTL time.Duration) AttendanceService {
	return &attendanceService{attendanceRepo: attendanceRepo, settings: settings, cache: cache, cacheTTL: cacheTTL}
}

func (s *attendanceService) CheckIn(userID uint, now time.Time, notes string) (*models.AttendanceRecord, error) {
	hours, err := s.settings.Schedule()
	if err != nil {
		return nil, err
	}

	checkIn := now
	status, err := schedule.Classify(&checkIn, nil, now, hours)
	if err != nil {
		return nil, err
	}

	record := &models.AttendanceRecord{
		UserID:   userID,
		WorkDate: now.Format(workDateLayout),
		CheckIn:  &checkIn,
		Status:   string(status),
		Notes:    notes,
	}
	if err := s.attendanceRepo.Upsert(record); err != nil {
		return nil, fmt.Errorf("failed to save attendance record: %w", err)
	}

	s.cacheStatus(record)
	return record, nil
}

func (s *attendanceService) CheckOut(userID uint, now time.Time) (*models.AttendanceRecord, error) {
	record, err := s.attendanceRepo.GetByUserAndDate(userID, now.Format(workDateLayout))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("no check-in recorded for today")
		}
		return nil, fmt.Errorf("failed to load attendance record: %w", err)
	}

	hours, err := s.settings.Schedule()
	if err != nil {
		return nil, err
	}

	checkOut := now
	record.CheckOut = &checkOut
	status, err := schedule.Classify(record.CheckIn, record.CheckOut, now, hours)
	if err != nil {
		return nil, err
	}
	record.Status = string(status)

	if err := s.attendanceRepo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to save attendance record: %w", err)
	}

	s.cacheStatus(record)
	return record, nil
}

func (s *attendanceService) GetByUser(userID uint, startDate, endDate string) ([]models.AttendanceRecord, error) {
	return s.attendanceRepo.GetByUser(userID, startDate, endDate)
}

func (s *attendanceService) GetByDateRange(startDate, endDate string) ([]models.AttendanceRecord, error) {
	return s.attendanceRepo.GetByDateRange(startDate, endDate)
}

func (s *attendanceService) OverrideStatus(actor models.Actor, recordID uint, status, notes string) (*models.AttendanceRecord, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins may override attendance status")
	}
	switch schedule.Status(status) {
	case schedule.StatusPresent, schedule.StatusAbsent, schedule.StatusLate, schedule.StatusEarlyLeave:
	default:
		return nil, apperrors.Validation("unknown attendance status %q", status)
	}

	record, err := s.attendanceRepo.GetByID(recordID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("attendance record %d not found", recordID)
		}
		return nil, fmt.Errorf("failed to load attendance record: %w", err)
	}

	record.Status = status
	if notes != "" {
		record.Notes = notes
	}
	if err := s.attendanceRepo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to save attendance record: %w", err)
	}

	s.cacheStatus(record)
	return record, nil
}

func (s *attendanceService) CurrentCutoffs(now time.Time) (bool, bool, error) {
	hours, err := s.settings.Schedule()
	if err != nil {
		return false, false, err
	}
	isLate, err := schedule.IsLateNow(now, hours)
	if err != nil {
		return false, false, err
	}
	isEarly, err := schedule.IsEarlyLeaveNow(now, hours)
	if err != nil {
		return false, false, err
	}
	return isLate, isEarly, nil
}

func (s *attendanceService) cacheStatus(record *models.AttendanceRecord) {
	if s.cache == nil {
		return
	}
	s.cache.SetAttendanceStatus(record.UserID, record.WorkDate, record.Status, s.cacheTTL)
}
