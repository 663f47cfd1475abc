package services

import (
	"errors"
	"testing"
	"time"

	"petstore_manager/internal/apperrors"
	"petstore_manager/internal/models"
	"petstore_manager/internal/repository"
	"petstore_manager/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAttendanceService(db *gorm.DB) AttendanceService {
	settings := NewSettingsService(repository.NewSettingsRepository(db), nil, 0)
	return NewAttendanceService(repository.NewAttendanceRepository(db), settings, nil, 0)
}

func seedBusinessHours(t *testing.T, db *gorm.DB) {
	require.NoError(t, db.Create(&models.BusinessHours{
		WorkStart:           "09:00",
		WorkEnd:             "18:00",
		WorkDays:            "1,2,3,4,5",
		LateThresholdMin:    15,
		EarlyLeaveThreshold: 15,
	}).Error)
}

// monday is a fixed work day so the tests do not depend on when they run.
func monday(hour, min int) time.Time {
	return time.Date(2024, 1, 8, hour, min, 0, 0, time.Local)
}

func sunday(hour, min int) time.Time {
	return time.Date(2024, 1, 7, hour, min, 0, 0, time.Local)
}

func TestCheckInWithinThresholdIsPresent(t *testing.T) {
	db := setupTestDB(t)
	seedBusinessHours(t, db)
	svc := newAttendanceService(db)

	record, err := svc.CheckIn(2, monday(9, 10), "")
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusPresent), record.Status)
	assert.Equal(t, "2024-01-08", record.WorkDate)
	require.NotNil(t, record.CheckIn)

	// Arriving exactly at the cutoff still counts as on time.
	record, err = svc.CheckIn(3, monday(9, 15), "")
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusPresent), record.Status)
}

func TestCheckInAfterThresholdIsLate(t *testing.T) {
	db := setupTestDB(t)
	seedBusinessHours(t, db)
	svc := newAttendanceService(db)

	record, err := svc.CheckIn(2, monday(9, 16), "")
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusLate), record.Status)
}

func TestCheckInOnNonWorkDayIsPresent(t *testing.T) {
	db := setupTestDB(t)
	seedBusinessHours(t, db)
	svc := newAttendanceService(db)

	record, err := svc.CheckIn(2, sunday(11, 0), "")
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusPresent), record.Status)
}

func TestCheckInTwiceSameDayLastWriteWins(t *testing.T) {
	db := setupTestDB(t)
	seedBusinessHours(t, db)
	svc := newAttendanceService(db)

	first, err := svc.CheckIn(2, monday(9, 10), "")
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusPresent), first.Status)

	second, err := svc.CheckIn(2, monday(9, 40), "stuck in traffic")
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusLate), second.Status)

	var count int64
	require.NoError(t, db.Model(&models.AttendanceRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repository.NewAttendanceRepository(db).GetByUserAndDate(2, "2024-01-08")
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusLate), stored.Status)
	assert.Equal(t, "stuck in traffic", stored.Notes)
	require.NotNil(t, stored.CheckIn)
	assert.Equal(t, monday(9, 40).Unix(), stored.CheckIn.Unix())
}

func TestCheckOutEarlyLeaveOverridesLate(t *testing.T) {
	db := setupTestDB(t)
	seedBusinessHours(t, db)
	svc := newAttendanceService(db)

	_, err := svc.CheckIn(2, monday(9, 40), "")
	require.NoError(t, err)

	record, err := svc.CheckOut(2, monday(17, 0))
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusEarlyLeave), record.Status)
	require.NotNil(t, record.CheckOut)

	// A full day after a late arrival stays late.
	_, err = svc.CheckIn(3, monday(9, 40), "")
	require.NoError(t, err)
	record, err = svc.CheckOut(3, monday(18, 5))
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusLate), record.Status)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	db := setupTestDB(t)
	seedBusinessHours(t, db)
	svc := newAttendanceService(db)

	_, err := svc.CheckOut(2, monday(17, 0))
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCheckInWithoutConfiguredHours(t *testing.T) {
	db := setupTestDB(t)
	svc := newAttendanceService(db)

	_, err := svc.CheckIn(2, monday(9, 0), "")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestOverrideStatus(t *testing.T) {
	db := setupTestDB(t)
	seedBusinessHours(t, db)
	svc := newAttendanceService(db)

	record, err := svc.CheckIn(2, monday(9, 40), "")
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusLate), record.Status)

	_, err = svc.OverrideStatus(salesActor, record.ID, string(schedule.StatusPresent), "")
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	_, err = svc.OverrideStatus(adminActor, record.ID, "vacation", "")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	updated, err := svc.OverrideStatus(adminActor, record.ID, string(schedule.StatusPresent), "doctor's note")
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusPresent), updated.Status)
	assert.Equal(t, "doctor's note", updated.Notes)

	_, err = svc.OverrideStatus(adminActor, 9999, string(schedule.StatusPresent), "")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCurrentCutoffs(t *testing.T) {
	db := setupTestDB(t)
	seedBusinessHours(t, db)
	svc := newAttendanceService(db)

	isLate, isEarly, err := svc.CurrentCutoffs(monday(9, 0))
	require.NoError(t, err)
	assert.False(t, isLate)
	assert.True(t, isEarly)

	isLate, isEarly, err = svc.CurrentCutoffs(monday(17, 50))
	require.NoError(t, err)
	assert.True(t, isLate)
	assert.False(t, isEarly)
}
