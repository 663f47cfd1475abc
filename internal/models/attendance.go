package models

import (
	"time"
)

// AttendanceRecord is one row per (user, work date). Uniqueness on that pair is
// enforced by upsert: a second check-in for the same day overwrites the first.
type AttendanceRecord struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_attendance_user_date"`
	WorkDate  string     `json:"work_date" gorm:"size:10;not null;uniqueIndex:idx_attendance_user_date"` // YYYY-MM-DD
	CheckIn   *time.Time `json:"check_in"`
	CheckOut  *time.Time `json:"check_out"`
	Status    string     `json:"status" gorm:"size:20;not null"` // present, absent, late, early_leave
	Notes     string     `json:"notes" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BusinessHours is the admin-configured work schedule used to classify
// attendance. A single active row is kept and cached in Redis.
type BusinessHours struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	WorkStart            string    `json:"work_start" gorm:"size:5;not null"` // HH:MM
	WorkEnd              string    `json:"work_end" gorm:"size:5;not null"`   // HH:MM
	WorkDays             string    `json:"work_days" gorm:"not null"`         // comma separated weekday numbers, 0=Sunday
	LateThresholdMin     int       `json:"late_threshold_min" gorm:"default:0"`
	EarlyLeaveThreshold  int       `json:"early_leave_threshold_min" gorm:"column:early_leave_threshold_min;default:0"`
	UpdatedBy            uint      `json:"updated_by"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
