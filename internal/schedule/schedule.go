package schedule

import (
	"strconv"
	"strings"
	"time"

	"petstore_manager/internal/apperrors"
)

// Hours is the configured work schedule, passed explicitly to every function
// here instead of living in global state.
type Hours struct {
	WorkStart              string // HH:MM
	WorkEnd                string // HH:MM
	WorkDays               map[time.Weekday]bool
	LateThresholdMin       int
	EarlyLeaveThresholdMin int
}

type Status string

const (
	StatusPresent    Status = "present"
	StatusAbsent     Status = "absent"
	StatusLate       Status = "late"
	StatusEarlyLeave Status = "early_leave"
)

// ParseTimeOfDay parses a strict 24-hour "HH:MM" string. All comparisons in
// this package are local wall-clock minutes since midnight; no timezone
// handling is done.
func ParseTimeOfDay(s string) (hours, minutes int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, apperrors.Validation("invalid time of day %q, expected HH:MM", s)
	}
	hours, err = strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, 0, apperrors.Validation("invalid hour in %q", s)
	}
	minutes, err = strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, 0, apperrors.Validation("invalid minute in %q", s)
	}
	return hours, minutes, nil
}

// ParseWorkDays parses a comma-separated weekday list ("1,2,3,4,5", 0=Sunday).
func ParseWorkDays(s string) (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 6 {
			return nil, apperrors.Validation("invalid weekday %q in work days", part)
		}
		days[time.Weekday(d)] = true
	}
	return days, nil
}

func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func IsWorkDay(date time.Time, h Hours) bool {
	return h.WorkDays[date.Weekday()]
}

func (h Hours) startMinutes() (int, error) {
	hh, mm, err := ParseTimeOfDay(h.WorkStart)
	if err != nil {
		return 0, err
	}
	return hh*60 + mm, nil
}

func (h Hours) endMinutes() (int, error) {
	hh, mm, err := ParseTimeOfDay(h.WorkEnd)
	if err != nil {
		return 0, err
	}
	return hh*60 + mm, nil
}

// Classify derives the attendance status for one (user, date) from the
// check-in/check-out pair. It is total over every combination of nil and
// non-nil timestamps; the only error path is a malformed Hours config.
//
// Non-work days never flag absence, and once a check-out exists an early
// leave takes precedence over a late arrival.
func Classify(checkIn, checkOut *time.Time, date time.Time, h Hours) (Status, error) {
	if !IsWorkDay(date, h) {
		return StatusPresent, nil
	}
	if checkIn == nil {
		return StatusAbsent, nil
	}

	start, err := h.startMinutes()
	if err != nil {
		return "", err
	}
	end, err := h.endMinutes()
	if err != nil {
		return "", err
	}

	lateCutoff := start + h.LateThresholdMin
	earlyCutoff := end - h.EarlyLeaveThresholdMin

	isLate := MinutesOfDay(*checkIn) > lateCutoff
	if checkOut != nil && MinutesOfDay(*checkOut) < earlyCutoff {
		return StatusEarlyLeave, nil
	}
	if isLate {
		return StatusLate, nil
	}
	return StatusPresent, nil
}

// IsLateNow applies the same late cutoff as Classify against "now", for use at
// check-in time before a record exists. Must stay in lockstep with Classify.
func IsLateNow(now time.Time, h Hours) (bool, error) {
	start, err := h.startMinutes()
	if err != nil {
		return false, err
	}
	return MinutesOfDay(now) > start+h.LateThresholdMin, nil
}

// IsEarlyLeaveNow applies the same early-leave cutoff as Classify against
// "now", for use at check-out time.
func IsEarlyLeaveNow(now time.Time, h Hours) (bool, error) {
	end, err := h.endMinutes()
	if err != nil {
		return false, err
	}
	return MinutesOfDay(now) < end-h.EarlyLeaveThresholdMin, nil
}
