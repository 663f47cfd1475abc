package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHours() Hours {
	return Hours{
		WorkStart: "09:00",
		WorkEnd:   "18:00",
		WorkDays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
		LateThresholdMin:       15,
		EarlyLeaveThresholdMin: 15,
	}
}

func at(day time.Time, hh, mm int) *time.Time {
	t := time.Date(day.Year(), day.Month(), day.Day(), hh, mm, 0, 0, time.Local)
	return &t
}

var (
	monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local) // a Monday
	sunday = time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
)

func TestParseTimeOfDay(t *testing.T) {
	hh, mm, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, hh)
	assert.Equal(t, 30, mm)

	for _, bad := range []string{"9:30", "09:3", "24:00", "12:60", "noon", "", "09-30"} {
		_, _, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestParseWorkDays(t *testing.T) {
	days, err := ParseWorkDays("1,2,3,4,5")
	require.NoError(t, err)
	assert.True(t, days[time.Monday])
	assert.False(t, days[time.Sunday])

	_, err = ParseWorkDays("1,7")
	assert.Error(t, err)
}

func TestClassifyNonWorkDay(t *testing.T) {
	// A day off never flags absence, even with no check-in at all.
	status, err := Classify(nil, nil, sunday, testHours())
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, status)
}

func TestClassifyAbsent(t *testing.T) {
	status, err := Classify(nil, nil, monday, testHours())
	require.NoError(t, err)
	assert.Equal(t, StatusAbsent, status)
}

func TestClassifyLate(t *testing.T) {
	// One minute past start + threshold, no checkout yet.
	status, err := Classify(at(monday, 9, 16), nil, monday, testHours())
	require.NoError(t, err)
	assert.Equal(t, StatusLate, status)

	// Exactly on the cutoff is still on time.
	status, err = Classify(at(monday, 9, 15), nil, monday, testHours())
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, status)
}

func TestClassifyEarlyLeaveOverridesLate(t *testing.T) {
	// Late arrival but also an early checkout: early leave wins.
	status, err := Classify(at(monday, 9, 30), at(monday, 17, 0), monday, testHours())
	require.NoError(t, err)
	assert.Equal(t, StatusEarlyLeave, status)
}

func TestClassifyEarlyLeaveWithOnTimeCheckIn(t *testing.T) {
	status, err := Classify(at(monday, 9, 0), at(monday, 17, 44), monday, testHours())
	require.NoError(t, err)
	assert.Equal(t, StatusEarlyLeave, status)
}

func TestClassifyFullDay(t *testing.T) {
	status, err := Classify(at(monday, 8, 55), at(monday, 18, 5), monday, testHours())
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, status)
}

func TestClassifyTotality(t *testing.T) {
	// Every combination of nil/non-nil timestamps and work/non-work day is
	// defined and never errors with a valid config.
	checkIns := []*time.Time{nil, at(monday, 9, 0)}
	checkOuts := []*time.Time{nil, at(monday, 18, 0)}
	for _, day := range []time.Time{monday, sunday} {
		for _, in := range checkIns {
			for _, out := range checkOuts {
				status, err := Classify(in, out, day, testHours())
				require.NoError(t, err)
				assert.NotEmpty(t, status)
			}
		}
	}
}

func TestClassifyMalformedHours(t *testing.T) {
	h := testHours()
	h.WorkStart = "nine"
	_, err := Classify(at(monday, 9, 0), nil, monday, h)
	assert.Error(t, err)
}

func TestNowCutoffsMatchClassify(t *testing.T) {
	h := testHours()

	late, err := IsLateNow(*at(monday, 9, 16), h)
	require.NoError(t, err)
	assert.True(t, late)

	late, err = IsLateNow(*at(monday, 9, 15), h)
	require.NoError(t, err)
	assert.False(t, late)

	early, err := IsEarlyLeaveNow(*at(monday, 17, 44), h)
	require.NoError(t, err)
	assert.True(t, early)

	early, err = IsEarlyLeaveNow(*at(monday, 17, 45), h)
	require.NoError(t, err)
	assert.False(t, early)
}
