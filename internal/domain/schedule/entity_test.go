package schedule

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wall(h, m int) time.Time {
	return time.Date(0, time.January, 1, h, m, 0, 0, time.UTC)
}

func validSchedule() WorkSchedule {
	return WorkSchedule{
		StartTime:         wall(9, 0),
		EndTime:           wall(17, 0),
		MinimumDailyHours: decimal.NewFromInt(8),
		WorkingDays:       []time.Weekday{time.Monday, time.Wednesday},
	}
}

func TestWorkScheduleValidate(t *testing.T) {
	assert.NoError(t, validSchedule().Validate())

	empty := validSchedule()
	empty.WorkingDays = nil
	assert.ErrorIs(t, empty.Validate(), ErrEmptyWorkingDays)

	inverted := validSchedule()
	inverted.StartTime = wall(18, 0)
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidScheduleTimes)
}

func TestIsWorkingDay(t *testing.T) {
	sched := validSchedule()

	assert.True(t, sched.IsWorkingDay(time.Monday))
	assert.True(t, sched.IsWorkingDay(time.Wednesday))
	assert.False(t, sched.IsWorkingDay(time.Sunday))
	assert.False(t, sched.IsWorkingDay(time.Tuesday))
}

func TestAtAnchorsWallTimeOnDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, loc)
	anchored := At(wall(9, 30), day, loc)

	assert.Equal(t, time.Date(2025, time.March, 3, 9, 30, 0, 0, loc), anchored)
}

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		input string
		want  time.Weekday
	}{
		{"monday", time.Monday},
		{"Friday", time.Friday},
		{"  SUNDAY  ", time.Sunday},
	}
	for _, tc := range cases {
		got, err := ParseWeekday(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}

	_, err := ParseWeekday("someday")
	assert.Error(t, err)
}

func TestParseWeekdays(t *testing.T) {
	days, err := ParseWeekdays([]string{"monday", "tuesday", "friday"})
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Friday}, days)

	_, err = ParseWeekdays([]string{"monday", "noday"})
	assert.Error(t, err)
}
