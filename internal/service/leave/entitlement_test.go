package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/workline-hr/hrops-backend/internal/domain/leave"
)

func hired(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestServiceMonths(t *testing.T) {
	cases := []struct {
		name string
		hire time.Time
		asOf time.Time
		want int
	}{
		{"anniversary day counts", hired(2024, time.January, 15), hired(2024, time.July, 15), 6},
		{"day before anniversary does not", hired(2024, time.January, 15), hired(2024, time.July, 14), 5},
		{"same day", hired(2024, time.January, 15), hired(2024, time.January, 15), 0},
		{"across year boundary", hired(2023, time.November, 1), hired(2024, time.February, 1), 3},
		{"hire after reference clamps to zero", hired(2025, time.March, 1), hired(2024, time.March, 1), 0},
		{"several years", hired(2020, time.May, 10), hired(2024, time.December, 31), 55},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ServiceMonths(tc.hire, tc.asOf))
		})
	}
}

func TestProbationCompleted(t *testing.T) {
	hire := hired(2024, time.January, 1)

	assert.False(t, ProbationCompleted(hire, hired(2024, time.June, 30)))
	assert.True(t, ProbationCompleted(hire, hired(2024, time.July, 1)))
}

func TestEntitlementAnnualLeave(t *testing.T) {
	cases := []struct {
		name string
		hire time.Time
		want int
	}{
		// 5 months 29 days of service by December 31.
		{"under six months", hired(2024, time.July, 2), 0},
		{"exactly six months", hired(2024, time.June, 30), 2},
		{"eleven months", hired(2024, time.January, 31), 12},
		{"exactly twelve months", hired(2023, time.December, 31), 30},
		{"long tenure", hired(2019, time.February, 14), 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Entitlement(tc.hire, leave.TypeAnnual, 2024))
		})
	}
}

func TestEntitlementPerType(t *testing.T) {
	veteran := hired(2020, time.March, 1)
	newcomer := hired(2024, time.October, 1)

	cases := []struct {
		name      string
		hire      time.Time
		leaveType string
		want      int
	}{
		{"sick after probation", veteran, leave.TypeSick, 90},
		{"sick during probation", newcomer, leave.TypeSick, 0},
		{"maternity is flat", newcomer, leave.TypeMaternity, 60},
		{"parental is flat", newcomer, leave.TypeParental, 5},
		{"study is flat", newcomer, leave.TypeStudy, 10},
		{"compassionate never pre-allocated", veteran, leave.TypeCompassionate, 0},
		{"hajj after two years", hired(2022, time.December, 31), leave.TypeHajj, 30},
		{"hajj under two years", hired(2023, time.January, 1), leave.TypeHajj, 0},
		{"unknown type", veteran, "Casual Leave", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Entitlement(tc.hire, tc.leaveType, 2024))
		})
	}
}

func TestTotalCalendarDaysInclusive(t *testing.T) {
	start := hired(2024, time.March, 4)

	assert.Equal(t, 1, TotalCalendarDays(start, start))
	assert.Equal(t, 5, TotalCalendarDays(start, start.AddDate(0, 0, 4)))
}
