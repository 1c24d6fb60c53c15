package attendance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workline-hr/hrops-backend/internal/domain/attendance"
	"github.com/workline-hr/hrops-backend/internal/domain/leave"
	"github.com/workline-hr/hrops-backend/internal/domain/schedule"
)

// Week under test: Monday 2025-03-03 through Sunday 2025-03-09.
var (
	monday    = date(2025, time.March, 3)
	tuesday   = date(2025, time.March, 4)
	wednesday = date(2025, time.March, 5)
	thursday  = date(2025, time.March, 6)
	friday    = date(2025, time.March, 7)
	saturday  = date(2025, time.March, 8)
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func wall(h, m int) time.Time {
	return time.Date(0, time.January, 1, h, m, 0, 0, time.UTC)
}

func clockAt(day time.Time, h, m int) *time.Time {
	t := time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, time.UTC)
	return &t
}

func hours(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func weekdaySchedule() schedule.WorkSchedule {
	return schedule.WorkSchedule{
		ID:                "sched-1",
		EmployeeID:        "emp-1",
		StartTime:         wall(9, 0),
		EndTime:           wall(17, 0),
		MinimumDailyHours: decimal.NewFromInt(8),
		WorkingDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		IsActive: true,
	}
}

func cleanRecord(day time.Time) attendance.Attendance {
	return attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       day,
		ClockIn:    clockAt(day, 9, 0),
		ClockOut:   clockAt(day, 17, 0),
		TotalHours: hours(8),
	}
}

func exception(day time.Time, st attendance.ExceptionStatus) attendance.Exception {
	return attendance.Exception{
		EmployeeID: "emp-1",
		TargetDate: day,
		Type:       attendance.ExceptionLateArrival,
		Status:     st,
	}
}

func classifyOne(t *testing.T, in ClassifyInput) attendance.DayStatus {
	t.Helper()
	days, err := Classify(in)
	require.NoError(t, err)
	require.Len(t, days, 1)
	return days[0]
}

func TestClassifyFutureDaysWinOverEverything(t *testing.T) {
	in := ClassifyInput{
		Schedule: weekdaySchedule(),
		Records: map[string]attendance.Attendance{
			DayKey(friday): cleanRecord(friday),
		},
		From:  monday,
		To:    friday,
		Today: wednesday,
	}

	days, err := Classify(in)
	require.NoError(t, err)
	require.Len(t, days, 5)

	assert.Equal(t, attendance.DayFuture, days[3].Status)
	// A clean record on a future date changes nothing.
	assert.Equal(t, attendance.DayFuture, days[4].Status)
	assert.Empty(t, days[4].Issues)
}

func TestClassifyNonWorkingDayIgnoresRecords(t *testing.T) {
	in := ClassifyInput{
		Schedule: weekdaySchedule(),
		Records: map[string]attendance.Attendance{
			DayKey(saturday): cleanRecord(saturday),
		},
		From:  saturday,
		To:    saturday,
		Today: date(2025, time.March, 10),
	}

	day := classifyOne(t, in)
	assert.Equal(t, attendance.DayNonWorking, day.Status)
	assert.Empty(t, day.Issues)
}

func TestClassifyLeaveIntervalInclusiveBothEnds(t *testing.T) {
	in := ClassifyInput{
		Schedule: weekdaySchedule(),
		Leaves: []leave.Request{{
			EmployeeID: "emp-1",
			Type:       leave.TypeAnnual,
			StartDate:  tuesday,
			EndDate:    thursday,
			Status:     leave.RequestStatusApproved,
		}},
		From:  monday,
		To:    friday,
		Today: date(2025, time.March, 10),
	}

	days, err := Classify(in)
	require.NoError(t, err)

	assert.Equal(t, attendance.DayAbsent, days[0].Status)
	for i := 1; i <= 3; i++ {
		assert.Equal(t, attendance.DayLeave, days[i].Status, "day %s", days[i].Date)
		assert.Equal(t, leave.TypeAnnual, days[i].LeaveType)
	}
	assert.Equal(t, attendance.DayAbsent, days[4].Status)
}

func TestClassifyAbsentWithoutRecord(t *testing.T) {
	in := ClassifyInput{
		Schedule: weekdaySchedule(),
		From:     monday,
		To:       monday,
		Today:    friday,
	}

	day := classifyOne(t, in)
	assert.Equal(t, attendance.DayAbsent, day.Status)
	assert.Equal(t, []string{attendance.IssueNoRecord}, day.Issues)
}

func TestClassifyRecordWithoutClockInIsAbsent(t *testing.T) {
	rec := attendance.Attendance{EmployeeID: "emp-1", Date: monday}

	in := ClassifyInput{
		Schedule: weekdaySchedule(),
		Records:  map[string]attendance.Attendance{DayKey(monday): rec},
		From:     monday,
		To:       monday,
		Today:    friday,
	}

	day := classifyOne(t, in)
	assert.Equal(t, attendance.DayAbsent, day.Status)
}

func TestClassifyAbsentWithPendingException(t *testing.T) {
	in := ClassifyInput{
		Schedule: weekdaySchedule(),
		Exceptions: map[string][]attendance.Exception{
			DayKey(monday): {exception(monday, attendance.ExceptionStatusPending)},
		},
		From:  monday,
		To:    monday,
		Today: friday,
	}

	day := classifyOne(t, in)
	assert.Equal(t, attendance.DayPendingException, day.Status)
	assert.Equal(t, 1, day.ExceptionCount)
}

func TestClassifyApprovedExceptionNeverSynthesizesPresence(t *testing.T) {
	in := ClassifyInput{
		Schedule: weekdaySchedule(),
		Exceptions: map[string][]attendance.Exception{
			DayKey(monday): {exception(monday, attendance.ExceptionStatusApproved)},
		},
		From:  monday,
		To:    monday,
		Today: friday,
	}

	day := classifyOne(t, in)
	assert.Equal(t, attendance.DayAbsent, day.Status)
}

func TestClassifyCleanDayIsOK(t *testing.T) {
	in := ClassifyInput{
		Schedule: weekdaySchedule(),
		Records:  map[string]attendance.Attendance{DayKey(monday): cleanRecord(monday)},
		From:     monday,
		To:       monday,
		Today:    friday,
	}

	day := classifyOne(t, in)
	assert.Equal(t, attendance.DayOK, day.Status)
	assert.Empty(t, day.Issues)
	assert.NotNil(t, day.ClockIn)
	assert.NotNil(t, day.ClockOut)
}

func TestClassifyLateArrivalAndIncompleteHours(t *testing.T) {
	rec := attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       monday,
		ClockIn:    clockAt(monday, 9, 20),
		ClockOut:   clockAt(monday, 17, 0),
		TotalHours: hours(7.67),
	}

	in := ClassifyInput{
		Schedule: weekdaySchedule(),
		Records:  map[string]attendance.Attendance{DayKey(monday): rec},
		From:     monday,
		To:       monday,
		Today:    friday,
	}

	day := classifyOne(t, in)
	assert.Equal(t, []string{attendance.IssueLateArrival, attendance.IssueIncompleteHours}, day.Issues)
	assert.Equal(t, attendance.DayIssuesNoException, day.Status)
}

func TestClassifyMissingClockOutIsNeverSilentlyOK(t *testing.T) {
	rec := attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       monday,
		ClockIn:    clockAt(monday, 9, 0),
	}

	in := ClassifyInput{
		Schedule: weekdaySchedule(),
		Records:  map[string]attendance.Attendance{DayKey(monday): rec},
		From:     monday,
		To:       monday,
		Today:    friday,
	}

	day := classifyOne(t, in)
	assert.Equal(t, []string{attendance.IssueMissingClockOut}, day.Issues)
	assert.Equal(t, attendance.DayIssuesNoException, day.Status)
}

func TestClassifyExceptionResolution(t *testing.T) {
	lateShort := attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       monday,
		ClockIn:    clockAt(monday, 9, 30),
		ClockOut:   clockAt(monday, 16, 0),
		TotalHours: hours(6.5),
	}
	// Three issues: late arrival, early departure, incomplete hours.

	cases := []struct {
		name       string
		exceptions []attendance.Exception
		want       attendance.DayStatusCode
	}{
		{
			name: "approved count covers all issues",
			exceptions: []attendance.Exception{
				exception(monday, attendance.ExceptionStatusApproved),
				exception(monday, attendance.ExceptionStatusApproved),
				exception(monday, attendance.ExceptionStatusApproved),
			},
			want: attendance.DayOK,
		},
		{
			name: "approved short but a pending exists",
			exceptions: []attendance.Exception{
				exception(monday, attendance.ExceptionStatusApproved),
				exception(monday, attendance.ExceptionStatusPending),
			},
			want: attendance.DayPendingException,
		},
		{
			name: "approved short and nothing pending",
			exceptions: []attendance.Exception{
				exception(monday, attendance.ExceptionStatusApproved),
				exception(monday, attendance.ExceptionStatusRejected),
			},
			want: attendance.DayIssuesNoException,
		},
		{
			name:       "no exceptions at all",
			exceptions: nil,
			want:       attendance.DayIssuesNoException,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := ClassifyInput{
				Schedule:   weekdaySchedule(),
				Records:    map[string]attendance.Attendance{DayKey(monday): lateShort},
				Exceptions: map[string][]attendance.Exception{DayKey(monday): tc.exceptions},
				From:       monday,
				To:         monday,
				Today:      friday,
			}

			day := classifyOne(t, in)
			require.Len(t, day.Issues, 3)
			assert.Equal(t, tc.want, day.Status)
		})
	}
}

func TestClassifyEmptyWorkingDaysIsConfigurationError(t *testing.T) {
	sched := weekdaySchedule()
	sched.WorkingDays = nil

	_, err := Classify(ClassifyInput{
		Schedule: sched,
		From:     monday,
		To:       friday,
		Today:    friday,
	})
	assert.ErrorIs(t, err, schedule.ErrEmptyWorkingDays)
}

func TestClassifyIsIdempotent(t *testing.T) {
	in := ClassifyInput{
		Schedule: weekdaySchedule(),
		Records: map[string]attendance.Attendance{
			DayKey(monday):  cleanRecord(monday),
			DayKey(tuesday): {EmployeeID: "emp-1", Date: tuesday, ClockIn: clockAt(tuesday, 10, 0)},
		},
		Exceptions: map[string][]attendance.Exception{
			DayKey(wednesday): {exception(wednesday, attendance.ExceptionStatusPending)},
		},
		From:  monday,
		To:    saturday,
		Today: friday,
	}

	first, err := Classify(in)
	require.NoError(t, err)
	second, err := Classify(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClassifyOneEntryPerDayInOrder(t *testing.T) {
	in := ClassifyInput{
		Schedule: weekdaySchedule(),
		From:     monday,
		To:       date(2025, time.March, 9),
		Today:    date(2025, time.March, 10),
	}

	days, err := Classify(in)
	require.NoError(t, err)
	require.Len(t, days, 7)

	for i, day := range days {
		assert.Equal(t, monday.AddDate(0, 0, i), day.Date)
	}
}
