package attendance

import (
	"time"

	"github.com/workline-hr/hrops-backend/internal/domain/attendance"
	"github.com/workline-hr/hrops-backend/internal/domain/leave"
	"github.com/workline-hr/hrops-backend/internal/domain/schedule"
)

const dayKeyFormat = "2006-01-02"

// DayKey normalizes a timestamp to the calendar-day key used to index
// attendance records and exceptions.
func DayKey(t time.Time) string {
	return t.Format(dayKeyFormat)
}

// ClassifyInput carries everything the classifier needs. Today and Location
// are explicit so the classification is a pure function of its input.
type ClassifyInput struct {
	Schedule   schedule.WorkSchedule
	Records    map[string]attendance.Attendance
	Leaves     []leave.Request
	Exceptions map[string][]attendance.Exception
	From       time.Time
	To         time.Time
	Today      time.Time
	Location   *time.Location
}

// Classify merges the four data sources into one DayStatus per calendar day
// in [From, To], in chronological order. Precedence is strict top-to-bottom:
// future, non-working, leave, absent, then issue detection.
func Classify(in ClassifyInput) ([]attendance.DayStatus, error) {
	if err := in.Schedule.Validate(); err != nil {
		return nil, err
	}

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	today := dateOnly(in.Today, loc)
	from := dateOnly(in.From, loc)
	to := dateOnly(in.To, loc)

	days := make([]attendance.DayStatus, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, classifyDay(in, d, today, loc))
	}

	return days, nil
}

func classifyDay(in ClassifyInput, day, today time.Time, loc *time.Location) attendance.DayStatus {
	status := attendance.DayStatus{Date: day}
	exceptions := in.Exceptions[DayKey(day)]
	status.ExceptionCount = len(exceptions)

	// Rule 1: strictly after today
	if day.After(today) {
		status.Status = attendance.DayFuture
		return status
	}

	// Rule 2: outside the working-day set
	if !in.Schedule.IsWorkingDay(day.Weekday()) {
		status.Status = attendance.DayNonWorking
		return status
	}

	// Rule 3: approved leave interval covering the day, inclusive both ends
	for _, lv := range in.Leaves {
		if !day.Before(dateOnly(lv.StartDate, loc)) && !day.After(dateOnly(lv.EndDate, loc)) {
			status.Status = attendance.DayLeave
			status.LeaveType = lv.Type
			return status
		}
	}

	rec, ok := in.Records[DayKey(day)]

	// Rule 4: no record, or record without a clock-in. A pending exception
	// turns the day into pending_exception; an approved one explains the
	// absence but never synthesizes presence.
	if !ok || rec.ClockIn == nil {
		status.Issues = []string{attendance.IssueNoRecord}
		if countByStatus(exceptions, attendance.ExceptionStatusPending) > 0 {
			status.Status = attendance.DayPendingException
		} else {
			status.Status = attendance.DayAbsent
		}
		return status
	}

	status.ClockIn = rec.ClockIn
	status.ClockOut = rec.ClockOut

	// Rule 5: issue detection against the schedule
	var issues []string

	if rec.ClockIn.IsZero() {
		// Unreachable for well-formed rows; kept for malformed clock-ins.
		issues = append(issues, attendance.IssueMissingClockIn)
	} else if rec.ClockIn.In(loc).After(schedule.At(in.Schedule.StartTime, day, loc)) {
		issues = append(issues, attendance.IssueLateArrival)
	}

	if rec.ClockOut == nil {
		issues = append(issues, attendance.IssueMissingClockOut)
	} else if rec.ClockOut.In(loc).Before(schedule.At(in.Schedule.EndTime, day, loc)) {
		issues = append(issues, attendance.IssueEarlyDeparture)
	}

	if rec.TotalHours != nil && rec.TotalHours.LessThan(in.Schedule.MinimumDailyHours) {
		issues = append(issues, attendance.IssueIncompleteHours)
	}

	status.Issues = issues

	// Rule 6: resolve from issues and same-day exceptions. Each approved
	// exception is assumed to cover exactly one issue; there is no mapping
	// from exception type to issue type.
	switch {
	case len(issues) == 0:
		status.Status = attendance.DayOK
	case countByStatus(exceptions, attendance.ExceptionStatusApproved) >= len(issues):
		status.Status = attendance.DayOK
	case countByStatus(exceptions, attendance.ExceptionStatusPending) > 0:
		status.Status = attendance.DayPendingException
	default:
		status.Status = attendance.DayIssuesNoException
	}

	return status
}

func countByStatus(exceptions []attendance.Exception, st attendance.ExceptionStatus) int {
	n := 0
	for _, ex := range exceptions {
		if ex.Status == st {
			n++
		}
	}
	return n
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}
