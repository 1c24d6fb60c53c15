package attendance

import "time"

// DayStatusCode is the single classification of one calendar day.
type DayStatusCode string

const (
	DayOK                DayStatusCode = "ok"
	DayPendingException  DayStatusCode = "pending_exception"
	DayIssuesNoException DayStatusCode = "issues_no_exception"
	DayLeave             DayStatusCode = "leave"
	DayFuture            DayStatusCode = "future"
	DayNonWorking        DayStatusCode = "non_working"
	DayAbsent            DayStatusCode = "absent"
)

// Issue texts accumulated during classification. These are data-gap warnings,
// not errors.
const (
	IssueNoRecord        = "No attendance record"
	IssueMissingClockIn  = "Missing clock-in"
	IssueLateArrival     = "Late arrival"
	IssueMissingClockOut = "Missing clock-out"
	IssueEarlyDeparture  = "Early departure"
	IssueIncompleteHours = "Incomplete hours"
)

// DayStatus is the derived per-day classification. It is computed on demand
// and never persisted.
type DayStatus struct {
	Date           time.Time
	Status         DayStatusCode
	Issues         []string
	LeaveType      string
	ClockIn        *time.Time
	ClockOut       *time.Time
	ExceptionCount int
}

type BreachType string

const (
	BreachConsecutiveAbsence BreachType = "consecutive_absence"
	BreachMonthlyAbsence     BreachType = "monthly_absence"
)

// Breach is a detected attendance-policy violation over a classified range.
type Breach struct {
	Type    BreachType
	Count   int
	Dates   []time.Time
	Message string
}
