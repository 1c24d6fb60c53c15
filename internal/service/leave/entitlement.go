package leave

import (
	"time"

	"github.com/workline-hr/hrops-backend/internal/domain/leave"
)

// probationMonths is the initial employment period during which certain leave
// types are unavailable.
const probationMonths = 6

// ServiceMonths calculates completed service months between hireDate and asOf,
// calendar-aware and day-adjusted (floor).
func ServiceMonths(hireDate, asOf time.Time) int {
	years := asOf.Year() - hireDate.Year()
	months := int(asOf.Month()) - int(hireDate.Month())
	totalMonths := years*12 + months

	// Adjust if the day of month hasn't passed yet
	if asOf.Day() < hireDate.Day() {
		totalMonths--
	}

	if totalMonths < 0 {
		totalMonths = 0
	}

	return totalMonths
}

// ProbationCompleted reports whether six months of service have elapsed.
func ProbationCompleted(hireDate, asOf time.Time) bool {
	return ServiceMonths(hireDate, asOf) >= probationMonths
}

// Entitlement computes the allocated-days entitlement for one leave type and
// target year under the service-duration rules. Service months are measured
// against December 31 of the target year. Pure function; the allocation batch
// is the only writer that persists its result.
func Entitlement(hireDate time.Time, leaveType string, year int) int {
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, hireDate.Location())
	months := ServiceMonths(hireDate, yearEnd)

	switch leaveType {
	case leave.TypeAnnual:
		switch {
		case months < 6:
			return 0
		case months < 12:
			return (months - 5) * 2
		default:
			return 30
		}
	case leave.TypeSick:
		if months >= probationMonths {
			return 90
		}
		return 0
	case leave.TypeMaternity:
		return 60
	case leave.TypeParental:
		return 5
	case leave.TypeCompassionate:
		// Granted ad hoc per event, never pre-allocated
		return 0
	case leave.TypeStudy:
		return 10
	case leave.TypeHajj:
		if months >= 24 {
			return 30
		}
		return 0
	default:
		return 0
	}
}
