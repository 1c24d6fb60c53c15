package attendance

import (
	"fmt"
	"time"

	"github.com/workline-hr/hrops-backend/internal/domain/attendance"
)

const (
	// consecutiveAbsenceThreshold is the minimum run length reported as a
	// consecutive-absence breach.
	consecutiveAbsenceThreshold = 3

	// monthlyAbsenceLimit is the number of absent days a range may contain
	// before a monthly breach is reported.
	monthlyAbsenceLimit = 5
)

// DetectBreaches scans a classified range, in date order, for
// consecutive-absence runs and the monthly absence total. Only literal absent
// status counts; pending_exception resets a run.
func DetectBreaches(days []attendance.DayStatus) []attendance.Breach {
	breaches := make([]attendance.Breach, 0)

	var run []time.Time
	var allAbsent []time.Time

	flush := func() {
		if len(run) >= consecutiveAbsenceThreshold {
			breaches = append(breaches, attendance.Breach{
				Type:  attendance.BreachConsecutiveAbsence,
				Count: len(run),
				Dates: append([]time.Time(nil), run...),
				Message: fmt.Sprintf("%d consecutive absent days from %s to %s",
					len(run),
					run[0].Format("2006-01-02"),
					run[len(run)-1].Format("2006-01-02")),
			})
		}
		run = run[:0]
	}

	for _, day := range days {
		if day.Status == attendance.DayAbsent {
			run = append(run, day.Date)
			allAbsent = append(allAbsent, day.Date)
			continue
		}
		flush()
	}
	flush()

	if len(allAbsent) > monthlyAbsenceLimit {
		breaches = append(breaches, attendance.Breach{
			Type:  attendance.BreachMonthlyAbsence,
			Count: len(allAbsent),
			Dates: allAbsent,
			Message: fmt.Sprintf("%d absent days in the period exceeds the limit of %d",
				len(allAbsent), monthlyAbsenceLimit),
		})
	}

	return breaches
}
