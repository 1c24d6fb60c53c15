package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workline-hr/hrops-backend/internal/domain/attendance"
)

// statusDays builds a classified range starting at the given date, one day
// per status code.
func statusDays(start time.Time, codes ...attendance.DayStatusCode) []attendance.DayStatus {
	days := make([]attendance.DayStatus, 0, len(codes))
	for i, code := range codes {
		days = append(days, attendance.DayStatus{
			Date:   start.AddDate(0, 0, i),
			Status: code,
		})
	}
	return days
}

func TestDetectBreachesThreeConsecutiveAbsences(t *testing.T) {
	start := date(2025, time.June, 2)
	days := statusDays(start,
		attendance.DayOK,
		attendance.DayAbsent,
		attendance.DayAbsent,
		attendance.DayAbsent,
		attendance.DayOK,
	)

	breaches := DetectBreaches(days)
	require.Len(t, breaches, 1)

	b := breaches[0]
	assert.Equal(t, attendance.BreachConsecutiveAbsence, b.Type)
	assert.Equal(t, 3, b.Count)
	assert.Equal(t, start.AddDate(0, 0, 1), b.Dates[0])
	assert.Equal(t, start.AddDate(0, 0, 3), b.Dates[2])
	assert.Contains(t, b.Message, "3 consecutive absent days")
}

func TestDetectBreachesTwoConsecutiveAbsencesIsClean(t *testing.T) {
	days := statusDays(date(2025, time.June, 2),
		attendance.DayAbsent,
		attendance.DayAbsent,
		attendance.DayOK,
	)

	assert.Empty(t, DetectBreaches(days))
}

func TestDetectBreachesPendingExceptionResetsRun(t *testing.T) {
	days := statusDays(date(2025, time.June, 2),
		attendance.DayAbsent,
		attendance.DayAbsent,
		attendance.DayPendingException,
		attendance.DayAbsent,
		attendance.DayAbsent,
	)

	assert.Empty(t, DetectBreaches(days))
}

func TestDetectBreachesRunEndingAtRangeEndIsReported(t *testing.T) {
	days := statusDays(date(2025, time.June, 2),
		attendance.DayOK,
		attendance.DayAbsent,
		attendance.DayAbsent,
		attendance.DayAbsent,
	)

	breaches := DetectBreaches(days)
	require.Len(t, breaches, 1)
	assert.Equal(t, attendance.BreachConsecutiveAbsence, breaches[0].Type)
}

func TestDetectBreachesSixScatteredAbsencesIsMonthlyBreach(t *testing.T) {
	days := statusDays(date(2025, time.June, 2),
		attendance.DayAbsent,
		attendance.DayOK,
		attendance.DayAbsent,
		attendance.DayOK,
		attendance.DayAbsent,
		attendance.DayOK,
		attendance.DayAbsent,
		attendance.DayOK,
		attendance.DayAbsent,
		attendance.DayOK,
		attendance.DayAbsent,
	)

	breaches := DetectBreaches(days)
	require.Len(t, breaches, 1)

	b := breaches[0]
	assert.Equal(t, attendance.BreachMonthlyAbsence, b.Type)
	assert.Equal(t, 6, b.Count)
	assert.Len(t, b.Dates, 6)
}

func TestDetectBreachesFiveAbsencesIsWithinMonthlyLimit(t *testing.T) {
	days := statusDays(date(2025, time.June, 2),
		attendance.DayAbsent,
		attendance.DayOK,
		attendance.DayAbsent,
		attendance.DayOK,
		attendance.DayAbsent,
		attendance.DayOK,
		attendance.DayAbsent,
		attendance.DayOK,
		attendance.DayAbsent,
	)

	assert.Empty(t, DetectBreaches(days))
}

func TestDetectBreachesBothRulesFireIndependently(t *testing.T) {
	days := statusDays(date(2025, time.June, 2),
		attendance.DayAbsent,
		attendance.DayAbsent,
		attendance.DayAbsent,
		attendance.DayAbsent,
		attendance.DayOK,
		attendance.DayAbsent,
		attendance.DayAbsent,
		attendance.DayAbsent,
	)

	breaches := DetectBreaches(days)
	require.Len(t, breaches, 3)

	assert.Equal(t, attendance.BreachConsecutiveAbsence, breaches[0].Type)
	assert.Equal(t, 4, breaches[0].Count)
	assert.Equal(t, attendance.BreachConsecutiveAbsence, breaches[1].Type)
	assert.Equal(t, 3, breaches[1].Count)
	assert.Equal(t, attendance.BreachMonthlyAbsence, breaches[2].Type)
	assert.Equal(t, 7, breaches[2].Count)
}

func TestDetectBreachesEmptyRange(t *testing.T) {
	assert.Empty(t, DetectBreaches(nil))
}

func TestDetectBreachesNonAbsentStatusesDoNotCount(t *testing.T) {
	days := statusDays(date(2025, time.June, 2),
		attendance.DayLeave,
		attendance.DayNonWorking,
		attendance.DayIssuesNoException,
		attendance.DayPendingException,
		attendance.DayFuture,
		attendance.DayOK,
	)

	assert.Empty(t, DetectBreaches(days))
}
