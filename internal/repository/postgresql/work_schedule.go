package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workline-hr/hrops-backend/internal/domain/schedule"
	"github.com/workline-hr/hrops-backend/internal/pkg/database"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

// GetActiveByEmployee implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) GetActiveByEmployee(ctx context.Context, employeeID string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT id, employee_id, start_time, end_time, minimum_daily_hours,
			working_days, is_active, created_at, updated_at
		FROM work_schedules
		WHERE employee_id = $1 AND is_active = TRUE
	`

	var sched schedule.WorkSchedule
	var workingDayNames []string
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&sched.ID, &sched.EmployeeID, &sched.StartTime, &sched.EndTime,
		&sched.MinimumDailyHours, &workingDayNames, &sched.IsActive,
		&sched.CreatedAt, &sched.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get active schedule for employee %s: %w", employeeID, err)
	}

	sched.WorkingDays, err = schedule.ParseWeekdays(workingDayNames)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to parse working days for schedule %s: %w", sched.ID, err)
	}

	return sched, nil
}
