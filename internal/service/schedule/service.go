package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workline-hr/hrops-backend/internal/domain/schedule"
)

// Resolver loads and validates an employee's active work schedule. It is the
// leaf dependency of the day status classifier.
type Resolver struct {
	schedule.WorkScheduleRepository
}

func NewResolver(workScheduleRepository schedule.WorkScheduleRepository) *Resolver {
	return &Resolver{WorkScheduleRepository: workScheduleRepository}
}

// Resolve returns the single active schedule for an employee. A missing row or
// an empty working-day set is a configuration error surfaced to the caller.
func (r *Resolver) Resolve(ctx context.Context, employeeID string) (schedule.WorkSchedule, error) {
	sched, err := r.WorkScheduleRepository.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, schedule.ErrScheduleNotFound) {
			return schedule.WorkSchedule{}, schedule.ErrNoActiveSchedule
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get active schedule: %w", err)
	}

	if err := sched.Validate(); err != nil {
		return schedule.WorkSchedule{}, err
	}

	return sched, nil
}
