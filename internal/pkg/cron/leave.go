package cron

import (
	"context"
	"log/slog"
	"time"

	leaveService "github.com/workline-hr/hrops-backend/internal/service/leave"
)

type LeaveJobs struct {
	allocationSvc *leaveService.AllocationService
	interval      time.Duration
	location      *time.Location
}

func NewLeaveJobs(allocationSvc *leaveService.AllocationService, interval time.Duration, location *time.Location) *LeaveJobs {
	return &LeaveJobs{
		allocationSvc: allocationSvc,
		interval:      interval,
		location:      location,
	}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("annual_leave_allocation", j.interval, j.AllocateYearlyBalances)
}

// AllocateYearlyBalances refreshes every active employee's balances for the
// current year on January 1st. The allocation upsert is idempotent, so the
// repeated runs within the day are harmless.
func (j *LeaveJobs) AllocateYearlyBalances(ctx context.Context) error {
	now := time.Now().In(j.location)
	if now.Month() != time.January || now.Day() != 1 {
		return nil
	}

	slog.Info("Cron: Starting yearly leave allocation", "year", now.Year())

	summary, err := j.allocationSvc.AllocateYear(ctx, now.Year())
	if err != nil {
		return err
	}

	slog.Info("Cron: Yearly leave allocation finished",
		"year", summary.Year,
		"employees", summary.Employees,
		"allocated", summary.Allocated,
		"failures", len(summary.Failures),
	)
	return nil
}
