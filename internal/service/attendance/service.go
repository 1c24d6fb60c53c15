package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/workline-hr/hrops-backend/internal/domain/attendance"
	"github.com/workline-hr/hrops-backend/internal/domain/leave"
	"github.com/workline-hr/hrops-backend/internal/domain/notification"
	"github.com/workline-hr/hrops-backend/internal/pkg/database"
	scheduleService "github.com/workline-hr/hrops-backend/internal/service/schedule"
)

type Service struct {
	db *database.DB
	attendance.AttendanceRepository
	attendance.ExceptionRepository
	leaveRequests   leave.RequestRepository
	resolver        *scheduleService.Resolver
	notificationSvc notification.Service
	location        *time.Location
}

func NewService(
	db *database.DB,
	attendanceRepository attendance.AttendanceRepository,
	exceptionRepository attendance.ExceptionRepository,
	leaveRequestRepository leave.RequestRepository,
	resolver *scheduleService.Resolver,
	notificationSvc notification.Service,
	location *time.Location,
) *Service {
	return &Service{
		db:                   db,
		AttendanceRepository: attendanceRepository,
		ExceptionRepository:  exceptionRepository,
		leaveRequests:        leaveRequestRepository,
		resolver:             resolver,
		notificationSvc:      notificationSvc,
		location:             location,
	}
}

// ClockIn creates today's attendance record for the employee. The record
// starts with a clock-in only; total_hours is filled in by the store's
// trigger once the clock-out lands.
func (s *Service) ClockIn(ctx context.Context, employeeID string, req attendance.ClockInRequest) (attendance.Attendance, error) {
	nowUTC := time.Now().UTC()
	today := dateOnly(nowUTC, s.location)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
	}

	// The schedule must resolve before a clock-in is accepted; a missing or
	// misconfigured schedule is surfaced, not worked around.
	if _, err := s.resolver.Resolve(ctx, employeeID); err != nil {
		return attendance.Attendance{}, err
	}

	record := attendance.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		ClockIn:    &nowUTC,
		IsWFH:      req.IsWFH,
		Notes:      req.Notes,
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return created, nil
}

// ClockOut closes the employee's open session and mirrors the total-hours
// computation so the returned row is coherent before the trigger round-trip.
func (s *Service) ClockOut(ctx context.Context, employeeID string, req attendance.ClockOutRequest) (attendance.Attendance, error) {
	record, err := s.AttendanceRepository.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNotClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open session: %w", err)
	}

	if record.ClockOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedOut
	}

	nowUTC := time.Now().UTC()
	record.ClockOut = &nowUTC
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if record.ClockIn != nil {
		hours := decimal.NewFromFloat(nowUTC.Sub(*record.ClockIn).Hours()).Round(2)
		record.TotalHours = &hours
	}

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return record, nil
}

// SubmitException files a pending exception for a past or current date.
func (s *Service) SubmitException(ctx context.Context, employeeID string, req attendance.CreateExceptionRequest) (attendance.Exception, error) {
	if err := req.Validate(); err != nil {
		return attendance.Exception{}, err
	}

	targetDate, _ := time.ParseInLocation("2006-01-02", req.TargetDate, s.location)
	if targetDate.After(dateOnly(time.Now(), s.location)) {
		return attendance.Exception{}, attendance.ErrExceptionDateInFuture
	}

	exception := attendance.Exception{
		EmployeeID: employeeID,
		TargetDate: targetDate,
		Type:       attendance.ExceptionType(req.Type),
		Status:     attendance.ExceptionStatusPending,
		Reason:     req.Reason,
	}
	if req.ProposedClockIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.ProposedClockIn)
		exception.ProposedClockIn = &t
	}
	if req.ProposedClockOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.ProposedClockOut)
		exception.ProposedClockOut = &t
	}

	created, err := s.ExceptionRepository.Create(ctx, exception)
	if err != nil {
		return attendance.Exception{}, fmt.Errorf("failed to create exception: %w", err)
	}

	return created, nil
}

// ResolveException approves or rejects a pending exception. Approval explains
// the anomaly during classification; it never rewrites the attendance record.
func (s *Service) ResolveException(ctx context.Context, id string, req attendance.ResolveExceptionRequest) (attendance.Exception, error) {
	if err := req.Validate(); err != nil {
		return attendance.Exception{}, err
	}

	exception, err := s.ExceptionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Exception{}, attendance.ErrExceptionNotFound
		}
		return attendance.Exception{}, fmt.Errorf("failed to get exception: %w", err)
	}

	if exception.Status != attendance.ExceptionStatusPending {
		return attendance.Exception{}, attendance.ErrExceptionAlreadyResolved
	}

	newStatus := attendance.ExceptionStatus(req.Status)
	if err := s.ExceptionRepository.UpdateStatus(ctx, id, newStatus); err != nil {
		return attendance.Exception{}, fmt.Errorf("failed to update exception status: %w", err)
	}
	exception.Status = newStatus

	if s.notificationSvc != nil {
		s.notificationSvc.Queue(ctx, notification.Notification{
			RecipientID: exception.EmployeeID,
			Type:        notification.TypeExceptionResolved,
			Title:       "Attendance Exception " + capitalizeStatus(newStatus),
			Message: fmt.Sprintf("Your %s exception for %s was %s",
				exception.Type, exception.TargetDate.Format("2006-01-02"), newStatus),
			Data: map[string]interface{}{
				"exception_id": exception.ID,
				"target_date":  exception.TargetDate.Format("2006-01-02"),
			},
		})
	}

	return exception, nil
}

// Report classifies every calendar day in [from, to] for the employee.
func (s *Service) Report(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.DayStatus, error) {
	sched, err := s.resolver.Resolve(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ListByEmployeeRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	recordsByDay := make(map[string]attendance.Attendance, len(records))
	for _, rec := range records {
		recordsByDay[DayKey(rec.Date)] = rec
	}

	leaves, err := s.leaveRequests.ApprovedInRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leaves: %w", err)
	}

	exceptions, err := s.ExceptionRepository.ListByEmployeeRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions: %w", err)
	}
	exceptionsByDay := make(map[string][]attendance.Exception)
	for _, ex := range exceptions {
		key := DayKey(ex.TargetDate)
		exceptionsByDay[key] = append(exceptionsByDay[key], ex)
	}

	return Classify(ClassifyInput{
		Schedule:   sched,
		Records:    recordsByDay,
		Leaves:     leaves,
		Exceptions: exceptionsByDay,
		From:       from,
		To:         to,
		Today:      time.Now().In(s.location),
		Location:   s.location,
	})
}

// MonthBreaches classifies one calendar month and runs the breach detector
// over it.
func (s *Service) MonthBreaches(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Breach, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, s.location)
	to := from.AddDate(0, 1, -1)

	days, err := s.Report(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	breaches := DetectBreaches(days)

	if len(breaches) > 0 && s.notificationSvc != nil {
		s.notificationSvc.Queue(ctx, notification.Notification{
			RecipientID: employeeID,
			Type:        notification.TypeAbsenceBreach,
			Title:       "Attendance Policy Breach",
			Message:     fmt.Sprintf("%d attendance policy breach(es) detected for %s", len(breaches), from.Format("2006-01")),
			Data:        map[string]interface{}{"month": from.Format("2006-01")},
		})
	}

	return breaches, nil
}

func capitalizeStatus(st attendance.ExceptionStatus) string {
	switch st {
	case attendance.ExceptionStatusApproved:
		return "Approved"
	case attendance.ExceptionStatusRejected:
		return "Rejected"
	default:
		return string(st)
	}
}
