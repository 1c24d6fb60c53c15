package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/workline-hr/hrops-backend/internal/domain/attendance"
	"github.com/workline-hr/hrops-backend/internal/handler/http/response"
	attendanceService "github.com/workline-hr/hrops-backend/internal/service/attendance"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)

	SubmitException(w http.ResponseWriter, r *http.Request)
	ResolveException(w http.ResponseWriter, r *http.Request)

	GetMyReport(w http.ResponseWriter, r *http.Request)
	GetReport(w http.ResponseWriter, r *http.Request)
	GetBreaches(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService *attendanceService.Service
	location          *time.Location
}

func NewAttendanceHandler(svc *attendanceService.Service, location *time.Location) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: svc, location: location}
}

// ClockIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	var req attendance.ClockInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	record, err := a.attendanceService.ClockIn(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", toAttendanceResponse(record))
}

// ClockOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	var req attendance.ClockOutRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	record, err := a.attendanceService.ClockOut(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", toAttendanceResponse(record))
}

// SubmitException implements AttendanceHandler.
func (a *AttendanceHandlerImpl) SubmitException(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	var req attendance.CreateExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	exception, err := a.attendanceService.SubmitException(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Exception submitted", exceptionToResponse(exception))
}

// ResolveException implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ResolveException(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Exception ID is required", nil)
		return
	}

	var req attendance.ResolveExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	exception, err := a.attendanceService.ResolveException(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Exception resolved", exceptionToResponse(exception))
}

// GetMyReport implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMyReport(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	a.report(w, r, employeeID)
}

// GetReport implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	a.report(w, r, r.URL.Query().Get("employee_id"))
}

func (a *AttendanceHandlerImpl) report(w http.ResponseWriter, r *http.Request, employeeID string) {
	query := attendance.ReportQuery{
		EmployeeID: employeeID,
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
	}
	if err := query.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	from, _ := time.ParseInLocation("2006-01-02", query.From, a.location)
	to, _ := time.ParseInLocation("2006-01-02", query.To, a.location)
	if to.Before(from) {
		response.BadRequest(w, "to must not be before from", nil)
		return
	}

	days, err := a.attendanceService.Report(r.Context(), query.EmployeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]attendance.DayStatusResponse, 0, len(days))
	for _, day := range days {
		responses = append(responses, toDayStatusResponse(day))
	}

	response.Success(w, responses)
}

// GetBreaches implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetBreaches(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year must be a number", nil)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "month must be a number between 1 and 12", nil)
		return
	}

	breaches, err := a.attendanceService.MonthBreaches(r.Context(), employeeID, year, time.Month(month))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]attendance.BreachResponse, 0, len(breaches))
	for _, breach := range breaches {
		responses = append(responses, toBreachResponse(breach))
	}

	response.Success(w, responses)
}

type attendanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	ClockIn    *string `json:"clock_in,omitempty"`
	ClockOut   *string `json:"clock_out,omitempty"`
	TotalHours *string `json:"total_hours,omitempty"`
	IsWFH      bool    `json:"is_wfh"`
	Notes      *string `json:"notes,omitempty"`
}

func toAttendanceResponse(record attendance.Attendance) attendanceResponse {
	resp := attendanceResponse{
		ID:         record.ID,
		EmployeeID: record.EmployeeID,
		Date:       record.Date.Format("2006-01-02"),
		ClockIn:    formatTimePtr(record.ClockIn),
		ClockOut:   formatTimePtr(record.ClockOut),
		IsWFH:      record.IsWFH,
		Notes:      record.Notes,
	}
	if record.TotalHours != nil {
		hours := record.TotalHours.String()
		resp.TotalHours = &hours
	}
	return resp
}

type exceptionResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	TargetDate       string  `json:"target_date"`
	Type             string  `json:"exception_type"`
	Status           string  `json:"status"`
	ProposedClockIn  *string `json:"proposed_clock_in,omitempty"`
	ProposedClockOut *string `json:"proposed_clock_out,omitempty"`
	Reason           string  `json:"reason"`
}

func exceptionToResponse(exception attendance.Exception) exceptionResponse {
	return exceptionResponse{
		ID:               exception.ID,
		EmployeeID:       exception.EmployeeID,
		TargetDate:       exception.TargetDate.Format("2006-01-02"),
		Type:             string(exception.Type),
		Status:           string(exception.Status),
		ProposedClockIn:  formatTimePtr(exception.ProposedClockIn),
		ProposedClockOut: formatTimePtr(exception.ProposedClockOut),
		Reason:           exception.Reason,
	}
}

func toDayStatusResponse(day attendance.DayStatus) attendance.DayStatusResponse {
	return attendance.DayStatusResponse{
		Date:           day.Date.Format("2006-01-02"),
		Status:         string(day.Status),
		Issues:         day.Issues,
		LeaveType:      day.LeaveType,
		ClockIn:        formatTimePtr(day.ClockIn),
		ClockOut:       formatTimePtr(day.ClockOut),
		ExceptionCount: day.ExceptionCount,
	}
}

func toBreachResponse(breach attendance.Breach) attendance.BreachResponse {
	dates := make([]string, 0, len(breach.Dates))
	for _, date := range breach.Dates {
		dates = append(dates, date.Format("2006-01-02"))
	}
	return attendance.BreachResponse{
		Type:    string(breach.Type),
		Count:   breach.Count,
		Dates:   dates,
		Message: breach.Message,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
