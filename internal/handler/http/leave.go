package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/workline-hr/hrops-backend/internal/domain/leave"
	"github.com/workline-hr/hrops-backend/internal/handler/http/response"
	leaveService "github.com/workline-hr/hrops-backend/internal/service/leave"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)

	GetMyBalances(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)

	AllocateYear(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	requestService    *leaveService.RequestService
	allocationService *leaveService.AllocationService
	location          *time.Location
}

func NewLeaveHandler(
	requestService *leaveService.RequestService,
	allocationService *leaveService.AllocationService,
	location *time.Location,
) LeaveHandler {
	return &LeaveHandlerImpl{
		requestService:    requestService,
		allocationService: allocationService,
		location:          location,
	}
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := l.requestService.CreateRequest(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", toLeaveRequestResponse(request))
}

// UpdateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	var req leave.UpdateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	request, err := l.requestService.UpdateRequest(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated", toLeaveRequestResponse(request))
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	year := l.yearOrCurrent(r)
	requests, err := l.requestService.ListByEmployee(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]leaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toLeaveRequestResponse(request))
	}

	response.Success(w, responses)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	request, err := l.requestService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toLeaveRequestResponse(request))
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	approverID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	request, err := l.requestService.Approve(r.Context(), id, approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", toLeaveRequestResponse(request))
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var req leave.RejectLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := l.requestService.Reject(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", toLeaveRequestResponse(request))
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	l.balances(w, r, employeeID)
}

// GetBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	l.balances(w, r, employeeID)
}

func (l *LeaveHandlerImpl) balances(w http.ResponseWriter, r *http.Request, employeeID string) {
	balances, err := l.requestService.Balances(r.Context(), employeeID, l.yearOrCurrent(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// AllocateYear implements LeaveHandler. Manual trigger for the yearly
// allocation batch; the same path the cron job takes.
func (l *LeaveHandlerImpl) AllocateYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "year must be a number", nil)
		return
	}

	summary, err := l.allocationService.AllocateYear(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave allocation completed", summary)
}

func (l *LeaveHandlerImpl) yearOrCurrent(r *http.Request) int {
	if raw := r.URL.Query().Get("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			return year
		}
	}
	return time.Now().In(l.location).Year()
}

type leaveRequestResponse struct {
	ID                    string  `json:"id"`
	EmployeeID            string  `json:"employee_id"`
	Type                  string  `json:"leave_type"`
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	TotalDays             int     `json:"total_days"`
	Status                string  `json:"status"`
	PaymentType           string  `json:"payment_type"`
	Reason                string  `json:"reason"`
	MedicalCertificateURL *string `json:"medical_certificate_url,omitempty"`
	Relationship          *string `json:"relationship,omitempty"`
	ApprovedBy            *string `json:"approved_by,omitempty"`
	ApprovedAt            *string `json:"approved_at,omitempty"`
	RejectionReason       *string `json:"rejection_reason,omitempty"`
}

func toLeaveRequestResponse(request leave.Request) leaveRequestResponse {
	return leaveRequestResponse{
		ID:                    request.ID,
		EmployeeID:            request.EmployeeID,
		Type:                  request.Type,
		StartDate:             request.StartDate.Format("2006-01-02"),
		EndDate:               request.EndDate.Format("2006-01-02"),
		TotalDays:             request.TotalDays,
		Status:                string(request.Status),
		PaymentType:           string(request.PaymentType),
		Reason:                request.Reason,
		MedicalCertificateURL: request.MedicalCertificateURL,
		Relationship:          request.Relationship,
		ApprovedBy:            request.ApprovedBy,
		ApprovedAt:            formatTimePtr(request.ApprovedAt),
		RejectionReason:       request.RejectionReason,
	}
}
