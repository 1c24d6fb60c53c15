package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/workline-hr/hrops-backend/internal/domain/payroll"
	"github.com/workline-hr/hrops-backend/internal/handler/http/response"
	payrollService "github.com/workline-hr/hrops-backend/internal/service/payroll"
)

type PayrollHandler interface {
	GetMyPayslips(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService *payrollService.Service
	location       *time.Location
}

func NewPayrollHandler(svc *payrollService.Service, location *time.Location) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: svc, location: location}
}

// GetMyPayslips implements PayrollHandler.
func (p *PayrollHandlerImpl) GetMyPayslips(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	year := time.Now().In(p.location).Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	slips, err := p.payrollService.Payslips(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]payslipResponse, 0, len(slips))
	for _, slip := range slips {
		responses = append(responses, toPayslipResponse(slip))
	}

	response.Success(w, responses)
}

// GetPayslip implements PayrollHandler.
func (p *PayrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	slip, err := p.payrollService.Payslip(r.Context(), id, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toPayslipResponse(slip))
}

type payslipResponse struct {
	ID          string `json:"id"`
	PeriodYear  int    `json:"period_year"`
	PeriodMonth int    `json:"period_month"`
	GrossPay    string `json:"gross_pay"`
	Deductions  string `json:"deductions"`
	NetPay      string `json:"net_pay"`
	Currency    string `json:"currency"`
	IssuedAt    string `json:"issued_at"`
}

func toPayslipResponse(slip payroll.Payslip) payslipResponse {
	return payslipResponse{
		ID:          slip.ID,
		PeriodYear:  slip.PeriodYear,
		PeriodMonth: slip.PeriodMonth,
		GrossPay:    slip.GrossPay.String(),
		Deductions:  slip.Deductions.String(),
		NetPay:      slip.NetPay.String(),
		Currency:    slip.Currency,
		IssuedAt:    slip.IssuedAt.Format(time.RFC3339),
	}
}
