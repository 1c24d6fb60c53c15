package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payslip is a precomputed payroll figure produced by the external payroll
// processor. This service only reads them.
type Payslip struct {
	ID          string
	EmployeeID  string
	PeriodYear  int
	PeriodMonth int
	GrossPay    decimal.Decimal
	Deductions  decimal.Decimal
	NetPay      decimal.Decimal
	Currency    string
	IssuedAt    time.Time
	CreatedAt   time.Time
}
