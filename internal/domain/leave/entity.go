package leave

import "time"

// Leave type names. These are the canonical names stored on requests and
// balances.
const (
	TypeAnnual        = "Annual Leave"
	TypeSick          = "Sick Leave"
	TypeMaternity     = "Maternity Leave"
	TypeParental      = "Parental Leave"
	TypeCompassionate = "Compassionate Leave"
	TypeStudy         = "Study Leave"
	TypeHajj          = "Hajj Leave"
)

// AutoAllocatedTypes are the leave types whose yearly entitlement is computed
// by the allocation batch. Compassionate leave is granted ad hoc per event and
// never pre-allocated.
var AutoAllocatedTypes = []string{
	TypeAnnual,
	TypeSick,
	TypeMaternity,
	TypeParental,
	TypeStudy,
	TypeHajj,
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// PaymentType is the compensation tier of a leave request. It is derived by
// the validator, never user-supplied.
type PaymentType string

const (
	PaymentFull   PaymentType = "full_pay"
	PaymentHalf   PaymentType = "half_pay"
	PaymentUnpaid PaymentType = "unpaid"
)

// Request entity. StartDate and EndDate are an inclusive interval.
type Request struct {
	ID         string
	EmployeeID string
	Type       string

	StartDate time.Time
	EndDate   time.Time
	TotalDays int

	Status      RequestStatus
	PaymentType PaymentType

	Reason                string
	MedicalCertificateURL *string
	Relationship          *string

	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// Balance entity, one row per (employee, leave type, year). Refreshed by the
// yearly allocation batch; used_days incremented on approval.
type Balance struct {
	ID            string
	EmployeeID    string
	LeaveType     string
	Year          int
	AllocatedDays int
	UsedDays      int
	ServiceMonths int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
