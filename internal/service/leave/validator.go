package leave

import (
	"time"

	"github.com/workline-hr/hrops-backend/internal/domain/leave"
)

// EmployeeLeaveState is the per-employee snapshot the validator needs. AsOf is
// the request time, passed explicitly; the aggregates must be read from the
// current persisted state inside the same transaction as the write.
type EmployeeLeaveState struct {
	HireDate             time.Time
	AsOf                 time.Time
	SickDaysUsedThisYear int
	HasApprovedHajj      bool
}

// typePolicy enforces the preconditions of one leave type and derives its
// payment tier.
type typePolicy interface {
	Validate(req leave.Request, st EmployeeLeaveState) (leave.PaymentType, error)
}

var typePolicies = map[string]typePolicy{
	leave.TypeSick:          sickPolicy{},
	leave.TypeHajj:          hajjPolicy{},
	leave.TypeMaternity:     maternityPolicy{},
	leave.TypeParental:      parentalPolicy{},
	leave.TypeStudy:         studyPolicy{},
	leave.TypeCompassionate: compassionatePolicy{},
}

// ValidateRequest runs the per-type policy for a request and returns the
// derived payment tier. It is re-run on every insert and update. Types with no
// registered policy pass with full pay unless a tier was already derived.
func ValidateRequest(req leave.Request, st EmployeeLeaveState) (leave.PaymentType, error) {
	policy, ok := typePolicies[req.Type]
	if !ok {
		if req.PaymentType != "" {
			return req.PaymentType, nil
		}
		return leave.PaymentFull, nil
	}
	return policy.Validate(req, st)
}

type sickPolicy struct{}

func (sickPolicy) Validate(req leave.Request, st EmployeeLeaveState) (leave.PaymentType, error) {
	if !ProbationCompleted(st.HireDate, st.AsOf) {
		return "", leave.NewPolicyError(req.Type, "sick leave requires a completed probation period")
	}

	if req.TotalDays > 3 && (req.MedicalCertificateURL == nil || *req.MedicalCertificateURL == "") {
		return "", leave.NewPolicyError(req.Type, "a medical certificate is required for sick leave longer than 3 days")
	}

	// Tier against this calendar year's approved sick usage: the first 15
	// days are full pay and the next 30 half pay. A request that fits inside
	// the full-pay allowance stays full pay; one that starts before the
	// half-pay allowance is exhausted is half pay, even if it spills over.
	switch {
	case st.SickDaysUsedThisYear+req.TotalDays <= 15:
		return leave.PaymentFull, nil
	case st.SickDaysUsedThisYear < 45:
		return leave.PaymentHalf, nil
	default:
		return leave.PaymentUnpaid, nil
	}
}

type hajjPolicy struct{}

func (hajjPolicy) Validate(req leave.Request, st EmployeeLeaveState) (leave.PaymentType, error) {
	if ServiceMonths(st.HireDate, st.AsOf) < 24 {
		return "", leave.NewPolicyError(req.Type, "requires minimum 2 years of service")
	}
	if st.HasApprovedHajj {
		return "", leave.NewPolicyError(req.Type, "hajj leave can only be taken once")
	}
	return leave.PaymentUnpaid, nil
}

type maternityPolicy struct{}

func (maternityPolicy) Validate(req leave.Request, st EmployeeLeaveState) (leave.PaymentType, error) {
	switch {
	case req.TotalDays <= 45:
		return leave.PaymentFull, nil
	case req.TotalDays <= 60:
		return leave.PaymentHalf, nil
	default:
		return leave.PaymentUnpaid, nil
	}
}

type parentalPolicy struct{}

func (parentalPolicy) Validate(req leave.Request, st EmployeeLeaveState) (leave.PaymentType, error) {
	return leave.PaymentFull, nil
}

type studyPolicy struct{}

func (studyPolicy) Validate(req leave.Request, st EmployeeLeaveState) (leave.PaymentType, error) {
	if req.PaymentType != "" {
		return req.PaymentType, nil
	}
	return leave.PaymentFull, nil
}

type compassionatePolicy struct{}

func (compassionatePolicy) Validate(req leave.Request, st EmployeeLeaveState) (leave.PaymentType, error) {
	if req.Relationship == nil || *req.Relationship == "" {
		return "", leave.NewPolicyError(req.Type, "relationship to the deceased is required for compassionate leave")
	}
	return leave.PaymentFull, nil
}
