package leave

import (
	"errors"
	"fmt"
)

var (
	ErrRequestNotFound         = errors.New("leave request not found")
	ErrRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrBalanceNotFound         = errors.New("leave balance not found")
	ErrOverlappingLeave        = errors.New("leave request overlaps an existing request")
)

// PolicyError is a policy violation detected by the request validator. It is
// recoverable: it rejects the single request and carries a specific reason.
type PolicyError struct {
	LeaveType string
	Reason    string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %s", e.LeaveType, e.Reason)
}

func NewPolicyError(leaveType, reason string) *PolicyError {
	return &PolicyError{LeaveType: leaveType, Reason: reason}
}
