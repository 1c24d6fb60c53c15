package notification

import "time"

type Type string

const (
	TypeLeaveApproved     Type = "leave_approved"
	TypeLeaveRejected     Type = "leave_rejected"
	TypeExceptionResolved Type = "exception_resolved"
	TypeAbsenceBreach     Type = "absence_breach"
	TypeBalanceAllocated  Type = "balance_allocated"
)

type Notification struct {
	ID          string
	RecipientID string
	Type        Type
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	CreatedAt   time.Time
}
