package employee

import "time"

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
)

type Employee struct {
	ID               string
	FullName         string
	Email            string
	HireDate         time.Time
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OnProbation reports whether the employee is still inside the initial
// six-month probation period as of the given time.
func (e Employee) OnProbation(asOf time.Time) bool {
	return asOf.Before(e.HireDate.AddDate(0, 6, 0))
}
