package leave

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workline-hr/hrops-backend/internal/domain/employee"
	"github.com/workline-hr/hrops-backend/internal/domain/leave"
)

type fakeEmployeeRepo struct {
	active []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.active {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	return f.active, nil
}

type fakeBalanceRepo struct {
	rows        map[string]leave.Balance
	failUpserts map[string]error
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{rows: make(map[string]leave.Balance)}
}

func balanceKey(employeeID, leaveType string, year int) string {
	return fmt.Sprintf("%s|%s|%d", employeeID, leaveType, year)
}

func (f *fakeBalanceRepo) Upsert(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	if err := f.failUpserts[balance.EmployeeID]; err != nil {
		return leave.Balance{}, err
	}

	key := balanceKey(balance.EmployeeID, balance.LeaveType, balance.Year)
	if existing, ok := f.rows[key]; ok {
		// Overwrite allocation, never consumption.
		balance.UsedDays = existing.UsedDays
	}
	f.rows[key] = balance
	return balance, nil
}

func (f *fakeBalanceRepo) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveType string, year int) (leave.Balance, error) {
	balance, ok := f.rows[balanceKey(employeeID, leaveType, year)]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return balance, nil
}

func (f *fakeBalanceRepo) GetForUpdate(ctx context.Context, employeeID, leaveType string, year int) (leave.Balance, error) {
	return f.GetByEmployeeTypeYear(ctx, employeeID, leaveType, year)
}

func (f *fakeBalanceRepo) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	var balances []leave.Balance
	for _, balance := range f.rows {
		if balance.EmployeeID == employeeID && balance.Year == year {
			balances = append(balances, balance)
		}
	}
	return balances, nil
}

func (f *fakeBalanceRepo) AddUsedDays(ctx context.Context, id string, days int) error {
	for key, balance := range f.rows {
		if balance.ID == id {
			balance.UsedDays += days
			f.rows[key] = balance
			return nil
		}
	}
	return leave.ErrBalanceNotFound
}

func activeEmployee(id string, hire time.Time) employee.Employee {
	return employee.Employee{
		ID:               id,
		FullName:         "Employee " + id,
		HireDate:         hire,
		EmploymentStatus: employee.EmploymentStatusActive,
	}
}

func TestAllocateYearCoversAllAutoAllocatedTypes(t *testing.T) {
	balances := newFakeBalanceRepo()
	employees := &fakeEmployeeRepo{active: []employee.Employee{
		activeEmployee("emp-1", hired(2019, time.April, 1)),
		activeEmployee("emp-2", hired(2024, time.October, 1)),
	}}

	svc := NewAllocationService(balances, employees, nil, time.UTC)

	summary, err := svc.AllocateYear(context.Background(), 2024)
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, 2, summary.Employees)
	assert.Equal(t, 2*len(leave.AutoAllocatedTypes), summary.Allocated)
	assert.Empty(t, summary.Failures)
	assert.Len(t, balances.rows, 2*len(leave.AutoAllocatedTypes))

	// Veteran gets the full table.
	annual, err := balances.GetByEmployeeTypeYear(context.Background(), "emp-1", leave.TypeAnnual, 2024)
	require.NoError(t, err)
	assert.Equal(t, 30, annual.AllocatedDays)
	assert.Equal(t, 68, annual.ServiceMonths)

	hajj, err := balances.GetByEmployeeTypeYear(context.Background(), "emp-1", leave.TypeHajj, 2024)
	require.NoError(t, err)
	assert.Equal(t, 30, hajj.AllocatedDays)

	// A hire inside probation gets zero annual and sick days.
	annual, err = balances.GetByEmployeeTypeYear(context.Background(), "emp-2", leave.TypeAnnual, 2024)
	require.NoError(t, err)
	assert.Equal(t, 0, annual.AllocatedDays)
	assert.Equal(t, 2, annual.ServiceMonths)

	sick, err := balances.GetByEmployeeTypeYear(context.Background(), "emp-2", leave.TypeSick, 2024)
	require.NoError(t, err)
	assert.Equal(t, 0, sick.AllocatedDays)
}

func TestAllocateYearNeverAllocatesCompassionate(t *testing.T) {
	balances := newFakeBalanceRepo()
	employees := &fakeEmployeeRepo{active: []employee.Employee{
		activeEmployee("emp-1", hired(2019, time.April, 1)),
	}}

	svc := NewAllocationService(balances, employees, nil, time.UTC)

	_, err := svc.AllocateYear(context.Background(), 2024)
	require.NoError(t, err)

	_, err = balances.GetByEmployeeTypeYear(context.Background(), "emp-1", leave.TypeCompassionate, 2024)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestAllocateYearIsIdempotent(t *testing.T) {
	balances := newFakeBalanceRepo()
	employees := &fakeEmployeeRepo{active: []employee.Employee{
		activeEmployee("emp-1", hired(2019, time.April, 1)),
	}}

	svc := NewAllocationService(balances, employees, nil, time.UTC)

	first, err := svc.AllocateYear(context.Background(), 2024)
	require.NoError(t, err)

	// Simulate consumption between runs.
	annualKey := balanceKey("emp-1", leave.TypeAnnual, 2024)
	row := balances.rows[annualKey]
	row.UsedDays = 7
	balances.rows[annualKey] = row

	second, err := svc.AllocateYear(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, first.Allocated, second.Allocated)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Len(t, balances.rows, len(leave.AutoAllocatedTypes))

	annual := balances.rows[annualKey]
	assert.Equal(t, 30, annual.AllocatedDays)
	assert.Equal(t, 7, annual.UsedDays)
}

func TestAllocateYearCollectsPerEmployeeFailures(t *testing.T) {
	balances := newFakeBalanceRepo()
	balances.failUpserts = map[string]error{"emp-2": errors.New("bad hire date row")}
	employees := &fakeEmployeeRepo{active: []employee.Employee{
		activeEmployee("emp-1", hired(2019, time.April, 1)),
		activeEmployee("emp-2", hired(2021, time.July, 15)),
		activeEmployee("emp-3", hired(2022, time.February, 1)),
	}}

	svc := NewAllocationService(balances, employees, nil, time.UTC)

	summary, err := svc.AllocateYear(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, 2*len(leave.AutoAllocatedTypes), summary.Allocated)
	require.Len(t, summary.Failures, len(leave.AutoAllocatedTypes))
	for _, failure := range summary.Failures {
		assert.Equal(t, "emp-2", failure.EmployeeID)
		assert.Contains(t, failure.Error, "bad hire date row")
	}
}
