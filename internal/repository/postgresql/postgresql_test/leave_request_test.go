package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workline-hr/hrops-backend/internal/domain/leave"
	"github.com/workline-hr/hrops-backend/internal/pkg/database"
	"github.com/workline-hr/hrops-backend/internal/repository/postgresql"
	leaveService "github.com/workline-hr/hrops-backend/internal/service/leave"
)

var testDB *database.DB

func testInit(t *testing.T) {
	t.Helper()
	if testDB != nil {
		return
	}

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
}

func truncateLeaveTables(t *testing.T, ctx context.Context) {
	t.Helper()
	for _, table := range []string{"leave_requests", "leave_balances", "employees"} {
		_, err := testDB.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func createTestEmployee(t *testing.T, ctx context.Context, email string, hire time.Time) string {
	t.Helper()
	var id string
	err := testDB.QueryRow(ctx, `
		INSERT INTO employees (id, full_name, email, hire_date, employment_status)
		VALUES (uuidv7(), 'Test Employee', $1, $2, 'active')
		RETURNING id
	`, email, hire).Scan(&id)
	require.NoError(t, err)
	return id
}

func createPendingRequest(t *testing.T, ctx context.Context, repo leave.RequestRepository, employeeID string, start, end time.Time) leave.Request {
	t.Helper()
	created, err := repo.Create(ctx, leave.Request{
		EmployeeID:  employeeID,
		Type:        leave.TypeAnnual,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   leaveService.TotalCalendarDays(start, end),
		Status:      leave.RequestStatusPending,
		PaymentType: leave.PaymentFull,
		Reason:      "family trip",
	})
	require.NoError(t, err)
	return created
}

func TestLeaveRequestCheckOverlappingEmptyExcludeID(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateLeaveTables(t, ctx)

	employeeID := createTestEmployee(t, ctx, "overlap@example.com", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
	repo := postgresql.NewLeaveRequestRepository(testDB)

	start := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	// Empty exclude id against an empty table must not error.
	overlapping, err := repo.CheckOverlapping(ctx, employeeID, start, end, "")
	require.NoError(t, err)
	assert.False(t, overlapping)

	created := createPendingRequest(t, ctx, repo, employeeID, start, end)

	// Same interval now overlaps when nothing is excluded.
	overlapping, err = repo.CheckOverlapping(ctx, employeeID, start, end, "")
	require.NoError(t, err)
	assert.True(t, overlapping)

	// Excluding the request itself finds no other overlap.
	overlapping, err = repo.CheckOverlapping(ctx, employeeID, start, end, created.ID)
	require.NoError(t, err)
	assert.False(t, overlapping)
}

func TestLeaveRequestApproveReturnsPersistedRow(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateLeaveTables(t, ctx)

	employeeID := createTestEmployee(t, ctx, "requester@example.com", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
	approverID := createTestEmployee(t, ctx, "approver@example.com", time.Date(2018, time.June, 1, 0, 0, 0, 0, time.UTC))

	requestRepo := postgresql.NewLeaveRequestRepository(testDB)
	balanceRepo := postgresql.NewLeaveBalanceRepository(testDB)
	employeeRepo := postgresql.NewEmployeeRepository(testDB)

	svc := leaveService.NewRequestService(testDB, requestRepo, balanceRepo, employeeRepo, nil, time.UTC)

	start := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	created := createPendingRequest(t, ctx, requestRepo, employeeID, start, start.AddDate(0, 0, 4))

	approved, err := svc.Approve(ctx, created.ID, approverID)
	require.NoError(t, err)

	assert.Equal(t, leave.RequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, approverID, *approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)

	// The returned row must carry the store-side approval timestamp, not a
	// client-side clock reading.
	persisted, err := requestRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted.ApprovedAt)
	assert.True(t, approved.ApprovedAt.Equal(*persisted.ApprovedAt),
		"returned approved_at %v differs from persisted %v", approved.ApprovedAt, persisted.ApprovedAt)
}
