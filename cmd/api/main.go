package main

import (
	"fmt"
	"net/http"

	"github.com/workline-hr/hrops-backend/internal/config"
	appHTTP "github.com/workline-hr/hrops-backend/internal/handler/http"
	"github.com/workline-hr/hrops-backend/internal/pkg/cron"
	"github.com/workline-hr/hrops-backend/internal/pkg/database"
	"github.com/workline-hr/hrops-backend/internal/pkg/jwt"
	"github.com/workline-hr/hrops-backend/internal/repository/postgresql"
	attendanceService "github.com/workline-hr/hrops-backend/internal/service/attendance"
	leaveService "github.com/workline-hr/hrops-backend/internal/service/leave"
	notificationService "github.com/workline-hr/hrops-backend/internal/service/notification"
	payrollService "github.com/workline-hr/hrops-backend/internal/service/payroll"
	scheduleService "github.com/workline-hr/hrops-backend/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	location := cfg.Location()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	exceptionRepo := postgresql.NewExceptionRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	notificationSvc := notificationService.NewService(notificationRepo)
	scheduleResolver := scheduleService.NewResolver(workScheduleRepo)
	attendanceSvc := attendanceService.NewService(
		db,
		attendanceRepo,
		exceptionRepo,
		leaveRequestRepo,
		scheduleResolver,
		notificationSvc,
		location,
	)
	leaveRequestSvc := leaveService.NewRequestService(
		db,
		leaveRequestRepo,
		leaveBalanceRepo,
		employeeRepo,
		notificationSvc,
		location,
	)
	allocationSvc := leaveService.NewAllocationService(
		leaveBalanceRepo,
		employeeRepo,
		notificationSvc,
		location,
	)
	payrollSvc := payrollService.NewService(payslipRepo)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		leaveJobs := cron.NewLeaveJobs(allocationSvc, cfg.Cron.AllocationInterval, location)
		leaveJobs.RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, location)
	leaveHandler := appHTTP.NewLeaveHandler(leaveRequestSvc, allocationSvc, location)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, location)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		attendanceHandler,
		leaveHandler,
		payrollHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
