package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/config"
	appHTTP "github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/cron"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/database"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/jwt"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/storage"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/repository/postgresql"
	attendanceService "github.com/e-Presensi-Politani/e-presensi-backend/internal/service/attendance"
	authService "github.com/e-Presensi-Politani/e-presensi-backend/internal/service/auth"
	correctionService "github.com/e-Presensi-Politani/e-presensi-backend/internal/service/correction"
	departmentService "github.com/e-Presensi-Politani/e-presensi-backend/internal/service/department"
	fileService "github.com/e-Presensi-Politani/e-presensi-backend/internal/service/file"
	leaveService "github.com/e-Presensi-Politani/e-presensi-backend/internal/service/leave"
	statisticsService "github.com/e-Presensi-Politani/e-presensi-backend/internal/service/statistics"
	userService "github.com/e-Presensi-Politani/e-presensi-backend/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	fileRepo := postgresql.NewFileRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	synchronizer := leaveService.NewSynchronizer(attendanceRepo, leaveRequestRepo, cfg.Attendance)

	authSvc := authService.NewAuthService(userRepo, jwtSvc)
	userSvc := userService.NewUserService(userRepo, fileRepo)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo, userRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, departmentRepo, fileRepo, synchronizer)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		leaveRequestRepo,
		userRepo,
		departmentRepo,
		fileRepo,
		cfg.Attendance,
	)
	correctionSvc := correctionService.NewCorrectionService(correctionRepo, attendanceRepo, departmentRepo, fileRepo, attendanceSvc)
	fileSvc := fileService.NewFileService(fileRepo, fileStorage)
	statisticsSvc := statisticsService.NewStatisticsService(attendanceRepo, reportRepo, departmentRepo, fileStorage, cfg.Storage.ReportDir)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("mark_absences", time.Hour, atHour(23, func(ctx context.Context) error {
		return attendanceSvc.MarkAbsencesForToday(ctx)
	}))
	scheduler.AddJob("leave_attendance_sync", time.Hour, atHour(1, func(ctx context.Context) error {
		return synchronizer.SyncAll(ctx)
	}))
	scheduler.AddJob("file_cleanup", time.Hour, atHour(2, func(ctx context.Context) error {
		_, err := fileSvc.CleanupOrphaned(ctx)
		return err
	}))
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg.App, jwtSvc, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtSvc, authSvc),
		User:       appHTTP.NewUserHandler(userSvc),
		Department: appHTTP.NewDepartmentHandler(departmentSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Correction: appHTTP.NewCorrectionHandler(correctionSvc),
		Statistics: appHTTP.NewStatisticsHandler(statisticsSvc),
		File:       appHTTP.NewFileHandler(fileSvc),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}

// atHour gates an hourly job so its work only runs in the given local
// wall-clock hour.
func atHour(hour int, fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if time.Now().Hour() != hour {
			return nil
		}
		return fn(ctx)
	}
}
