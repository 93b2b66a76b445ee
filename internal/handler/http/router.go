package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/config"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/middleware"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Department DepartmentHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Correction CorrectionHandler
	Statistics StatisticsHandler
	File       FileHandler
}

func NewRouter(cfg config.AppConfig, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "e-presensi-politani"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Post("/change-password", h.Auth.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.GetMe)
				r.Put("/me", h.User.UpdateMe)
				r.Put("/me/photo", h.User.SetProfilePhoto)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.User.Create)
					r.Get("/", h.User.List)
					r.Get("/{id}", h.User.GetByID)
					r.Put("/{id}", h.User.Update)
					r.Delete("/{id}", h.User.Deactivate)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Department.List)
				r.Get("/my", h.Department.ListMine)
				r.Get("/{id}", h.Department.GetByID)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Department.Create)
					r.Put("/{id}", h.Department.Update)
					r.Delete("/{id}", h.Department.Delete)
					r.Post("/{id}/members", h.Department.AddMember)
					r.Delete("/{id}/members/{userID}", h.Department.RemoveMember)
					r.Put("/{id}/head", h.Department.SetHead)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/today", h.Attendance.Today)
				r.Get("/summary", h.Attendance.Summary)
				r.Get("/", h.Attendance.List)
				r.Get("/{id}", h.Attendance.GetByID)

				// Kajur or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.KajurOrAdmin)
					r.Put("/{id}/verify", h.Attendance.Verify)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/sync", h.Attendance.Sync)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", h.Leave.Create)
				r.Get("/", h.Leave.List)
				r.Get("/{id}", h.Leave.GetByID)
				r.Put("/{id}", h.Leave.Update)
				r.Delete("/{id}", h.Leave.Delete)

				// Kajur or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.KajurOrAdmin)
					r.Put("/{id}/review", h.Leave.Review)
					r.Get("/pending/{departmentID}", h.Leave.ListPending)
				})
			})

			r.Route("/corrections", func(r chi.Router) {
				r.Post("/", h.Correction.Create)
				r.Get("/", h.Correction.List)
				r.Get("/monthly-usage", h.Correction.MonthlyUsage)
				r.Get("/{id}", h.Correction.GetByID)

				// Kajur or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.KajurOrAdmin)
					r.Put("/{id}/review", h.Correction.Review)
					r.Get("/pending/{departmentID}", h.Correction.ListPending)
				})
			})

			r.Route("/statistics", func(r chi.Router) {
				r.Get("/", h.Statistics.GetStatistics)

				r.Route("/reports", func(r chi.Router) {
					r.Post("/", h.Statistics.GenerateReport)
					r.Get("/", h.Statistics.ListReports)
					r.Get("/{id}/download", h.Statistics.DownloadReport)
					r.Delete("/{id}", h.Statistics.DeleteReport)
				})
			})

			r.Route("/files", func(r chi.Router) {
				r.Post("/", h.File.Upload)
				r.Get("/", h.File.ListMine)
				r.Get("/{id}", h.File.GetByID)
				r.Get("/{id}/download", h.File.Download)
				r.Delete("/{id}", h.File.Delete)
			})
		})
	})
	return r
}
