package main

import (
	"log"
	"net/http"

	"timesheet/config"
	"timesheet/database"
	"timesheet/handlers"
	"timesheet/middleware"
	"timesheet/models"
	"timesheet/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	middleware.SetJWTSecret(cfg.JWTSecret)
	handlers.SetTokenTTL(cfg.JWTExpiration)
	handlers.SetTimesheetService(services.NewTimesheetService(database.GetDB(), services.EditPolicy{
		WeekStartDay:    cfg.WeekStartDay,
		LockPastWeeks:   cfg.LockPastWeeks,
		LockFutureWeeks: cfg.LockFutureWeeks,
	}))

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Post("/register", handlers.Register)
	r.Post("/login", handlers.Login)
	r.Post("/logout", handlers.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Get("/user", handlers.CurrentUser)
		r.Get("/profile", handlers.GetProfile)
		r.Post("/profile", handlers.SaveProfile)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.ListProjects)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleManager, models.RoleAdmin))
				r.Post("/", handlers.CreateProject)
				r.Put("/{projectID}", handlers.UpdateProject)
				r.Delete("/{projectID}", handlers.DeleteProject)
			})
		})

		r.Route("/timesheet", func(r chi.Router) {
			r.Post("/", handlers.SaveTimesheet)
			r.Get("/history", handlers.TimesheetHistory)
			r.Get("/stats/dashboard", handlers.TimesheetDashboard)
			r.Get("/{timesheetID}", handlers.GetTimesheet)
			r.Put("/{timesheetID}", handlers.UpdateTimesheet)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleManager))
				r.Get("/pending", handlers.PendingTimesheets)
				r.Post("/action/{timesheetID}", handlers.TimesheetAction)
			})
		})

		r.Route("/management", func(r chi.Router) {
			r.With(middleware.RequireRole(models.RoleManager)).
				Get("/my-team", handlers.MyTeam)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Get("/users", handlers.ListUsers)
				r.Get("/managers", handlers.ListManagers)
				r.Post("/users", handlers.CreateUser)
				r.Put("/users/{userID}", handlers.UpdateUser)
			})
		})

		r.With(middleware.RequireRole(models.RoleManager, models.RoleAdmin)).
			Get("/reports/employee-timesheet", handlers.EmployeeTimesheetReport)
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
