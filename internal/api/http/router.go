package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-booking/internal/api/http/handlers"
	"github.com/spec-kit/hospital-booking/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Doctors        *handlers.DoctorsHandler
	Appointments   *handlers.AppointmentsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// public browsing
	app.Get("/doctors", cfg.Doctors.List)
	app.Get("/doctors/:id", cfg.Doctors.Get)
	app.Get("/specialties", cfg.Doctors.Specialties)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Accounts.Register)
	authGroup.Post("/login", cfg.Accounts.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, auth.RequireAccount(), cfg.Accounts.Logout)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAccount())
	protected.Get("/dashboard", cfg.Accounts.Dashboard)
	protected.Put("/profile", cfg.Accounts.UpdateProfile)
	protected.Post("/doctors/:id/appointments", cfg.Appointments.Book)
	protected.Get("/appointments", cfg.Appointments.List)
	protected.Get("/appointments/:id", cfg.Appointments.Get)
	protected.Post("/appointments/:id/cancel", cfg.Appointments.Cancel)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/doctors", cfg.Admin.ListDoctors)
	admin.Post("/doctors", cfg.Admin.CreateDoctor)
	admin.Put("/doctors/:id", cfg.Admin.UpdateDoctor)
	admin.Delete("/doctors/:id", cfg.Admin.DeleteDoctor)
	admin.Get("/appointments", cfg.Admin.ListAppointments)
	admin.Patch("/appointments/:id", cfg.Admin.UpdateAppointment)
	admin.Get("/users", cfg.Admin.ListUsers)
}
