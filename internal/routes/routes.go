package routes

import (
	"time"

	"github.com/clientdesk/crm-backend/internal/config"
	"github.com/clientdesk/crm-backend/internal/handlers"
	"github.com/clientdesk/crm-backend/internal/middleware"
	"github.com/clientdesk/crm-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	resolver *tenant.Resolver,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	dashboardHandler *handlers.DashboardHandler,
	clientHandler *handlers.ClientHandler,
	taskHandler *handlers.TaskHandler,
	documentHandler *handlers.DocumentHandler,
	adminHandler *handlers.AdminHandler,
) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Tenant-scoped routes: JWT, then actor resolution, then the universal
	// profile guard.
	scoped := api.Group("",
		middleware.JWTProtected(cfg),
		middleware.LoadActor(resolver),
		middleware.RequireTenant(),
	)

	scoped.Get("/dashboard", dashboardHandler.Summary)

	scoped.Post("/clients", clientHandler.Create)
	scoped.Get("/clients", clientHandler.List)
	scoped.Get("/clients/:id", clientHandler.Get)
	scoped.Put("/clients/:id", clientHandler.Update)
	scoped.Delete("/clients/:id", clientHandler.Delete)

	scoped.Post("/tasks", taskHandler.Create)
	scoped.Get("/tasks", taskHandler.List)
	scoped.Get("/tasks/:id", taskHandler.Get)
	scoped.Put("/tasks/:id", taskHandler.Update)
	scoped.Post("/tasks/:id/complete", taskHandler.Complete)
	scoped.Delete("/tasks/:id", taskHandler.Delete)
	scoped.Get("/tasks/:id/comments", taskHandler.ListComments)
	scoped.Post("/tasks/:id/comments", taskHandler.AddComment)

	scoped.Post("/documents", documentHandler.Upload)
	scoped.Get("/documents", documentHandler.List)
	scoped.Get("/documents/:id", documentHandler.Get)
	scoped.Put("/documents/:id", documentHandler.Update)
	scoped.Delete("/documents/:id", documentHandler.Delete)
	scoped.Get("/documents/:id/download", documentHandler.Download)

	// Back-office: superuser only, no tenant guard (provisioning targets
	// principals that do not have a profile yet).
	admin := api.Group("/admin",
		middleware.JWTProtected(cfg),
		middleware.LoadActor(resolver),
		middleware.AdminRequired(cfg),
	)
	admin.Post("/tenants", adminHandler.CreateTenant)
	admin.Get("/tenants", adminHandler.ListTenants)
	admin.Post("/profiles", adminHandler.CreateProfile)
	admin.Get("/clients", adminHandler.ListClients)
}
