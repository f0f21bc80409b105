package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/shieldify/takedown-portal/internal/config"
	"github.com/shieldify/takedown-portal/internal/handlers"
	"github.com/shieldify/takedown-portal/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminReportHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter 10 req/min limit
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

	// Customer reports (JWT required, own rows only)
	reports := api.Group("/reports", middleware.JWTProtected(cfg))
	reports.Post("/", reportHandler.Create)
	reports.Get("/", reportHandler.List)
	reports.Get("/:id", reportHandler.Get)

	// Admin review surface (JWT + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/reports", adminHandler.List)
	admin.Get("/reports/export", adminHandler.Export)
	admin.Get("/reports/:id", adminHandler.Get)
	admin.Post("/reports/:id/assign-number", adminHandler.AssignNumber)
	admin.Post("/reports/:id/approve", adminHandler.Approve)
	admin.Post("/reports/:id/reject", adminHandler.Reject)
	admin.Post("/reports/:id/reset-to-pending", adminHandler.ResetToPending)
}
