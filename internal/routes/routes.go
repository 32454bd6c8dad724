package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jiseti/jiseti-api/internal/config"
	"github.com/jiseti/jiseti-api/internal/handlers"
	"github.com/jiseti/jiseti-api/internal/identity"
	"github.com/jiseti/jiseti-api/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	recordHandler *handlers.RecordHandler,
	adminHandler *handlers.AdminHandler,
	notificationHandler *handlers.NotificationHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/health", healthHandler.Check)

	// Public auth endpoints, with a stricter limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Post("/signup", authLimiter, authHandler.Signup)
	app.Post("/login", authLimiter, authHandler.Login)

	// Everything below resolves the caller's identity once per request.
	authed := app.Group("", middleware.JWTProtected(cfg), identity.Resolve(db))

	authed.Get("/me", authHandler.Me)
	authed.Delete("/account", authHandler.DeleteAccount)

	authed.Get("/records", recordHandler.List)
	authed.Post("/records", recordHandler.Create)
	authed.Get("/records/:id", recordHandler.Get)
	authed.Put("/records/:id", recordHandler.Update)
	authed.Delete("/records/:id", recordHandler.Delete)
	authed.Patch("/records/:id/location", recordHandler.UpdateLocation)
	authed.Post("/records/:id/images", recordHandler.UploadImage)

	authed.Get("/notifications", notificationHandler.List)

	admin := authed.Group("/admin", middleware.AdminRequired())
	admin.Get("/records", adminHandler.ListRecords)
	admin.Patch("/records/:id", adminHandler.UpdateStatus)
}
