package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jiseti/jiseti-api/internal/config"
	"github.com/jiseti/jiseti-api/internal/database"
	"github.com/jiseti/jiseti-api/internal/handlers"
	"github.com/jiseti/jiseti-api/internal/logging"
	"github.com/jiseti/jiseti-api/internal/middleware"
	"github.com/jiseti/jiseti-api/internal/notify"
	"github.com/jiseti/jiseti-api/internal/routes"
	"github.com/jiseti/jiseti-api/internal/services"
	"github.com/jiseti/jiseti-api/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Persist ERROR+ logs (delivery failures included) to the database
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Delivery collaborators; either may be nil when unconfigured
	mailer := notify.NewSMTPMailer(cfg)
	sms := notify.NewTwilioSMS(cfg)
	if mailer == nil {
		slog.Warn("SMTP not configured, status-change emails disabled")
	}
	dispatcher := notify.NewDispatcher(orNilMailer(mailer), orNilSMS(sms), cfg.NotifyTimeout)

	imageStore := storage.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL)

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	recordService := services.NewRecordService(database.DB, imageStore)
	adminService := services.NewAdminService(database.DB, dispatcher)
	notificationService := services.NewNotificationService(database.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	recordHandler := handlers.NewRecordHandler(recordService)
	adminHandler := handlers.NewAdminHandler(adminService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	app.Static(cfg.UploadBaseURL, cfg.UploadDir)

	routes.Setup(app, cfg, database.DB, authHandler, recordHandler, adminHandler, notificationHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

// Typed-nil guards: a nil *SMTPMailer stored in the Mailer interface would
// not compare equal to nil inside the dispatcher.
func orNilMailer(m *notify.SMTPMailer) notify.Mailer {
	if m == nil {
		return nil
	}
	return m
}

func orNilSMS(s *notify.TwilioSMS) notify.SMSSender {
	if s == nil {
		return nil
	}
	return s
}
