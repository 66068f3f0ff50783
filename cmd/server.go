package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Abraxas-365/mailgun/pkg/config"
	"github.com/Abraxas-365/mailgun/pkg/logx"
	"github.com/Abraxas-365/mailgun/pkg/relay"
	"github.com/gofiber/fiber/v2"
)

func main() {
	// 1. Logger reads LOG_LEVEL / LOG_FORMAT itself; config comes next
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logx.WithError(err).Fatal("Invalid configuration")
	}

	logx.Info("🚀 Starting Mailgun Relay...")

	// 2. Dependency container
	container := NewContainer(cfg)

	// 3. Fiber app with global middleware
	app := relay.NewApp(relay.AppOptions{
		Name:        "Mailgun Relay",
		BodyLimitMB: cfg.Server.BodyLimitMB,
		CORSOrigins: cfg.Server.CORSOrigins,
		Debug:       cfg.Server.Debug,
		AccessLog:   true,
	})

	// 4. Health & info
	app.Get("/health", healthCheckHandler(container))
	app.Get("/", infoHandler(cfg))

	// 5. API routes
	container.Handlers.RegisterRoutes(app, container.AuthMiddleware...)
	logx.Info("✓ Relay routes registered")

	// 6. 404
	app.Use(relay.NotFound)

	printRouteSummary()

	// 7. Background workers and server, stopped together on signal
	ctx, stop := context.WithCancel(context.Background())
	container.StartBackgroundServices(ctx)

	startServer(app, cfg.Server.Port)

	stop()
	container.Cleanup()
}

// healthCheckHandler returns a health check handler
func healthCheckHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := container.Healthy(c.UserContext())
		health["service"] = "mailgun-relay"
		health["version"] = container.Config.Server.Version

		status := fiber.StatusOK
		if health["status"] == "degraded" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(health)
	}
}

// infoHandler returns basic API information
func infoHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "Mailgun Relay",
			"version": cfg.Server.Version,
			"domain":  cfg.Mailgun.Domain,
			"endpoints": fiber.Map{
				"send":        "POST /api/v1/messages",
				"enqueue":     "POST /api/v1/outbox",
				"status":      "GET /api/v1/outbox/:id",
				"email":       "POST /api/v1/emails",
				"email_bulk":  "POST /api/v1/emails/bulk",
				"health":      "GET /health",
				"auth_header": "Authorization: Bearer <token>",
			},
		})
	}
}

// printRouteSummary prints a summary of registered routes
func printRouteSummary() {
	logx.Info("📋 Route Summary:")
	logx.Info("   ├─ Messages: POST /api/v1/messages")
	logx.Info("   ├─ Outbox: POST /api/v1/outbox, GET /api/v1/outbox/:id")
	logx.Info("   ├─ Emails: POST /api/v1/emails, POST /api/v1/emails/bulk")
	logx.Info("   └─ Health: /health")
}

// startServer runs the server until an interrupt, then shuts it down gracefully.
func startServer(app *fiber.App, port string) {
	go func() {
		logx.Info(strings.Repeat("=", 61))
		logx.Infof("🚀 Server listening on port %s", port)
		logx.Infof("💚 Health Check: http://localhost:%s/health", port)
		logx.Info(strings.Repeat("=", 61))

		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logx.Infof("🛑 Received signal: %v", sig)
	logx.Info("Shutting down gracefully...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("✅ Server exited successfully")
}
