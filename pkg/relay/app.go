package relay

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// AppOptions configures the fiber app.
type AppOptions struct {
	Name        string
	BodyLimitMB int
	CORSOrigins string
	Debug       bool
	// AccessLog enables fiber's request logger.
	AccessLog bool
}

// NewApp creates a fiber app with the relay's global middleware and error handling.
// Routes are registered by the caller.
func NewApp(opts AppOptions) *fiber.App {
	if opts.Name == "" {
		opts.Name = "Mailgun Relay"
	}
	if opts.BodyLimitMB <= 0 {
		opts.BodyLimitMB = 10
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               opts.Name,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(opts.Debug),
		BodyLimit:             opts.BodyLimitMB * 1024 * 1024,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: opts.Debug,
	}))

	app.Use(requestid.New(requestid.Config{
		Header: fiber.HeaderXRequestID,
		Generator: func() string {
			return "req-" + uuid.NewString()
		},
	}))
	app.Use(RequestContext())

	app.Use(cors.New(cors.Config{
		AllowOrigins:  opts.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET, POST, OPTIONS",
		ExposeHeaders: "X-Request-ID",
	}))

	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${respHeader:X-Request-ID}\n",
			TimeFormat: "2006-01-02 15:04:05",
			TimeZone:   "Local",
		}))
	}

	return app
}
