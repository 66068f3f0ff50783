// cmd/container.go
//
// Composition root. Owns infrastructure (Redis, file storage) and wires the
// Mailgun client, notifx, the outbox and the relay handlers.
package main

import (
	"context"
	"strings"
	"sync"

	"github.com/Abraxas-365/mailgun/pkg/config"
	"github.com/Abraxas-365/mailgun/pkg/fsx"
	"github.com/Abraxas-365/mailgun/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/mailgun/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/mailgun/pkg/logx"
	"github.com/Abraxas-365/mailgun/pkg/mailgun"
	"github.com/Abraxas-365/mailgun/pkg/notifx"
	"github.com/Abraxas-365/mailgun/pkg/notifx/notifxconsole"
	"github.com/Abraxas-365/mailgun/pkg/notifx/notifxmailgun"
	"github.com/Abraxas-365/mailgun/pkg/outbox"
	"github.com/Abraxas-365/mailgun/pkg/outbox/outboxmemory"
	"github.com/Abraxas-365/mailgun/pkg/outbox/outboxredis"
	"github.com/Abraxas-365/mailgun/pkg/relay"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Container holds shared infrastructure and the composed services.
type Container struct {
	Config *config.Config

	// Infrastructure
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Services
	Mailgun  *mailgun.Client
	Notifier *notifx.Client
	Outbox   *outbox.Client

	// HTTP
	Handlers       *relay.Handlers
	AuthMiddleware []fiber.Handler

	background sync.WaitGroup
}

func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing application container...")

	c := &Container{Config: cfg}

	c.initInfrastructure()
	c.initModules()

	logx.Info("✅ Application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// Infrastructure: Redis, file storage
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	if c.Config.Outbox.Backend == "redis" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Address(),
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
			logx.Fatalf("Failed to connect to Redis: %v (required by OUTBOX_BACKEND=redis)", err)
		}
		logx.Info("  ✅ Redis connected")
	}

	c.initFileStorage()

	logx.Info("✅ Infrastructure initialized")
}

func (c *Container) initFileStorage() {
	storage := c.Config.Storage

	switch storage.Mode {
	case "s3":
		cfg, err := awsConfig.LoadDefaultConfig(context.TODO(), awsConfig.WithRegion(storage.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, storage.AWSBucket, storage.AWSPrefix)
		logx.Infof("  ✅ S3 file system configured (bucket: %s, region: %s)", storage.AWSBucket, storage.AWSRegion)

	case "local":
		localFS, err := fsxlocal.NewLocalFileSystem(storage.UploadDir)
		if err != nil {
			logx.Fatalf("Failed to initialize local file system: %v", err)
		}
		c.FileSystem = localFS
		logx.Infof("  ✅ Local file system configured (path: %s)", localFS.GetBasePath())

	default:
		logx.Fatalf("Unknown STORAGE_MODE: %s (use 'local' or 's3')", storage.Mode)
	}
}

// ---------------------------------------------------------------------------
// Module composition
// ---------------------------------------------------------------------------

func (c *Container) initModules() {
	logx.Info("📦 Initializing modules...")

	mg := c.Config.Mailgun
	opts := []mailgun.Option{
		mailgun.WithRegion(mailgun.Region(strings.ToLower(mg.Region))),
		mailgun.WithTimeout(mg.Timeout),
		mailgun.WithFileReader(c.FileSystem),
	}
	if mg.BaseURL != "" {
		opts = append(opts, mailgun.WithBaseURL(mg.BaseURL))
	}
	c.Mailgun = mailgun.NewClient(mg.APIKey, mg.Domain, opts...)
	logx.Infof("  ✅ Mailgun client configured (endpoint: %s)", c.Mailgun.Endpoint())

	c.initNotifier()
	c.initOutbox()

	c.Handlers = relay.NewHandlers(c.Mailgun, c.Outbox, c.Notifier)
	if secret := c.Config.Server.JWTSecret; secret != "" {
		tokens := relay.NewJWTService(secret, 0)
		c.AuthMiddleware = []fiber.Handler{relay.NewTokenMiddleware(tokens).Authenticate()}
		logx.Info("  ✅ Bearer token auth enabled on /api/v1")
	} else {
		logx.Warn("  ⚠️ RELAY_JWT_SECRET not set, /api/v1 is unauthenticated")
	}
}

func (c *Container) initNotifier() {
	nc := c.Config.Notifx

	switch nc.Provider {
	case "mailgun":
		from := mailgun.NewAddress(nc.FromName, nc.FromAddress)
		provider := notifxmailgun.NewProvider(c.Mailgun, from,
			notifxmailgun.WithStaging(c.FileSystem, nc.StagingDir),
			notifxmailgun.WithBulkConcurrency(nc.BulkConcurrency),
		)
		c.Notifier = notifx.NewClient(provider)
	default:
		c.Notifier = notifx.NewClient(notifxconsole.NewConsoleProvider())
	}
	logx.Infof("  ✅ notifx provider: %s", nc.Provider)
}

func (c *Container) initOutbox() {
	oc := c.Config.Outbox

	var store outbox.Store
	switch oc.Backend {
	case "redis":
		store = outboxredis.NewRedisStore(c.Redis, outboxredis.WithEntryTTL(oc.EntryTTL))
	default:
		store = outboxmemory.NewMemoryStore()
	}

	c.Outbox = outbox.NewClient(store, c.Mailgun,
		outbox.WithConcurrency(oc.Concurrency),
		outbox.WithDequeueTimeout(oc.DequeueTimeout),
		outbox.WithShutdownTimeout(oc.ShutdownTimeout),
	)
	logx.Infof("  ✅ Outbox configured (backend: %s, workers: %d)", oc.Backend, oc.Concurrency)
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func (c *Container) StartBackgroundServices(ctx context.Context) {
	logx.Info("🔄 Starting background services...")

	c.background.Add(1)
	go func() {
		defer c.background.Done()
		if err := c.Outbox.Start(ctx); err != nil {
			logx.WithError(err).Error("Outbox worker stopped with error")
		}
	}()
}

// Cleanup waits for background services, which stop when their context is
// cancelled, then releases infrastructure.
func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	c.background.Wait()

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("  ✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup complete")
}

// Healthy reports infrastructure status for the health endpoint.
func (c *Container) Healthy(ctx context.Context) fiber.Map {
	health := fiber.Map{"status": "healthy"}

	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			health["redis"] = "unhealthy"
			health["redis_error"] = err.Error()
			health["status"] = "degraded"
		} else {
			health["redis"] = "healthy"
		}
	}
	health["outbox_running"] = c.Outbox.Running()
	return health
}
