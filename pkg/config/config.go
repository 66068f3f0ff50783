// Package config loads the relay's settings from the environment.
package config

import (
	"strings"

	"github.com/Abraxas-365/mailgun/pkg/errx"
)

var configErrors = errx.NewRegistry("CONFIG")

var ErrInvalidConfig = configErrors.Register("INVALID", errx.TypeValidation, 400, "Invalid configuration")

// Config is the full application configuration.
type Config struct {
	Mailgun MailgunConfig
	Notifx  NotifxConfig
	Storage StorageConfig
	Redis   RedisConfig
	Outbox  OutboxConfig
	Server  ServerConfig
}

// Load reads every section from the environment.
func Load() *Config {
	return &Config{
		Mailgun: loadMailgunConfig(),
		Notifx:  loadNotifxConfig(),
		Storage: loadStorageConfig(),
		Redis:   loadRedisConfig(),
		Outbox:  loadOutboxConfig(),
		Server:  loadServerConfig(),
	}
}

// Validate checks that the settings the relay binary needs are present.
// It does not verify credentials.
func (c *Config) Validate() error {
	var missing []string
	if c.Mailgun.APIKey == "" {
		missing = append(missing, "MAILGUN_API_KEY")
	}
	if c.Mailgun.Domain == "" {
		missing = append(missing, "MAILGUN_DOMAIN")
	}
	if c.Storage.Mode == "s3" && c.Storage.AWSBucket == "" {
		missing = append(missing, "AWS_BUCKET")
	}
	if len(missing) > 0 {
		return configErrors.New(ErrInvalidConfig).WithDetail("missing", strings.Join(missing, ","))
	}

	switch c.Storage.Mode {
	case "local", "s3":
	default:
		return configErrors.NewWithMessage(ErrInvalidConfig, "Unknown STORAGE_MODE").WithDetail("value", c.Storage.Mode)
	}
	switch c.Outbox.Backend {
	case "memory", "redis":
	default:
		return configErrors.NewWithMessage(ErrInvalidConfig, "Unknown OUTBOX_BACKEND").WithDetail("value", c.Outbox.Backend)
	}
	switch c.Notifx.Provider {
	case "mailgun", "console":
	default:
		return configErrors.NewWithMessage(ErrInvalidConfig, "Unknown NOTIFX_PROVIDER").WithDetail("value", c.Notifx.Provider)
	}
	switch strings.ToLower(c.Mailgun.Region) {
	case "us", "eu":
	default:
		return configErrors.NewWithMessage(ErrInvalidConfig, "Unknown MAILGUN_REGION").WithDetail("value", c.Mailgun.Region)
	}
	return nil
}
