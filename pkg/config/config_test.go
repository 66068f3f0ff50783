package config_test

import (
	"testing"
	"time"

	"github.com/Abraxas-365/mailgun/pkg/config"
	"github.com/Abraxas-365/mailgun/pkg/errx"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"MAILGUN_API_KEY", "MAILGUN_DOMAIN", "MAILGUN_REGION", "MAILGUN_TIMEOUT", "OUTBOX_BACKEND", "PORT", "STORAGE_MODE"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()
	if cfg.Mailgun.Region != "us" || cfg.Mailgun.Timeout != 30*time.Second {
		t.Errorf("unexpected mailgun defaults %+v", cfg.Mailgun)
	}
	if cfg.Outbox.Backend != "memory" || cfg.Outbox.Concurrency != 4 {
		t.Errorf("unexpected outbox defaults %+v", cfg.Outbox)
	}
	if cfg.Server.Port != "8080" || cfg.Storage.Mode != "local" {
		t.Errorf("unexpected server/storage defaults %+v %+v", cfg.Server, cfg.Storage)
	}
	if cfg.Redis.Address() != "localhost:6379" {
		t.Errorf("unexpected redis address %s", cfg.Redis.Address())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("MAILGUN_API_KEY", "key-1")
	t.Setenv("MAILGUN_DOMAIN", "mg.example.com")
	t.Setenv("MAILGUN_REGION", "eu")
	t.Setenv("MAILGUN_TIMEOUT", "10")
	t.Setenv("OUTBOX_DEQUEUE_TIMEOUT", "250ms")
	t.Setenv("CORS_ORIGINS", "https://a.example.com")

	cfg := config.Load()
	if cfg.Mailgun.APIKey != "key-1" || cfg.Mailgun.Domain != "mg.example.com" || cfg.Mailgun.Region != "eu" {
		t.Errorf("unexpected mailgun config %+v", cfg.Mailgun)
	}
	if cfg.Mailgun.Timeout != 10*time.Second {
		t.Errorf("expected bare seconds to parse, got %v", cfg.Mailgun.Timeout)
	}
	if cfg.Outbox.DequeueTimeout != 250*time.Millisecond {
		t.Errorf("unexpected dequeue timeout %v", cfg.Outbox.DequeueTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("MAILGUN_API_KEY", "")
	t.Setenv("MAILGUN_DOMAIN", "")

	cfg := config.Load()
	err := cfg.Validate()
	if !errx.IsCode(err, config.ErrInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}

	cfg.Mailgun.APIKey = "k"
	cfg.Mailgun.Domain = "d"
	cfg.Outbox.Backend = "kafka"
	if err := cfg.Validate(); !errx.IsCode(err, config.ErrInvalidConfig) {
		t.Fatalf("expected unknown backend to be rejected, got %v", err)
	}
}
