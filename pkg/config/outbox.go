package config

import "time"

// OutboxConfig configures the asynchronous send queue.
type OutboxConfig struct {
	// Backend is "memory" or "redis".
	Backend         string
	Concurrency     int
	DequeueTimeout  time.Duration
	ShutdownTimeout time.Duration
	// EntryTTL expires finished entries in Redis. Zero keeps them.
	EntryTTL time.Duration
}

func loadOutboxConfig() OutboxConfig {
	return OutboxConfig{
		Backend:         getEnv("OUTBOX_BACKEND", "memory"),
		Concurrency:     getEnvInt("OUTBOX_CONCURRENCY", 4),
		DequeueTimeout:  getEnvDuration("OUTBOX_DEQUEUE_TIMEOUT", 5*time.Second),
		ShutdownTimeout: getEnvDuration("OUTBOX_SHUTDOWN_TIMEOUT", 30*time.Second),
		EntryTTL:        getEnvDuration("OUTBOX_ENTRY_TTL", 7*24*time.Hour),
	}
}
