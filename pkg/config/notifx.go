package config

// NotifxConfig configures the notification system.
type NotifxConfig struct {
	// Provider is "mailgun" or "console".
	Provider        string
	FromAddress     string
	FromName        string
	BulkConcurrency int
	// StagingDir is where in-memory attachments are written before a send.
	StagingDir string
}

func loadNotifxConfig() NotifxConfig {
	return NotifxConfig{
		Provider:        getEnv("NOTIFX_PROVIDER", "console"),
		FromAddress:     getEnv("NOTIFX_FROM_ADDRESS", getEnv("EMAIL_FROM_ADDRESS", "noreply@example.com")),
		FromName:        getEnv("NOTIFX_FROM_NAME", getEnv("EMAIL_FROM_NAME", "")),
		BulkConcurrency: getEnvInt("NOTIFX_BULK_CONCURRENCY", 4),
		StagingDir:      getEnv("NOTIFX_STAGING_DIR", "outgoing"),
	}
}
