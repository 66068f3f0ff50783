package config

import "time"

// MailgunConfig configures the Mailgun client.
type MailgunConfig struct {
	APIKey string
	Domain string
	// Region is "us" or "eu". BaseURL, when set, wins over Region.
	Region  string
	BaseURL string
	Timeout time.Duration
}

func loadMailgunConfig() MailgunConfig {
	return MailgunConfig{
		APIKey:  getEnv("MAILGUN_API_KEY", ""),
		Domain:  getEnv("MAILGUN_DOMAIN", ""),
		Region:  getEnv("MAILGUN_REGION", "us"),
		BaseURL: getEnv("MAILGUN_BASE_URL", ""),
		Timeout: getEnvDuration("MAILGUN_TIMEOUT", 30*time.Second),
	}
}
