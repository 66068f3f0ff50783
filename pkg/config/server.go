package config

// ServerConfig configures the relay HTTP server.
type ServerConfig struct {
	Port        string
	CORSOrigins string
	// JWTSecret enables bearer-token auth on /api/v1 when set.
	JWTSecret   string
	BodyLimitMB int
	Debug       bool
	Version     string
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		JWTSecret:   getEnv("RELAY_JWT_SECRET", ""),
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 10),
		Debug:       getEnvBool("DEBUG", false),
		Version:     getEnv("APP_VERSION", "1.0.0"),
	}
}
