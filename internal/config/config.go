package config

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite3"
	DriverLibSQL   = "libsql"
	DriverPostgres = "postgres"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		Port: getEnvDefault("PORT", "8080"),
		DB: DBConfig{
			Driver: getEnvDefault("DB_DRIVER", DriverSQLite),
			Name:   getEnvDefault("DB_NAME", "sports.db"),
			URL:    os.Getenv("DATABASE_URL"),
		},
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		Session: SessionConfig{
			Secret: getEnv("JWT_SECRET"),
			TTL:    parseDuration("SESSION_TTL", 12*time.Hour),
		},
		Slack: SlackConfig{
			Token:     os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID: os.Getenv("SLACK_CHANNEL_ID"),
		},
		ProjectID:   os.Getenv("GCP_PROJECT"),
		HealthCron:  getEnvDefault("HEALTH_CRON", "@every 1m"),
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
	}

	switch cfg.DB.Driver {
	case DriverSQLite, DriverLibSQL, DriverPostgres:
	default:
		log.Fatalf("Error: unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	if cfg.DB.Driver == DriverPostgres && cfg.DB.URL == "" {
		log.Fatal("Error: DATABASE_URL is required when DB_DRIVER=postgres")
	}
	return cfg
}

func getEnvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn("Invalid duration, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
