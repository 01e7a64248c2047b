package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Port        string
	DB          DBConfig
	Turso       TursoConfig
	Session     SessionConfig
	Slack       SlackConfig
	ProjectID   string
	HealthCron  string
	CORSOrigins []string
}

// DBConfig selects the store backend. Driver is one of sqlite3, libsql or postgres.
type DBConfig struct {
	Driver string
	Name   string
	URL    string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
