package config

import (
	"time"

	"github.com/charmbracelet/log"
)

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Slack         SlackConfig
	Turso         TursoConfig
	ProjectID     string
	LogLevel      log.Level
	Ranking       RankingConfig
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// TursoConfig selects a remote libsql database. Leave PrimaryURL empty to use
// the local SQLite file.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type RankingConfig struct {
	CacheTTL time.Duration
	// Categories is the class order, best class first.
	Categories []string
}
