package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultMigrationsDir = "./migrations"
	defaultCacheTTL      = 30 * time.Second
)

var defaultCategories = []string{"4ª Classe", "5ª Classe", "6ª Classe"}

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromLookup(os.LookupEnv)
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	return cfg
}

// FromLookup builds a Config from a variable lookup such as os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	optional := func(key, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: optional("MIGRATIONS_DIR", defaultMigrationsDir),
		Port:          getEnv("PORT"),
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN"),
			ChannelID:     getEnv("SLACK_CHANNEL_ID"),
			SigningSecret: optional("SLACK_SIGNING_SECRET", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: optional("TURSO_PRIMARY_URL", ""),
			AuthToken:  optional("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: getEnv("GCP_PROJECT"),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var errs []error

	level, err := log.ParseLevel(optional("LOG_LEVEL", "info"))
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	cfg.LogLevel = level

	ttl, err := time.ParseDuration(optional("RANKING_CACHE_TTL", defaultCacheTTL.String()))
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("RANKING_CACHE_TTL: %w", err))
	case ttl < 0:
		errs = append(errs, fmt.Errorf("RANKING_CACHE_TTL must not be negative, got %s", ttl))
	}
	cfg.Ranking.CacheTTL = ttl

	cfg.Ranking.Categories = parseList(optional("RANKING_CATEGORIES", ""))
	if len(cfg.Ranking.Categories) == 0 {
		cfg.Ranking.Categories = defaultCategories
	}

	if cfg.Turso.PrimaryURL != "" && cfg.Turso.AuthToken == "" {
		errs = append(errs, errors.New("TURSO_AUTH_TOKEN is required when TURSO_PRIMARY_URL is set"))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
