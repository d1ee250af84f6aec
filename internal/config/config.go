package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	StatsAPIBaseURL string
	ServerPort      string
	LogLevel        string

	// SeedUsernames are tracked automatically on startup.
	SeedUsernames []string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		StatsAPIBaseURL: strings.TrimRight(getEnv("STATS_API_BASE_URL", "https://kinkdin.onrender.com"), "/"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SeedUsernames:   splitList(getEnv("SEED_USERNAMES", "")),
	}

	logger.Info().
		Str("stats_api_base_url", cfg.StatsAPIBaseURL).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int("seed_usernames", len(cfg.SeedUsernames)).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var Module = fx.Provide(Load)
