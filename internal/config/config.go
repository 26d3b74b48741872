package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults del servidor.
const (
	DefaultAddr = ":8080"
	DefaultApp  = "shelter-outcomes"
)

// Config junta todo lo configurable del proceso. Las constantes del scoring
// (TTL, umbral, pesos) son fijas en código y no aparecen acá.
type Config struct {
	// Addr es la dirección de escucha del HTTP server (default :8080).
	Addr string `yaml:"addr"`

	// DBDSN: si viene, el router usa Postgres; si no, repos in-memory.
	DBDSN string `yaml:"db_dsn"`

	// App es el nombre con el que se anota cada línea de log.
	App string `yaml:"app"`

	// Logging.
	LogLevel string `yaml:"log_level"` // debug|info|warn|error
	LogFile  string `yaml:"log_file"`  // si viene, fanout JSON a archivo
}

// Load arma la config: defaults, luego el archivo YAML opcional (CONFIG_FILE),
// luego overrides por env. El archivo es opcional; las env vars siempre ganan.
func Load() (Config, error) {
	cfg := Config{
		Addr:     DefaultAddr,
		App:      DefaultApp,
		LogLevel: "info",
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := os.Getenv("APP_NAME"); v != "" {
		cfg.App = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	return cfg, nil
}

// Level parsea LogLevel a slog.Level (default info).
func (c Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
