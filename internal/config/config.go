// Package config loads process configuration from the environment and
// builds the shared logger. Runtime preferences that change inside a
// session (orphan weighting, spark directory) live in the settings store
// instead, not here.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values.
type Config struct {
	// SurrealDB connection
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Vault
	VaultDir    string
	ScanWorkers int

	// Muse (Ollama)
	OllamaHost string
	MuseModel  string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "flint"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "vault"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		VaultDir:    getEnv("FLINT_VAULT", "."),
		ScanWorkers: getEnvInt("FLINT_SCAN_WORKERS", 4),

		OllamaHost: getEnv("OLLAMA_HOST", "http://localhost:11434"),
		MuseModel:  getEnv("FLINT_MUSE_MODEL", "llama3.2"),

		LogFile:  getEnv("FLINT_LOG_FILE", "/tmp/flint.log"),
		LogLevel: parseLogLevel(getEnv("FLINT_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
