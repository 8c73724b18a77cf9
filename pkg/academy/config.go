package academy

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/colorbulb/nexteliteweb2/pkg/content"
	"github.com/colorbulb/nexteliteweb2/pkg/docstore/surrealstore"
)

// Backend names a document store implementation.
type Backend string

const (
	BackendSurrealDB Backend = "surrealdb"
	BackendPostgres  Backend = "postgres"
	BackendSQLite    Backend = "sqlite"
	BackendMemory    Backend = "memory"
)

func parseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendSurrealDB, BackendPostgres, BackendSQLite, BackendMemory:
		return b, nil
	}
	return "", fmt.Errorf("unknown backend %q (must be surrealdb, postgres, sqlite or memory)", s)
}

// Config holds the settings shared by every command.
type Config struct {
	Backend     Backend
	SurrealDB   surrealstore.Config
	PostgresDSN string
	SQLitePath  string
	// RedisURL enables the Redis mirror of visitor storage when set.
	RedisURL string

	Addr string
	// SessionKey authenticates visitor cookies. Empty generates a key per process.
	SessionKey string
	// JWTSecret signs admin session tokens. Empty generates a secret per process.
	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	ReadOnly      bool
	FailurePolicy content.Policy

	LogLevel string
	LogFile  string
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

// firstNonEmpty returns the flag value when set, else the environment value,
// else def.
func firstNonEmpty(flagValue, envKey, def string) string {
	if flagValue != "" {
		return flagValue
	}
	return getEnv(envKey, def)
}
