// Package config loads Harmony's process configuration from the
// environment, matching the container-first convention the whole fleet
// (orchestrator, worker containers) deploys under. It reads no
// command-line flags: Load starts from Default and applies environment
// variables only.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the orchestrator process's full configuration.
type Config struct {
	// HTTP surface
	HTTPAddr string
	HTTPPort int

	// Database (pkg/jobstore/postgres)
	DBHost            string
	DBPort            int
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// CLIENT_ID identifies this deployment to CMR and the identity
	// provider; defaults to "harmony-unknown" per spec.md §6.
	ClientID string

	// DeploymentCallbackSecret guards POST /service/deployment-callback.
	DeploymentCallbackSecret string

	// LogLevel: debug|info|warn|error.
	LogLevel string

	// Worker-facing poll tuning.
	PollInterval    time.Duration
	CompletionRetry int
}

// Default returns the configuration's zero-value-safe defaults. Load
// starts from this and layers environment variables on top.
func Default() *Config {
	return &Config{
		HTTPAddr:          "0.0.0.0",
		HTTPPort:          8080,
		DBHost:            "localhost",
		DBPort:            5432,
		DBUser:            "harmony",
		DBName:            "harmony",
		DBSSLMode:         "disable",
		DBMaxOpenConns:    25,
		DBMaxIdleConns:    5,
		DBConnMaxLifetime: 5 * time.Minute,
		ClientID:          "harmony-unknown",
		LogLevel:          "info",
		PollInterval:      2 * time.Second,
		CompletionRetry:   4,
	}
}

// Load builds a Config from Default() overridden by environment
// variables. Malformed numeric/duration values are ignored, keeping the
// previously-set (default or earlier-loaded) value; an invalid DB_PORT,
// for example, keeps the default.
func Load() *Config {
	c := Default()

	setString(&c.HTTPAddr, "HARMONY_HTTP_ADDR")
	setInt(&c.HTTPPort, "HARMONY_HTTP_PORT")

	setString(&c.DBHost, "DB_HOST")
	setInt(&c.DBPort, "DB_PORT")
	setString(&c.DBUser, "DB_USER")
	setString(&c.DBPassword, "DB_PASSWORD")
	setString(&c.DBName, "DB_NAME")
	setString(&c.DBSSLMode, "DB_SSL_MODE")
	setInt(&c.DBMaxOpenConns, "DB_MAX_OPEN_CONNS")
	setInt(&c.DBMaxIdleConns, "DB_MAX_IDLE_CONNS")
	setDuration(&c.DBConnMaxLifetime, "DB_CONN_MAX_LIFETIME")

	if v, ok := os.LookupEnv("CLIENT_ID"); ok && v != "" {
		c.ClientID = v
	}
	setString(&c.DeploymentCallbackSecret, "HARMONY_DEPLOYMENT_CALLBACK_SECRET")
	setString(&c.LogLevel, "HARMONY_LOG_LEVEL")
	setDuration(&c.PollInterval, "HARMONY_POLL_INTERVAL")
	setInt(&c.CompletionRetry, "HARMONY_COMPLETION_RETRY")

	return c
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

// ServiceEnvName converts a service name ("my-subsetter") to the
// environment variable prefix spec.md §6 describes: dashes become
// underscores and the result is uppercased ("MY_SUBSETTER").
func ServiceEnvName(serviceName string) string {
	return strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_"))
}

// ServiceNameFromEnvPrefix reverses ServiceEnvName: environment variable
// prefixes are lowercased and underscores become dashes, per spec.md §6's
// "<SERVICE>_IMAGE maps to <service-name> (underscores→dashes, lowercased)".
func ServiceNameFromEnvPrefix(prefix string) string {
	return strings.ToLower(strings.ReplaceAll(prefix, "_", "-"))
}
