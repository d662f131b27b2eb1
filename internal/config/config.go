// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// Upstream query service (Couchbase N1QL endpoint).
	CouchbaseHost string
	CouchbasePort string
	CouchbaseUser string
	CouchbasePass string
	Bucket        string

	// Dashboard HTTP server.
	ListenAddr string

	// Behavior knobs.
	QueryTimeout time.Duration
	// SessionCacheTTL controls session document cache expiry. Zero
	// keeps entries forever (the historical behavior).
	SessionCacheTTL    time.Duration
	SnapshotDBPath     string
	TUIRefreshInterval time.Duration
}

// Default values
const (
	defaultListenAddr         = ":5050"
	defaultQueryTimeout       = 30 * time.Second
	defaultTUIRefreshInterval = 30 * time.Second
)

// bucketNamePattern is the conservative identifier shape allowed for
// the bucket name, which is interpolated into query statements as a
// keyspace and must never carry quoting or escapes.
var bucketNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.%-]+$`)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	for _, path := range EnvPaths() {
		if fileExists(path) {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		CouchbaseHost:      getEnvString("CB_HOST", "localhost"),
		CouchbasePort:      getEnvString("CB_PORT", "8093"),
		CouchbaseUser:      getEnvString("CB_USER", "Administrator"),
		CouchbasePass:      getEnvString("CB_PASS", "password"),
		Bucket:             getEnvString("CB_BUCKET", "grokCoder"),
		ListenAddr:         getEnvString("LISTEN_ADDR", defaultListenAddr),
		QueryTimeout:       getEnvDuration("QUERY_TIMEOUT", defaultQueryTimeout),
		SessionCacheTTL:    getEnvDuration("SESSION_CACHE_TTL", 0),
		SnapshotDBPath:     getEnvString("SNAPSHOT_DB_PATH", getDefaultSnapshotDBPath()),
		TUIRefreshInterval: getEnvDuration("TUI_REFRESH_INTERVAL", defaultTUIRefreshInterval),
	}

	if !bucketNamePattern.MatchString(cfg.Bucket) {
		return nil, fmt.Errorf("invalid bucket name %q", cfg.Bucket)
	}

	if err := ensureDir(filepath.Dir(cfg.SnapshotDBPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// QueryServiceURL returns the base URL of the upstream N1QL query
// endpoint.
func (c *Config) QueryServiceURL() string {
	return fmt.Sprintf("http://%s:%s/query/service", c.CouchbaseHost, c.CouchbasePort)
}

// EnvPaths returns the list of paths checked for .env files, in
// priority order.
func EnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "grok-coder", "dashboard", ".env"),
			filepath.Join(home, ".config", "grok-coder", ".env"),
		)
	}

	return paths
}

// getDefaultSnapshotDBPath returns the default path for the local
// snapshot history database.
func getDefaultSnapshotDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "snapshots.db"
	}
	return filepath.Join(home, ".config", "grok-coder", "dashboard", "snapshots.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
