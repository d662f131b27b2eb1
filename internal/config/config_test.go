package config

import (
	"path/filepath"
	"testing"
	"time"
)

// setDefaults pins the variables Load reads so ambient environment and
// .env files cannot leak into assertions.
func setDefaults(t *testing.T) {
	t.Helper()
	t.Setenv("CB_HOST", "")
	t.Setenv("CB_PORT", "")
	t.Setenv("CB_USER", "")
	t.Setenv("CB_PASS", "")
	t.Setenv("CB_BUCKET", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("QUERY_TIMEOUT", "")
	t.Setenv("SESSION_CACHE_TTL", "")
	t.Setenv("TUI_REFRESH_INTERVAL", "")
	t.Setenv("SNAPSHOT_DB_PATH", filepath.Join(t.TempDir(), "snapshots.db"))
}

func TestLoadDefaults(t *testing.T) {
	setDefaults(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CouchbaseHost != "localhost" || cfg.CouchbasePort != "8093" {
		t.Errorf("host = %s:%s, want localhost:8093", cfg.CouchbaseHost, cfg.CouchbasePort)
	}
	if cfg.Bucket != "grokCoder" {
		t.Errorf("Bucket = %q, want grokCoder", cfg.Bucket)
	}
	if cfg.ListenAddr != ":5050" {
		t.Errorf("ListenAddr = %q, want :5050", cfg.ListenAddr)
	}
	if cfg.QueryTimeout != 30*time.Second {
		t.Errorf("QueryTimeout = %v, want 30s", cfg.QueryTimeout)
	}
	if cfg.SessionCacheTTL != 0 {
		t.Errorf("SessionCacheTTL = %v, want 0", cfg.SessionCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	setDefaults(t)
	t.Setenv("CB_HOST", "cb.internal")
	t.Setenv("CB_PORT", "18093")
	t.Setenv("CB_BUCKET", "prodCoder")
	t.Setenv("QUERY_TIMEOUT", "5s")
	t.Setenv("SESSION_CACHE_TTL", "10m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.QueryServiceURL(); got != "http://cb.internal:18093/query/service" {
		t.Errorf("QueryServiceURL() = %q", got)
	}
	if cfg.Bucket != "prodCoder" {
		t.Errorf("Bucket = %q, want prodCoder", cfg.Bucket)
	}
	if cfg.QueryTimeout != 5*time.Second {
		t.Errorf("QueryTimeout = %v, want 5s", cfg.QueryTimeout)
	}
	if cfg.SessionCacheTTL != 10*time.Minute {
		t.Errorf("SessionCacheTTL = %v, want 10m", cfg.SessionCacheTTL)
	}
}

func TestLoadDurationAsSeconds(t *testing.T) {
	setDefaults(t)
	t.Setenv("QUERY_TIMEOUT", "45")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.QueryTimeout != 45*time.Second {
		t.Errorf("QueryTimeout = %v, want 45s", cfg.QueryTimeout)
	}
}

func TestLoadRejectsInvalidBucket(t *testing.T) {
	tests := []string{
		"bad`bucket",
		`grok" OR 1=1`,
		"bucket name",
		"",
	}

	for _, bucket := range tests {
		t.Run(bucket, func(t *testing.T) {
			setDefaults(t)
			t.Setenv("CB_BUCKET", bucket)
			if bucket == "" {
				// Empty falls back to the default, which is valid.
				if _, err := Load(); err != nil {
					t.Errorf("Load() error = %v, want nil", err)
				}
				return
			}
			if _, err := Load(); err == nil {
				t.Errorf("Load() accepted bucket %q", bucket)
			}
		})
	}
}

func TestEnvPathsOrder(t *testing.T) {
	paths := EnvPaths()
	if len(paths) == 0 {
		t.Fatal("EnvPaths() returned nothing")
	}
	// The working directory .env has the highest priority.
	if filepath.Base(paths[0]) != ".env" {
		t.Errorf("paths[0] = %q, want a .env path", paths[0])
	}
}
