// Package main is the entry point for the Grok error dashboard.
// It serves the JSON API by default and also offers a terminal UI and
// the scripted verification fixtures as subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/grok-error-dashboard/internal/config"
	"github.com/j-veylop/grok-error-dashboard/internal/db"
	"github.com/j-veylop/grok-error-dashboard/internal/fixture/handoff"
	"github.com/j-veylop/grok-error-dashboard/internal/fixture/rollback"
	"github.com/j-veylop/grok-error-dashboard/internal/logger"
	"github.com/j-veylop/grok-error-dashboard/internal/server"
	"github.com/j-veylop/grok-error-dashboard/internal/services/telemetry"
	"github.com/j-veylop/grok-error-dashboard/internal/store"
	"github.com/j-veylop/grok-error-dashboard/internal/ui"
	"github.com/j-veylop/grok-error-dashboard/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Println(version.Info())
			os.Exit(0)
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "tui":
			if err := runTUI(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "fixture":
			os.Exit(runFixture(os.Args[2:]))
		case "serve":
			// Fall through to the default mode.
		default:
			fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", os.Args[1])
			printUsage()
			os.Exit(2)
		}
	}

	if err := runServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runServe starts the dashboard API and blocks until interrupted.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client := store.NewClient(cfg.QueryServiceURL(), cfg.CouchbaseUser, cfg.CouchbasePass, cfg.QueryTimeout)
	svc := telemetry.New(client, cfg.Bucket, cfg.SessionCacheTTL)

	history, err := db.New(cfg.SnapshotDBPath)
	if err != nil {
		logger.Warn("snapshot history unavailable", "path", cfg.SnapshotDBPath, "error", err)
		history = nil
	} else {
		defer func() {
			if closeErr := history.Close(); closeErr != nil {
				logger.Error("failed to close snapshot history", "error", closeErr)
			}
		}()
	}

	// Pick up credential rotations without a restart.
	watcher, err := config.Watch(func(next *config.Config) {
		client.SetCredentials(next.QueryServiceURL(), next.CouchbaseUser, next.CouchbasePass)
	})
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
	} else if watcher != nil {
		defer func() {
			if closeErr := watcher.Close(); closeErr != nil {
				logger.Error("failed to close config watcher", "error", closeErr)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.ListenAddr, svc, history).Run(ctx)
}

// runTUI starts the terminal dashboard.
func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client := store.NewClient(cfg.QueryServiceURL(), cfg.CouchbaseUser, cfg.CouchbasePass, cfg.QueryTimeout)
	svc := telemetry.New(client, cfg.Bucket, cfg.SessionCacheTTL)

	history, err := db.New(cfg.SnapshotDBPath)
	if err != nil {
		logger.Warn("snapshot history unavailable", "path", cfg.SnapshotDBPath, "error", err)
		history = nil
	} else {
		defer func() {
			if closeErr := history.Close(); closeErr != nil {
				logger.Error("failed to close snapshot history", "error", closeErr)
			}
		}()
	}

	watcher, err := config.Watch(func(next *config.Config) {
		client.SetCredentials(next.QueryServiceURL(), next.CouchbaseUser, next.CouchbasePass)
	})
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
	} else if watcher != nil {
		defer func() {
			if closeErr := watcher.Close(); closeErr != nil {
				logger.Error("failed to close config watcher", "error", closeErr)
			}
		}()
	}

	p := tea.NewProgram(ui.NewModel(svc, history, cfg.TUIRefreshInterval), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// runFixture runs one of the scripted verification scenarios and
// returns the process exit code.
func runFixture(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: ged fixture <rollback|handoff>")
		return 2
	}

	switch args[0] {
	case "rollback":
		report := rollback.Run()
		fmt.Printf("Original fingerprint: %s\n", report.OriginalHash)
		fmt.Printf("Changed fingerprint:  %s\n", report.ChangedHash)
		fmt.Printf("Final fingerprint:    %s\n", report.FinalHash)
		fmt.Printf("Applied %d changes, rolled back %d\n", report.Changes, report.Rollbacks)
		if !report.Restored {
			fmt.Println("FAIL: document was not restored to its original state")
			return 1
		}
		fmt.Println("PASS: document restored to its original state")
		return 0

	case "handoff":
		report := handoff.Run()
		for _, check := range report.Checks {
			status := "PASS"
			if !check.OK {
				status = "FAIL"
			}
			fmt.Printf("%s: %s\n", status, check.Name)
		}
		if !report.Passed() {
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown fixture %q\n", args[0])
		return 2
	}
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Grok Error Dashboard - error telemetry for Grok AI Coder sessions

Usage:
  ged [command]

Commands:
  serve             Run the dashboard JSON API (default)
  tui               Run the terminal dashboard
  fixture rollback  Run the scripted rollback verification
  fixture handoff   Run the scripted handoff verification

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Environment Variables:
  CB_HOST, CB_PORT        Query service host and port (default localhost:8093)
  CB_USER, CB_PASS        Query service credentials
  CB_BUCKET               Bucket holding session documents (default grokCoder)
  LISTEN_ADDR             API listen address (default :5050)
  QUERY_TIMEOUT           Upstream query timeout (default 30s)
  SESSION_CACHE_TTL       Session cache expiry, 0 keeps entries forever
  SNAPSHOT_DB_PATH        Local snapshot history database path
  TUI_REFRESH_INTERVAL    Terminal dashboard refresh interval (default 30s)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/grok-coder/dashboard/.env
  - ~/.config/grok-coder/.env

For more information, visit: https://github.com/j-veylop/grok-error-dashboard`)
}
