// Package main is the entry point for the zamzam gallery server. The serve
// command loads configuration, connects to services, sets up routing and
// starts the HTTP server with graceful shutdown support; the other
// commands run single maintenance tasks.
package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zamzam/internal/config"
	"zamzam/internal/database"
	"zamzam/internal/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "main"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// app is the state shared by every subcommand.
type app struct {
	configPath string
	cfg        *config.Config
	logCloser  io.Closer
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "zamzam",
		Short:         "Zamzam media gallery server",
		Long:          "Zamzam serves a JSON API for uploading, classifying and browsing images and videos.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("ZAMZAM_CONFIG"), "config file (default is ./config.yaml)")
	cmd.Version = fmt.Sprintf("%s.%s", version, commit)

	cmd.AddCommand(
		newServeCommand(a),
		newMigrateCommand(a),
		newSeedCommand(a),
		newVersionCommand(),
	)
	return cmd
}

// init loads configuration and installs the process-wide logger.
func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	a.cfg = cfg

	_, closer := logging.Setup(cfg.Log)
	a.logCloser = closer

	slog.Info("configuration loaded",
		"env", cfg.Server.Env,
		"driver", cfg.Database.Driver,
		"storage", cfg.Storage.Backend,
	)
	return nil
}

// connect opens the configured database, creating the SQLite directory
// when needed.
func (a *app) connect() (*sql.DB, error) {
	if a.cfg.Database.Driver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(a.cfg.Database.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}
	return database.Connect(a.cfg.Database.Driver, a.cfg.DSN())
}
