// Package database handles connection management and migration execution
// using goose. PostgreSQL (through pgx) and SQLite (through the pure-Go
// modernc driver) share one schema, kept as one embedded migration directory
// per dialect.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var embedMigrations embed.FS

// Supported drivers. The values match config.Database.Driver.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Connect opens a connection pool for driver using the provided DSN and
// verifies it with a ping before returning.
func Connect(driver, dsn string) (*sql.DB, error) {
	var sqlDriver string
	switch driver {
	case Postgres:
		sqlDriver = "pgx"
	case SQLite:
		sqlDriver = "sqlite"
	default:
		return nil, fmt.Errorf("database open: unsupported driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	if driver == SQLite {
		// A single writer connection serializes statements, so concurrent
		// counter updates queue on the busy timeout instead of failing.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	slog.Info("database connected", "driver", driver)
	return db, nil
}

// Migrate runs all pending goose migrations for driver from the embedded SQL
// files.
func Migrate(db *sql.DB, driver string) error {
	return RunMigrations(context.Background(), db, driver, "up")
}

// RunMigrations executes a goose command ("up", "down" or "status") against
// the embedded migrations for driver.
func RunMigrations(ctx context.Context, db *sql.DB, driver, command string) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	dir := "migrations/" + driver
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, dir)
	case "down":
		err = goose.DownContext(ctx, db, dir)
	case "status":
		err = goose.StatusContext(ctx, db, dir)
	default:
		return fmt.Errorf("goose: unknown command %q", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	slog.Info("database migrations applied", "command", command, "driver", driver)
	return nil
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case Postgres:
		return "postgres", nil
	case SQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("goose: unsupported driver %q", driver)
	}
}
