// store_test.go provides the shared test database helper for the store
// tests. Each test gets its own migrated SQLite file, so tests never see
// each other's rows.
package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"zamzam/internal/config"
	"zamzam/internal/database"
	"zamzam/internal/models"
)

// testDB opens a fresh SQLite database in a temporary directory and runs
// migrations. A cleanup function closes the connection.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(database.SQLite, config.SQLiteDSN(filepath.Join(t.TempDir(), "store.db")))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db, database.SQLite); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func ptr[T any](v T) *T { return &v }

// mustCategory creates a category named name or fails the test.
func mustCategory(t *testing.T, db *sql.DB, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	if err := NewCategoryStore(db).Create(context.Background(), c); err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

// mustContent inserts one content row under category and returns it.
func mustContent(t *testing.T, db *sql.DB, c models.Content) models.Content {
	t.Helper()
	if c.ContentType == "" {
		c.ContentType = models.ContentTypeImage
	}
	if c.FileURL == "" {
		c.FileURL = "/uploads/test.png"
	}
	if c.UploadedBy == "" {
		c.UploadedBy = "admin"
	}
	out, err := NewContentStore(db).Create(context.Background(), []*models.Content{&c})
	if err != nil {
		t.Fatalf("create content %q: %v", c.Title, err)
	}
	return out[0]
}
