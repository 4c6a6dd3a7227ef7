package database

import (
	"context"
	"database/sql"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

var testAdmin = Admin{Username: "abdallah", Email: "abdallah@zamzam-gallery.com", Password: "secret"}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("%s: %v", query, err)
	}
	return n
}

func TestSeed_PopulatesDefaults(t *testing.T) {
	db := openSQLite(t)

	if err := Seed(context.Background(), db, testAdmin); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if got := countRows(t, db, `SELECT COUNT(*) FROM categories`); got != len(defaultCategories) {
		t.Errorf("categories = %d, want %d", got, len(defaultCategories))
	}
	if got := countRows(t, db, `SELECT COUNT(*) FROM brands`); got != len(defaultBrands) {
		t.Errorf("brands = %d, want %d", got, len(defaultBrands))
	}
	got := countRows(t, db, `
		SELECT COUNT(*) FROM types t JOIN categories c ON c.id = t.category_id
		WHERE c.name = $1`, natureCategory)
	if got != len(defaultNatureTypes) {
		t.Errorf("nature types = %d, want %d", got, len(defaultNatureTypes))
	}
	if got := countRows(t, db, `SELECT COUNT(*) FROM settings WHERE key = 'theme_mode' AND value = 'light'`); got != 1 {
		t.Errorf("theme_mode default missing")
	}

	var hash, role string
	err := db.QueryRow(`SELECT password_hash, role FROM users WHERE username = $1`, testAdmin.Username).Scan(&hash, &role)
	if err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if role != "admin" {
		t.Errorf("admin role = %q", role)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(testAdmin.Password)) != nil {
		t.Error("admin password hash does not verify")
	}
}

// TestSeedIdempotent verifies that reseeding never duplicates or overwrites rows.
func TestSeedIdempotent(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	if err := Seed(ctx, db, testAdmin); err != nil {
		t.Fatalf("first Seed: %v", err)
	}

	// An operator changes a seeded value; reseeding must keep it.
	if _, err := db.Exec(`UPDATE settings SET value = 'dark' WHERE key = 'theme_mode'`); err != nil {
		t.Fatal(err)
	}

	if err := Seed(ctx, db, testAdmin); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	if got := countRows(t, db, `SELECT COUNT(*) FROM categories`); got != len(defaultCategories) {
		t.Errorf("categories after reseed = %d, want %d", got, len(defaultCategories))
	}
	if got := countRows(t, db, `SELECT COUNT(*) FROM types`); got != len(defaultNatureTypes) {
		t.Errorf("types after reseed = %d, want %d", got, len(defaultNatureTypes))
	}
	if got := countRows(t, db, `SELECT COUNT(*) FROM users`); got != 1 {
		t.Errorf("users after reseed = %d, want 1", got)
	}

	var mode string
	if err := db.QueryRow(`SELECT value FROM settings WHERE key = 'theme_mode'`).Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "dark" {
		t.Errorf("reseed overwrote theme_mode: got %q, want dark", mode)
	}
}

func TestSeed_RenamedNatureCategory(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	if err := Seed(ctx, db, Admin{}); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if _, err := db.Exec(`UPDATE categories SET name = 'Nature' WHERE name = $1`, natureCategory); err != nil {
		t.Fatal(err)
	}

	// The default category is recreated, and its types are attached to it
	// without disturbing the renamed one.
	if err := Seed(ctx, db, Admin{}); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if got := countRows(t, db, `SELECT COUNT(*) FROM types`); got != 2*len(defaultNatureTypes) {
		t.Errorf("types = %d, want %d", got, 2*len(defaultNatureTypes))
	}
	if got := countRows(t, db, `SELECT COUNT(*) FROM users`); got != 0 {
		t.Errorf("empty admin username should skip user creation, got %d users", got)
	}
}

func TestSeed_Postgres(t *testing.T) {
	db, err := Connect(Postgres, testPostgresDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db, Postgres); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Other packages may share this database, so only idempotency is checked.
	if err := Seed(context.Background(), db, testAdmin); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(context.Background(), db, testAdmin); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if got := countRows(t, db, `SELECT COUNT(*) FROM users WHERE username = $1`, testAdmin.Username); got != 1 {
		t.Errorf("admin rows = %d, want 1", got)
	}
}
