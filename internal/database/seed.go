package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"zamzam/internal/models"
	"zamzam/internal/settings"
)

// Admin is the account created on first start.
type Admin struct {
	Username string
	Email    string
	Password string
}

type seedRow struct {
	name        string
	description string
	website     string
}

var defaultCategories = []seedRow{
	{name: "طبيعة", description: "صور ومقاطع فيديو للطبيعة والمناظر الطبيعية"},
	{name: "فن", description: "أعمال فنية ولوحات وتصاميم إبداعية"},
	{name: "تقنية", description: "صور ومقاطع فيديو متعلقة بالتكنولوجيا"},
	{name: "رياضة", description: "صور ومقاطع فيديو رياضية"},
	{name: "طعام", description: "صور الطعام والمأكولات"},
	{name: "سفر", description: "صور ومقاطع فيديو من الرحلات والسفر"},
	{name: "أشخاص", description: "صور الأشخاص والبورتريه"},
	{name: "معمارية", description: "صور المباني والهندسة المعمارية"},
}

// natureCategory owns the default types.
const natureCategory = "طبيعة"

var defaultNatureTypes = []seedRow{
	{name: "جبال", description: "صور ومقاطع فيديو للجبال"},
	{name: "بحر", description: "صور ومقاطع فيديو للبحر والمحيطات"},
	{name: "صحراء", description: "صور ومقاطع فيديو للصحراء"},
	{name: "غابات", description: "صور ومقاطع فيديو للغابات"},
	{name: "حيوانات", description: "صور ومقاطع فيديو للحيوانات"},
}

var defaultBrands = []seedRow{
	{name: "Canon", description: "كاميرات ومعدات تصوير", website: "https://www.canon.com"},
	{name: "Nikon", description: "كاميرات ومعدات تصوير", website: "https://www.nikon.com"},
	{name: "Sony", description: "كاميرات ومعدات إلكترونية", website: "https://www.sony.com"},
	{name: "Apple", description: "أجهزة iPhone وiPad", website: "https://www.apple.com"},
	{name: "Samsung", description: "هواتف ذكية وأجهزة إلكترونية", website: "https://www.samsung.com"},
}

// Seed reconciles the default data with the database. Every row is inserted
// only if its unique key is absent, so existing rows are never overwritten
// and running Seed again is a no-op. All inserts share one transaction.
func Seed(ctx context.Context, db *sql.DB, admin Admin) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Truncate(time.Microsecond)
	var inserted int64

	n, err := seedAdmin(ctx, tx, admin, now)
	if err != nil {
		return err
	}
	inserted += n

	for _, c := range defaultCategories {
		n, err := execInserted(ctx, tx, `
			INSERT INTO categories (id, name, description, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING
		`, uuid.New(), c.name, c.description, now)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.name, err)
		}
		inserted += n
	}

	var natureID uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE name = $1`, natureCategory).Scan(&natureID)
	switch {
	case err == sql.ErrNoRows:
		// Renamed by an operator; nothing to attach the default types to.
	case err != nil:
		return fmt.Errorf("seed find category %s: %w", natureCategory, err)
	default:
		for _, ty := range defaultNatureTypes {
			n, err := execInserted(ctx, tx, `
				INSERT INTO types (id, name, category_id, description, created_at)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (name, category_id) DO NOTHING
			`, uuid.New(), ty.name, natureID, ty.description, now)
			if err != nil {
				return fmt.Errorf("seed type %s: %w", ty.name, err)
			}
			inserted += n
		}
	}

	for _, b := range defaultBrands {
		n, err := execInserted(ctx, tx, `
			INSERT INTO brands (id, name, website_url, description, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (name) DO NOTHING
		`, uuid.New(), b.name, b.website, b.description, now)
		if err != nil {
			return fmt.Errorf("seed brand %s: %w", b.name, err)
		}
		inserted += n
	}

	for _, e := range settings.Defaults() {
		value, err := models.EncodeSettingValue(e.Default)
		if err != nil {
			return fmt.Errorf("seed setting %s: %w", e.Key, err)
		}
		n, err := execInserted(ctx, tx, `
			INSERT INTO settings (id, key, value, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			ON CONFLICT (key) DO NOTHING
		`, uuid.New(), e.Key, value, e.Description, now)
		if err != nil {
			return fmt.Errorf("seed setting %s: %w", e.Key, err)
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	if inserted == 0 {
		slog.Info("database already seeded, skipping")
	} else {
		slog.Info("database seeded with default data", "rows", inserted)
	}
	return nil
}

// seedAdmin creates the administrator unless the username is taken. The
// existence check only avoids hashing on every start; the insert itself is
// still conflict-safe.
func seedAdmin(ctx context.Context, tx *sql.Tx, admin Admin, now time.Time) (int64, error) {
	if admin.Username == "" {
		return 0, nil
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = $1`, admin.Username).Scan(&count); err != nil {
		return 0, fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("seed bcrypt: %w", err)
	}

	n, err := execInserted(ctx, tx, `
		INSERT INTO users (id, username, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING
	`, uuid.New(), admin.Username, admin.Email, string(hash), models.RoleAdmin, now)
	if err != nil {
		return 0, fmt.Errorf("seed insert admin: %w", err)
	}
	if n > 0 {
		slog.Info("default admin user created", "username", admin.Username, "email", admin.Email)
	}
	return n, nil
}

func execInserted(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
