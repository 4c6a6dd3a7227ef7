// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"zamzam/internal/apperr"
	"zamzam/internal/models"
)

const (
	msgBrandNotFound   = "العلامة التجارية غير موجودة"
	msgBrandExists     = "العلامة التجارية موجودة بالفعل"
	msgBrandNameExists = "اسم العلامة التجارية موجود بالفعل"
	msgBrandHasContent = "لا يمكن حذف العلامة التجارية لأنها تحتوي على محتوى"
)

// BrandStore manages brands in the database.
type BrandStore struct {
	db *sql.DB
}

// NewBrandStore returns a new BrandStore.
func NewBrandStore(db *sql.DB) *BrandStore {
	return &BrandStore{db: db}
}

const brandColumns = `b.id, b.name, b.logo_url, b.website_url, b.description, b.created_at,
	(SELECT COUNT(*) FROM content ct WHERE ct.brand_id = b.id) AS content_count`

func scanBrand(scanner interface{ Scan(...any) error }) (*models.Brand, error) {
	var b models.Brand
	err := scanner.Scan(
		&b.ID, &b.Name, &b.LogoURL, &b.WebsiteURL, &b.Description, &b.CreatedAt,
		&b.ContentCount,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all brands ordered by name.
func (s *BrandStore) List(ctx context.Context) ([]models.Brand, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+brandColumns+` FROM brands b ORDER BY b.name`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	items := []models.Brand{}
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// FindByID returns a brand or a not-found error.
func (s *BrandStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	return findBrand(ctx, s.db, id)
}

func findBrand(ctx context.Context, q querier, id uuid.UUID) (*models.Brand, error) {
	b, err := scanBrand(q.QueryRowContext(ctx, `SELECT `+brandColumns+` FROM brands b WHERE b.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(msgBrandNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find brand: %w", err)
	}
	return b, nil
}

// Create inserts a new brand.
func (s *BrandStore) Create(ctx context.Context, b *models.Brand) error {
	b.ID = uuid.New()
	b.CreatedAt = now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO brands (id, name, logo_url, website_url, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.Name, b.LogoURL, b.WebsiteURL, b.Description, b.CreatedAt,
	)
	if isUniqueViolation(err) {
		return apperr.DuplicateKey(msgBrandExists, err)
	}
	if err != nil {
		return fmt.Errorf("create brand: %w", err)
	}
	return nil
}

// Update merges patch into the brand and returns the result.
func (s *BrandStore) Update(ctx context.Context, id uuid.UUID, patch models.BrandPatch) (*models.Brand, error) {
	var out *models.Brand
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		b, err := findBrand(ctx, tx, id)
		if err != nil {
			return err
		}
		if patch.Name.Set && patch.Name.Value != nil {
			b.Name = *patch.Name.Value
		}
		patch.LogoURL.Apply(&b.LogoURL)
		patch.WebsiteURL.Apply(&b.WebsiteURL)
		patch.Description.Apply(&b.Description)

		_, err = tx.ExecContext(ctx, `
			UPDATE brands SET name = $1, logo_url = $2, website_url = $3, description = $4
			WHERE id = $5`,
			b.Name, b.LogoURL, b.WebsiteURL, b.Description, id,
		)
		if isUniqueViolation(err) {
			return apperr.DuplicateKey(msgBrandNameExists, err)
		}
		if err != nil {
			return fmt.Errorf("update brand: %w", err)
		}
		out = b
		return nil
	})
	return out, err
}

// Delete removes a brand that no content references.
func (s *BrandStore) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		n, err := countWhere(ctx, tx, "brands", "id", id)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound(msgBrandNotFound)
		}
		if n, err = countWhere(ctx, tx, "content", "brand_id", id); err != nil {
			return err
		}
		if n > 0 {
			return apperr.DependencyExists(msgBrandHasContent)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete brand: %w", err)
		}
		return nil
	})
}
