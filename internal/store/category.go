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
	msgCategoryNotFound   = "التصنيف غير موجود"
	msgCategoryExists     = "التصنيف موجود بالفعل"
	msgCategoryNameExists = "اسم التصنيف موجود بالفعل"
	msgCategoryHasContent = "لا يمكن حذف التصنيف لأنه يحتوي على محتوى"
	msgCategoryHasTypes   = "لا يمكن حذف التصنيف لأنه يحتوي على أنواع"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `c.id, c.name, c.description, c.icon_url, c.created_at,
	(SELECT COUNT(*) FROM content ct WHERE ct.category_id = c.id) AS content_count`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.Description, &c.IconURL, &c.CreatedAt, &c.ContentCount)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name, with content counts.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories c ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID returns a category or a not-found error.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return findCategory(ctx, s.db, id)
}

func findCategory(ctx context.Context, q querier, id uuid.UUID) (*models.Category, error) {
	c, err := scanCategory(q.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories c WHERE c.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(msgCategoryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}

// Exists reports whether a category with id exists.
func (s *CategoryStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := countWhere(ctx, s.db, "categories", "id", id)
	return n > 0, err
}

// Create inserts a new category, assigning its ID and creation time. The
// unique index on name decides duplicates.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) error {
	c.ID = uuid.New()
	c.CreatedAt = now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, icon_url, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Description, c.IconURL, c.CreatedAt,
	)
	if isUniqueViolation(err) {
		return apperr.DuplicateKey(msgCategoryExists, err)
	}
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// Update merges patch into the category and returns the result.
func (s *CategoryStore) Update(ctx context.Context, id uuid.UUID, patch models.CategoryPatch) (*models.Category, error) {
	var out *models.Category
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		c, err := findCategory(ctx, tx, id)
		if err != nil {
			return err
		}
		if patch.Name.Set && patch.Name.Value != nil {
			c.Name = *patch.Name.Value
		}
		patch.Description.Apply(&c.Description)
		patch.IconURL.Apply(&c.IconURL)

		_, err = tx.ExecContext(ctx, `
			UPDATE categories SET name = $1, description = $2, icon_url = $3
			WHERE id = $4`,
			c.Name, c.Description, c.IconURL, id,
		)
		if isUniqueViolation(err) {
			return apperr.DuplicateKey(msgCategoryNameExists, err)
		}
		if err != nil {
			return fmt.Errorf("update category: %w", err)
		}
		out = c
		return nil
	})
	return out, err
}

// Delete removes a category that no content or type references. The
// reference counts and the delete run in one transaction.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		n, err := countWhere(ctx, tx, "categories", "id", id)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound(msgCategoryNotFound)
		}

		if n, err = countWhere(ctx, tx, "content", "category_id", id); err != nil {
			return err
		}
		if n > 0 {
			return apperr.DependencyExists(msgCategoryHasContent)
		}

		if n, err = countWhere(ctx, tx, "types", "category_id", id); err != nil {
			return err
		}
		if n > 0 {
			return apperr.DependencyExists(msgCategoryHasTypes)
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if isForeignKeyViolation(err) {
			return apperr.DependencyExists(msgCategoryHasTypes)
		}
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}
