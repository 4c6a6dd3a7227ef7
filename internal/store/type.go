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
	msgTypeNotFound           = "النوع غير موجود"
	msgTypeExists             = "النوع موجود بالفعل في هذا التصنيف"
	msgTypeNameExists         = "اسم النوع موجود بالفعل في هذا التصنيف"
	msgTypeHasContent         = "لا يمكن حذف النوع لأنه يحتوي على محتوى"
	msgTypeCategoryMissing    = "التصنيف غير موجود"
	msgTypeNewCategoryMissing = "التصنيف الجديد غير موجود"
	msgTypeNameExistsInNew    = "اسم النوع موجود بالفعل في التصنيف الجديد"
)

// TypeStore manages content types. A type name is unique within its
// category only.
type TypeStore struct {
	db *sql.DB
}

// NewTypeStore returns a new TypeStore.
func NewTypeStore(db *sql.DB) *TypeStore {
	return &TypeStore{db: db}
}

const typeColumns = `t.id, t.name, t.category_id, t.description, t.created_at, c.name,
	(SELECT COUNT(*) FROM content ct WHERE ct.type_id = t.id) AS content_count`

const typeFrom = ` FROM types t LEFT JOIN categories c ON c.id = t.category_id`

func scanType(scanner interface{ Scan(...any) error }) (*models.Type, error) {
	var t models.Type
	err := scanner.Scan(
		&t.ID, &t.Name, &t.CategoryID, &t.Description, &t.CreatedAt,
		&t.CategoryName, &t.ContentCount,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns types ordered by name, optionally restricted to one category.
func (s *TypeStore) List(ctx context.Context, categoryID *uuid.UUID) ([]models.Type, error) {
	query := `SELECT ` + typeColumns + typeFrom
	var args []any
	if categoryID != nil {
		query += ` WHERE t.category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY t.name, t.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	defer rows.Close()

	items := []models.Type{}
	for rows.Next() {
		t, err := scanType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan type: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID returns a type or a not-found error.
func (s *TypeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Type, error) {
	return findType(ctx, s.db, id)
}

func findType(ctx context.Context, q querier, id uuid.UUID) (*models.Type, error) {
	t, err := scanType(q.QueryRowContext(ctx, `SELECT `+typeColumns+typeFrom+` WHERE t.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(msgTypeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find type: %w", err)
	}
	return t, nil
}

// Create inserts a type under an existing category. The category check and
// the insert share a transaction; the (name, category_id) index decides
// duplicates.
func (s *TypeStore) Create(ctx context.Context, t *models.Type) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		category, err := findCategory(ctx, tx, t.CategoryID)
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.Validation(msgTypeCategoryMissing)
		}
		if err != nil {
			return err
		}

		t.ID = uuid.New()
		t.CreatedAt = now()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO types (id, name, category_id, description, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			t.ID, t.Name, t.CategoryID, t.Description, t.CreatedAt,
		)
		if isUniqueViolation(err) {
			return apperr.DuplicateKey(msgTypeExists, err)
		}
		if isForeignKeyViolation(err) {
			return apperr.Validation(msgTypeCategoryMissing)
		}
		if err != nil {
			return fmt.Errorf("create type: %w", err)
		}
		t.CategoryName = &category.Name
		return nil
	})
}

// Update merges patch into the type. Moving a type to another category
// requires that category to exist.
func (s *TypeStore) Update(ctx context.Context, id uuid.UUID, patch models.TypePatch) (*models.Type, error) {
	var out *models.Type
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		t, err := findType(ctx, tx, id)
		if err != nil {
			return err
		}
		if patch.Name.Set && patch.Name.Value != nil {
			t.Name = *patch.Name.Value
		}
		moved := false
		if patch.CategoryID.Set && patch.CategoryID.Value != nil && *patch.CategoryID.Value != t.CategoryID {
			category, err := findCategory(ctx, tx, *patch.CategoryID.Value)
			if apperr.Is(err, apperr.KindNotFound) {
				return apperr.Validation(msgTypeNewCategoryMissing)
			}
			if err != nil {
				return err
			}
			t.CategoryID = category.ID
			t.CategoryName = &category.Name
			moved = true
		}
		patch.Description.Apply(&t.Description)

		_, err = tx.ExecContext(ctx, `
			UPDATE types SET name = $1, category_id = $2, description = $3
			WHERE id = $4`,
			t.Name, t.CategoryID, t.Description, id,
		)
		if isUniqueViolation(err) {
			if moved {
				return apperr.DuplicateKey(msgTypeNameExistsInNew, err)
			}
			return apperr.DuplicateKey(msgTypeNameExists, err)
		}
		if err != nil {
			return fmt.Errorf("update type: %w", err)
		}
		out = t
		return nil
	})
	return out, err
}

// Delete removes a type that no content references.
func (s *TypeStore) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		n, err := countWhere(ctx, tx, "types", "id", id)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound(msgTypeNotFound)
		}
		if n, err = countWhere(ctx, tx, "content", "type_id", id); err != nil {
			return err
		}
		if n > 0 {
			return apperr.DependencyExists(msgTypeHasContent)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM types WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete type: %w", err)
		}
		return nil
	})
}
