// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"zamzam/internal/apperr"
	"zamzam/internal/models"
)

const msgContentNotFound = "المحتوى غير موجود"

// ContentStore handles all content-related database operations.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

const contentSelect = `
	SELECT ct.id, ct.title, ct.description, ct.file_url, ct.thumbnail_url,
	       ct.content_type, ct.upload_date, ct.views_count, ct.likes_count,
	       ct.category_id, ct.type_id, ct.brand_id, ct.uploaded_by,
	       ct.tags, ct.is_public, ct.metadata,
	       c.name, t.name, b.name, u.username
	FROM content ct
	LEFT JOIN categories c ON c.id = ct.category_id
	LEFT JOIN types t ON t.id = ct.type_id
	LEFT JOIN brands b ON b.id = ct.brand_id
	LEFT JOIN users u ON u.id = ct.uploaded_by`

func scanContent(scanner interface{ Scan(...any) error }) (*models.Content, error) {
	var (
		c        models.Content
		tags     sql.NullString
		metadata sql.NullString
	)
	err := scanner.Scan(
		&c.ID, &c.Title, &c.Description, &c.FileURL, &c.ThumbnailURL,
		&c.ContentType, &c.UploadDate, &c.ViewsCount, &c.LikesCount,
		&c.CategoryID, &c.TypeID, &c.BrandID, &c.UploadedBy,
		&tags, &c.IsPublic, &metadata,
		&c.CategoryName, &c.TypeName, &c.BrandName, &c.UploaderName,
	)
	if err != nil {
		return nil, err
	}
	c.UploadDate = c.UploadDate.UTC()
	c.Tags = decodeTags(tags)
	c.Metadata = decodeMetadata(metadata)
	return &c, nil
}

// decodeTags returns the stored tag list, or an empty list when the column
// is NULL or not a JSON array of strings.
func decodeTags(s sql.NullString) []string {
	tags := []string{}
	if !s.Valid || s.String == "" {
		return tags
	}
	if err := json.Unmarshal([]byte(s.String), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// decodeMetadata returns the stored mapping, or an empty one when the column
// is NULL or not a JSON object.
func decodeMetadata(s sql.NullString) map[string]any {
	m := map[string]any{}
	if !s.Valid || s.String == "" {
		return m
	}
	if err := json.Unmarshal([]byte(s.String), &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	return string(b), err
}

func encodeMetadata(m map[string]any) (string, error) {
	if m == nil {
		m = map[string]any{}
	}
	b, err := json.Marshal(m)
	return string(b), err
}

// likeEscaper escapes LIKE wildcards so search terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List returns one page of public content matching f, newest first. The
// filter is normalized in place. Pages past the end are empty.
func (s *ContentStore) List(ctx context.Context, f *models.ContentFilter) (*models.ContentPage, error) {
	f.Normalize()

	where := []string{"ct.is_public = $1"}
	args := []any{true}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}
	if f.CategoryID != nil {
		add("ct.category_id = ?", *f.CategoryID)
	}
	if f.TypeID != nil {
		add("ct.type_id = ?", *f.TypeID)
	}
	if f.BrandID != nil {
		add("ct.brand_id = ?", *f.BrandID)
	}
	if f.ContentType != nil {
		add("ct.content_type = ?", string(*f.ContentType))
	}
	if f.Search != "" {
		add(`ct.title LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(f.Search)+"%")
	}
	clause := " WHERE " + strings.Join(where, " AND ")

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM content ct`+clause, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count content: %w", err)
	}

	items := []models.Content{}
	pagination := models.NewPagination(f.Page, f.PerPage, total)
	offset, ok := f.Offset()
	if !ok || offset >= total {
		return &models.ContentPage{Items: items, Pagination: pagination}, nil
	}

	n := len(args)
	query := contentSelect + clause +
		` ORDER BY ct.upload_date DESC, ct.id DESC` +
		` LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	rows, err := s.db.QueryContext(ctx, query, append(args, f.PerPage, offset)...)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.ContentPage{Items: items, Pagination: pagination}, nil
}

// FindByID returns a content row without touching its counters.
func (s *ContentStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	return findContent(ctx, s.db, id)
}

func findContent(ctx context.Context, q querier, id uuid.UUID) (*models.Content, error) {
	c, err := scanContent(q.QueryRowContext(ctx, contentSelect+` WHERE ct.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(msgContentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find content: %w", err)
	}
	return c, nil
}

// View increments the view counter and returns the updated row. Visibility
// is not checked here; only the listing is restricted to public content.
func (s *ContentStore) View(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	var out *models.Content
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := incrementCounter(ctx, tx, "views_count", id); err != nil {
			return err
		}
		c, err := findContent(ctx, tx, id)
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

// IncrementLikes adds one like and returns the new count.
func (s *ContentStore) IncrementLikes(ctx context.Context, id uuid.UUID) (int64, error) {
	return incrementCounter(ctx, s.db, "likes_count", id)
}

// incrementCounter bumps column in a single statement so concurrent calls
// never lose an update.
func incrementCounter(ctx context.Context, q querier, column string, id uuid.UUID) (int64, error) {
	var n int64
	err := q.QueryRowContext(ctx,
		`UPDATE content SET `+column+` = `+column+` + 1 WHERE id = $1 RETURNING `+column, id,
	).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperr.NotFound(msgContentNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", column, err)
	}
	return n, nil
}

// Create inserts all items in one transaction, assigning ids and the upload
// date, then reloads them with their joined names.
func (s *ContentStore) Create(ctx context.Context, items []*models.Content) ([]models.Content, error) {
	out := make([]models.Content, 0, len(items))
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, c := range items {
			if !c.ContentType.Valid() {
				return apperr.Validation("نوع المحتوى غير صالح")
			}
			tags, err := encodeTags(c.Tags)
			if err != nil {
				return fmt.Errorf("encode tags: %w", err)
			}
			metadata, err := encodeMetadata(c.Metadata)
			if err != nil {
				return fmt.Errorf("encode metadata: %w", err)
			}

			c.ID = uuid.New()
			c.UploadDate = now()
			_, err = tx.ExecContext(ctx, `
				INSERT INTO content (id, title, description, file_url, thumbnail_url,
					content_type, upload_date, views_count, likes_count,
					category_id, type_id, brand_id, uploaded_by, tags, is_public, metadata)
				VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, $8, $9, $10, $11, $12, $13, $14)`,
				c.ID, c.Title, c.Description, c.FileURL, c.ThumbnailURL,
				string(c.ContentType), c.UploadDate,
				c.CategoryID, c.TypeID, c.BrandID, c.UploadedBy, tags, c.IsPublic, metadata,
			)
			if err != nil {
				return fmt.Errorf("create content: %w", err)
			}

			saved, err := findContent(ctx, tx, c.ID)
			if err != nil {
				return err
			}
			out = append(out, *saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies patch to the row. Counters, the asset location and the
// upload date are not part of a patch and never change here. Changed
// references are stored as given.
func (s *ContentStore) Update(ctx context.Context, id uuid.UUID, patch models.ContentPatch) (*models.Content, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if patch.Title.Set {
		if patch.Title.Value == nil || strings.TrimSpace(*patch.Title.Value) == "" {
			return nil, apperr.Validation("العنوان مطلوب")
		}
		set("title", *patch.Title.Value)
	}
	if patch.Description.Set {
		set("description", patch.Description.Value)
	}
	if patch.CategoryID.Set {
		if patch.CategoryID.Value == nil {
			return nil, apperr.Validation("معرف التصنيف مطلوب")
		}
		set("category_id", *patch.CategoryID.Value)
	}
	if patch.TypeID.Set {
		set("type_id", patch.TypeID.Value)
	}
	if patch.BrandID.Set {
		set("brand_id", patch.BrandID.Value)
	}
	if patch.Tags.Set {
		var tags []string
		if patch.Tags.Value != nil {
			tags = *patch.Tags.Value
		}
		encoded, err := encodeTags(tags)
		if err != nil {
			return nil, fmt.Errorf("encode tags: %w", err)
		}
		set("tags", encoded)
	}
	if patch.IsPublic.Set {
		if patch.IsPublic.Value == nil {
			return nil, apperr.Validation("قيمة is_public غير صالحة")
		}
		set("is_public", *patch.IsPublic.Value)
	}

	var out *models.Content
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if !patch.Empty() {
			args = append(args, id)
			res, err := tx.ExecContext(ctx,
				`UPDATE content SET `+strings.Join(sets, ", ")+` WHERE id = $`+strconv.Itoa(len(args)),
				args...,
			)
			if err != nil {
				return fmt.Errorf("update content: %w", err)
			}
			if n, err := res.RowsAffected(); err == nil && n == 0 {
				return apperr.NotFound(msgContentNotFound)
			}
		}
		c, err := findContent(ctx, tx, id)
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

// Delete removes the row and returns it so the caller can remove the
// backing asset.
func (s *ContentStore) Delete(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	var out *models.Content
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		c, err := findContent(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM content WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete content: %w", err)
		}
		out = c
		return nil
	})
	return out, err
}

// Stats aggregates counts and engagement over all content, public or not.
func (s *ContentStore) Stats(ctx context.Context) (*models.ContentStats, error) {
	var st models.ContentStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       CAST(COALESCE(SUM(CASE WHEN content_type = 'image' THEN 1 ELSE 0 END), 0) AS BIGINT),
		       CAST(COALESCE(SUM(CASE WHEN content_type = 'video' THEN 1 ELSE 0 END), 0) AS BIGINT),
		       CAST(COALESCE(SUM(views_count), 0) AS BIGINT),
		       CAST(COALESCE(SUM(likes_count), 0) AS BIGINT)
		FROM content`,
	).Scan(&st.TotalContent, &st.TotalImages, &st.TotalVideos, &st.TotalViews, &st.TotalLikes)
	if err != nil {
		return nil, fmt.Errorf("content stats: %w", err)
	}
	return &st, nil
}
