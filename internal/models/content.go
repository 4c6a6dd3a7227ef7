// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ContentType is the media kind of an uploaded asset. It is derived from the
// file extension at upload time.
type ContentType string

const (
	ContentTypeImage ContentType = "image"
	ContentTypeVideo ContentType = "video"
)

// Valid reports whether t is a known content type.
func (t ContentType) Valid() bool {
	return t == ContentTypeImage || t == ContentTypeVideo
}

// Content is an uploaded image or video with its classification, engagement
// counters and side-channel fields (tags, metadata).
type Content struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Description  *string        `json:"description"`
	FileURL      string         `json:"file_url"`
	ThumbnailURL *string        `json:"thumbnail_url"`
	ContentType  ContentType    `json:"content_type"`
	UploadDate   time.Time      `json:"upload_date"`
	ViewsCount   int64          `json:"views_count"`
	LikesCount   int64          `json:"likes_count"`
	CategoryID   uuid.UUID      `json:"category_id"`
	TypeID       *uuid.UUID     `json:"type_id"`
	BrandID      *uuid.UUID     `json:"brand_id"`
	UploadedBy   string         `json:"uploaded_by"`
	Tags         []string       `json:"tags"`
	IsPublic     bool           `json:"is_public"`
	Metadata     map[string]any `json:"metadata"`

	// Virtual fields resolved through joins.
	CategoryName *string `json:"category_name"`
	TypeName     *string `json:"type_name"`
	BrandName    *string `json:"brand_name"`
	UploaderName *string `json:"uploader_name"`
}

// IsImage returns true for image content.
func (c *Content) IsImage() bool {
	return c.ContentType == ContentTypeImage
}

// ContentPatch carries the fields of a partial content update. Counters and
// the asset location are deliberately absent: they never change through an
// update.
type ContentPatch struct {
	Title       Optional[string]
	Description Optional[string]
	CategoryID  Optional[uuid.UUID]
	TypeID      Optional[uuid.UUID]
	BrandID     Optional[uuid.UUID]
	Tags        Optional[[]string]
	IsPublic    Optional[bool]
}

// Empty reports whether the patch changes nothing.
func (p ContentPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.CategoryID.Set &&
		!p.TypeID.Set && !p.BrandID.Set && !p.Tags.Set && !p.IsPublic.Set
}

// ContentFilter narrows a content listing. Nil fields are not applied.
type ContentFilter struct {
	CategoryID  *uuid.UUID
	TypeID      *uuid.UUID
	BrandID     *uuid.UUID
	ContentType *ContentType
	Search      string
	Page        int
	PerPage     int
}

// Pagination defaults and limits.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Normalize clamps Page and PerPage into their valid ranges.
func (f *ContentFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
}

// Offset returns the number of rows to skip for the current page. ok is
// false when the offset does not fit in an int64; no listing reaches that
// far, so the page is empty. Call Normalize first.
func (f *ContentFilter) Offset() (offset int64, ok bool) {
	skipped, perPage := int64(f.Page-1), int64(f.PerPage)
	if skipped > math.MaxInt64/perPage {
		return 0, false
	}
	return skipped * perPage, true
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPagination computes page counts and navigation flags.
func NewPagination(page, perPage int, total int64) Pagination {
	pages := 0
	if perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return Pagination{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// ContentPage is one page of public content.
type ContentPage struct {
	Items      []Content
	Pagination Pagination
}

// ContentStats aggregates counts and engagement across all content.
type ContentStats struct {
	TotalContent int64 `json:"total_content"`
	TotalImages  int64 `json:"total_images"`
	TotalVideos  int64 `json:"total_videos"`
	TotalViews   int64 `json:"total_views"`
	TotalLikes   int64 `json:"total_likes"`
}
