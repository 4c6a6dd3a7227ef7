// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"

	"zamzam/internal/apperr"
	"zamzam/internal/models"
)

func TestContentStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	cat := mustCategory(t, db, "طبيعة")

	c := mustContent(t, db, models.Content{
		Title:      "غروب",
		CategoryID: cat.ID,
		Tags:       []string{"شمس", "بحر"},
		IsPublic:   true,
		Metadata:   map[string]any{"original_name": "sunset.png", "size": 1024},
	})
	if c.ID == uuid.Nil {
		t.Fatal("expected id to be assigned")
	}
	if c.UploadDate.IsZero() {
		t.Error("expected upload date to be set")
	}
	if c.ViewsCount != 0 || c.LikesCount != 0 {
		t.Errorf("counters: got %d/%d, want 0/0", c.ViewsCount, c.LikesCount)
	}
	if c.CategoryName == nil || *c.CategoryName != "طبيعة" {
		t.Errorf("category name: got %v", c.CategoryName)
	}
	if len(c.Tags) != 2 || c.Tags[0] != "شمس" || c.Tags[1] != "بحر" {
		t.Errorf("tags: got %v", c.Tags)
	}
	if c.Metadata["original_name"] != "sunset.png" {
		t.Errorf("metadata: got %v", c.Metadata)
	}

	got, err := NewContentStore(db).FindByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Title != "غروب" || got.ViewsCount != 0 {
		t.Errorf("FindByID: got %+v", got)
	}
}

func TestContentStoreMalformedSideChannels(t *testing.T) {
	db := testDB(t)
	cat := mustCategory(t, db, "فن")
	c := mustContent(t, db, models.Content{Title: "لوحة", CategoryID: cat.ID})

	if _, err := db.Exec(`UPDATE content SET tags = 'not json', metadata = NULL WHERE id = $1`, c.ID); err != nil {
		t.Fatalf("corrupt row: %v", err)
	}

	got, err := NewContentStore(db).FindByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("tags: got %#v, want empty slice", got.Tags)
	}
	if got.Metadata == nil || len(got.Metadata) != 0 {
		t.Errorf("metadata: got %#v, want empty map", got.Metadata)
	}
}

func TestContentStoreViewIncrements(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	cat := mustCategory(t, db, "سفر")
	c := mustContent(t, db, models.Content{Title: "رحلة", CategoryID: cat.ID})

	got, err := s.View(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if got.ViewsCount != 1 {
		t.Errorf("views after one view: got %d, want 1", got.ViewsCount)
	}

	if _, err := s.View(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestContentStoreConcurrentIncrements(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	cat := mustCategory(t, db, "رياضة")
	c := mustContent(t, db, models.Content{Title: "هدف", CategoryID: cat.ID})

	const n = 40
	var wg sync.WaitGroup
	errs := make(chan error, 2*n)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := s.View(context.Background(), c.ID); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := s.IncrementLikes(context.Background(), c.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("increment: %v", err)
	}

	got, err := s.FindByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.ViewsCount != n {
		t.Errorf("views: got %d, want %d", got.ViewsCount, n)
	}
	if got.LikesCount != n {
		t.Errorf("likes: got %d, want %d", got.LikesCount, n)
	}

	if _, err := s.IncrementLikes(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestContentStoreListPublicOnly(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	cat := mustCategory(t, db, "طعام")

	mustContent(t, db, models.Content{Title: "عام", CategoryID: cat.ID, IsPublic: true})
	hidden := mustContent(t, db, models.Content{Title: "خاص", CategoryID: cat.ID, IsPublic: false})

	image := models.ContentTypeImage
	filters := []models.ContentFilter{
		{},
		{CategoryID: &cat.ID},
		{ContentType: &image},
		{Search: "خاص"},
		{CategoryID: &cat.ID, ContentType: &image, Search: "خ"},
	}
	for i, f := range filters {
		page, err := s.List(context.Background(), &f)
		if err != nil {
			t.Fatalf("filter %d: List: %v", i, err)
		}
		for _, item := range page.Items {
			if item.ID == hidden.ID {
				t.Errorf("filter %d: non-public content listed", i)
			}
		}
	}
}

func TestContentStoreListFilters(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	ctx := context.Background()

	nature := mustCategory(t, db, "طبيعة")
	art := mustCategory(t, db, "فن")
	brand := &models.Brand{Name: "Canon"}
	if err := NewBrandStore(db).Create(ctx, brand); err != nil {
		t.Fatalf("create brand: %v", err)
	}

	mustContent(t, db, models.Content{Title: "جبل عالٍ", CategoryID: nature.ID, IsPublic: true, BrandID: &brand.ID})
	mustContent(t, db, models.Content{Title: "بحر", CategoryID: nature.ID, IsPublic: true,
		ContentType: models.ContentTypeVideo, FileURL: "/uploads/sea.mp4"})
	mustContent(t, db, models.Content{Title: "لوحة 100%", CategoryID: art.ID, IsPublic: true})

	video := models.ContentTypeVideo
	tests := []struct {
		name   string
		filter models.ContentFilter
		want   int64
	}{
		{"all", models.ContentFilter{}, 3},
		{"category", models.ContentFilter{CategoryID: &nature.ID}, 2},
		{"brand", models.ContentFilter{BrandID: &brand.ID}, 1},
		{"content type", models.ContentFilter{ContentType: &video}, 1},
		{"search", models.ContentFilter{Search: "جبل"}, 1},
		{"search literal percent", models.ContentFilter{Search: "100%"}, 1},
		{"search wildcard is literal", models.ContentFilter{Search: "%"}, 1},
		{"combined", models.ContentFilter{CategoryID: &art.ID, ContentType: &video}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.filter
			page, err := s.List(ctx, &f)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if page.Pagination.Total != tt.want {
				t.Errorf("total: got %d, want %d", page.Pagination.Total, tt.want)
			}
			if int64(len(page.Items)) != tt.want {
				t.Errorf("items: got %d, want %d", len(page.Items), tt.want)
			}
		})
	}
}

func TestContentStoreListPagination(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	cat := mustCategory(t, db, "أشخاص")

	items := make([]*models.Content, 25)
	for i := range items {
		items[i] = &models.Content{
			Title:       fmt.Sprintf("صورة %d", i),
			FileURL:     fmt.Sprintf("/uploads/%d.png", i),
			ContentType: models.ContentTypeImage,
			CategoryID:  cat.ID,
			UploadedBy:  "admin",
			IsPublic:    true,
		}
	}
	if _, err := s.Create(context.Background(), items); err != nil {
		t.Fatalf("Create batch: %v", err)
	}

	tests := []struct {
		page, perPage int
		wantItems     int
		wantPages     int
		hasNext       bool
		hasPrev       bool
	}{
		{1, 10, 10, 3, true, false},
		{3, 10, 5, 3, false, true},
		{4, 10, 0, 3, false, true},
		{0, 0, 20, 2, true, false},
		{1, 500, 25, 1, false, false},
		{7, 4, 1, 7, false, true},
		{8, 4, 0, 7, false, true},
		{math.MaxInt, 4, 0, 7, false, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page=%d,per_page=%d", tt.page, tt.perPage), func(t *testing.T) {
			f := models.ContentFilter{Page: tt.page, PerPage: tt.perPage}
			page, err := s.List(context.Background(), &f)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(page.Items) != tt.wantItems {
				t.Errorf("items: got %d, want %d", len(page.Items), tt.wantItems)
			}
			p := page.Pagination
			if p.Total != 25 {
				t.Errorf("total: got %d, want 25", p.Total)
			}
			if p.Pages != tt.wantPages {
				t.Errorf("pages: got %d, want %d", p.Pages, tt.wantPages)
			}
			if p.HasNext != tt.hasNext || p.HasPrev != tt.hasPrev {
				t.Errorf("flags: got next=%v prev=%v", p.HasNext, p.HasPrev)
			}
			for i := 1; i < len(page.Items); i++ {
				if page.Items[i].UploadDate.After(page.Items[i-1].UploadDate) {
					t.Errorf("items not ordered newest first at %d", i)
				}
			}
		})
	}
}

func TestContentStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	ctx := context.Background()
	cat := mustCategory(t, db, "معمارية")
	c := mustContent(t, db, models.Content{Title: "برج", CategoryID: cat.ID, IsPublic: true, Tags: []string{"a"}})

	if _, err := s.View(ctx, c.ID); err != nil {
		t.Fatalf("View: %v", err)
	}

	got, err := s.Update(ctx, c.ID, models.ContentPatch{
		Title:    models.Some("برج جديد"),
		Tags:     models.Some([]string{"x", "y"}),
		IsPublic: models.Some(false),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Title != "برج جديد" {
		t.Errorf("title: got %q", got.Title)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "x" {
		t.Errorf("tags: got %v", got.Tags)
	}
	if got.IsPublic {
		t.Error("expected is_public=false")
	}
	if got.ViewsCount != 1 {
		t.Errorf("views changed by update: got %d, want 1", got.ViewsCount)
	}
	if !got.UploadDate.Equal(c.UploadDate) {
		t.Errorf("upload date changed: %v -> %v", c.UploadDate, got.UploadDate)
	}

	// References are stored as given, without re-validation.
	dangling := uuid.New()
	got, err = s.Update(ctx, c.ID, models.ContentPatch{TypeID: models.Some(dangling)})
	if err != nil {
		t.Fatalf("Update dangling type: %v", err)
	}
	if got.TypeID == nil || *got.TypeID != dangling {
		t.Errorf("type id: got %v", got.TypeID)
	}
	if got.TypeName != nil {
		t.Errorf("type name for dangling reference: got %q", *got.TypeName)
	}

	if _, err := s.Update(ctx, c.ID, models.ContentPatch{Title: models.Some("  ")}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error for blank title, got %v", err)
	}
	if _, err := s.Update(ctx, uuid.New(), models.ContentPatch{Title: models.Some("x")}); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestContentStoreDeleteAndStats(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	ctx := context.Background()
	cat := mustCategory(t, db, "تقنية")

	img := mustContent(t, db, models.Content{Title: "صورة", CategoryID: cat.ID, IsPublic: true})
	mustContent(t, db, models.Content{Title: "فيديو", CategoryID: cat.ID, ContentType: models.ContentTypeVideo})
	for i := 0; i < 3; i++ {
		if _, err := s.View(ctx, img.ID); err != nil {
			t.Fatalf("View: %v", err)
		}
	}
	if _, err := s.IncrementLikes(ctx, img.ID); err != nil {
		t.Fatalf("IncrementLikes: %v", err)
	}

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := models.ContentStats{TotalContent: 2, TotalImages: 1, TotalVideos: 1, TotalViews: 3, TotalLikes: 1}
	if *st != want {
		t.Errorf("stats: got %+v, want %+v", *st, want)
	}

	deleted, err := s.Delete(ctx, img.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.FileURL != img.FileURL {
		t.Errorf("deleted file url: got %q", deleted.FileURL)
	}
	if _, err := s.Delete(ctx, img.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}

	st, err = s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalContent != 1 || st.TotalViews != 0 {
		t.Errorf("stats after delete: got %+v", *st)
	}
}

func TestContentStoreStatsEmpty(t *testing.T) {
	db := testDB(t)
	st, err := NewContentStore(db).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if *st != (models.ContentStats{}) {
		t.Errorf("expected zero stats, got %+v", *st)
	}
}
