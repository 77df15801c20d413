package lms_test

import (
	"context"
	"testing"

	"github.com/andyfreed/master-course-list/internal/testsupport"
)

func TestSearchMatchesTitleAndSKU(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.SeedLMS(t, cfg,
		testsupport.LMSCourse{ID: 10, Title: "Estate Planning 2024", SKU: "1234-2024"},
		testsupport.LMSCourse{ID: 11, Title: "Tax Updates", SKU: "5678"},
		testsupport.LMSCourse{ID: 12, Title: "Retirement Income", SKU: ""},
	)
	db := testsupport.MustOpenLMS(t, cfg)
	ctx := context.Background()
	types := []string{cfg.LMS.PrimaryType}

	byTitle, err := db.Search(ctx, "estate", types)
	if err != nil {
		t.Fatalf("Search by title: %v", err)
	}
	if len(byTitle) != 1 || byTitle[0].ID != 10 {
		t.Fatalf("title search returned %d candidates", len(byTitle))
	}

	bySKU, err := db.Search(ctx, "5678", types)
	if err != nil {
		t.Fatalf("Search by sku: %v", err)
	}
	if len(bySKU) != 1 || bySKU[0].ID != 11 {
		t.Fatalf("sku search returned %d candidates", len(bySKU))
	}
	if bySKU[0].SKU != "5678" {
		t.Fatalf("candidate sku = %q", bySKU[0].SKU)
	}
}

func TestSearchExcludesUnpublishedAndArchived(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.SeedLMS(t, cfg,
		testsupport.LMSCourse{ID: 20, Title: "Ethics Course"},
		testsupport.LMSCourse{ID: 21, Title: "Ethics Course Draft", Status: "draft"},
		testsupport.LMSCourse{ID: 22, Title: "Ethics Course Retired", Archived: true},
	)
	db := testsupport.MustOpenLMS(t, cfg)

	candidates, err := db.Search(context.Background(), "ethics", []string{cfg.LMS.PrimaryType})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != 20 {
		t.Fatalf("expected only the published course, got %d candidates", len(candidates))
	}
}

func TestSearchFiltersPostTypes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.SeedLMS(t, cfg,
		testsupport.LMSCourse{ID: 30, Title: "Annuities Primer"},
		testsupport.LMSCourse{ID: 31, Title: "Annuities Primer Legacy", Type: "legacy-course"},
	)
	db := testsupport.MustOpenLMS(t, cfg)
	ctx := context.Background()

	primaryOnly, err := db.Search(ctx, "annuities", []string{cfg.LMS.PrimaryType})
	if err != nil {
		t.Fatalf("Search primary: %v", err)
	}
	if len(primaryOnly) != 1 || primaryOnly[0].ID != 30 {
		t.Fatalf("primary search returned %d candidates", len(primaryOnly))
	}

	both, err := db.Search(ctx, "annuities", []string{cfg.LMS.PrimaryType, "legacy-course"})
	if err != nil {
		t.Fatalf("Search both: %v", err)
	}
	if len(both) != 2 {
		t.Fatalf("combined search returned %d candidates", len(both))
	}

	none, err := db.Search(ctx, "annuities", nil)
	if err != nil {
		t.Fatalf("Search no types: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("empty type list returned %d candidates", len(none))
	}
}

func TestSearchEscapesLikeWildcards(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.SeedLMS(t, cfg,
		testsupport.LMSCourse{ID: 40, Title: "100% Compliance"},
		testsupport.LMSCourse{ID: 41, Title: "Compliance Basics"},
	)
	db := testsupport.MustOpenLMS(t, cfg)

	candidates, err := db.Search(context.Background(), "100%", []string{cfg.LMS.PrimaryType})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != 40 {
		t.Fatalf("wildcard search returned %d candidates", len(candidates))
	}
}

func TestListAndGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.SeedLMS(t, cfg,
		testsupport.LMSCourse{ID: 50, Title: "Beta Course", SKU: "b-1"},
		testsupport.LMSCourse{ID: 51, Title: "Alpha Course"},
		testsupport.LMSCourse{ID: 52, Title: "Hidden", Status: "private"},
	)
	db := testsupport.MustOpenLMS(t, cfg)
	ctx := context.Background()

	all, err := db.List(ctx, []string{cfg.LMS.PrimaryType})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List returned %d candidates, want 2", len(all))
	}
	if all[0].Title != "Alpha Course" {
		t.Fatalf("expected title ordering, got %q first", all[0].Title)
	}

	got, err := db.Get(ctx, 50)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.SKU != "b-1" {
		t.Fatalf("Get returned %+v", got)
	}

	hidden, err := db.Get(ctx, 52)
	if err != nil {
		t.Fatalf("Get hidden: %v", err)
	}
	if hidden != nil {
		t.Fatalf("expected nil for unpublished course, got %+v", hidden)
	}
}
