package testsupport

import (
	"context"
	"testing"

	"github.com/andyfreed/master-course-list/internal/catalog"
	"github.com/andyfreed/master-course-list/internal/config"
	"github.com/andyfreed/master-course-list/internal/normalize"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg.DatabasePath())
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewCourse inserts a catalog course with the given natural key and title,
// returning the stored record.
func NewCourse(t testing.TB, store *catalog.Store, code, edition, title string) *catalog.Course {
	t.Helper()

	values := catalog.FieldValues{
		normalize.FieldCode:    normalize.Normalize(normalize.FieldCode, code),
		normalize.FieldEdition: normalize.Normalize(normalize.FieldEdition, edition),
		normalize.FieldTitle:   normalize.Normalize(normalize.FieldTitle, title),
	}
	id, err := store.InsertCourse(context.Background(), values)
	if err != nil {
		t.Fatalf("store.InsertCourse: %v", err)
	}
	course, err := store.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("store.GetByID: %v", err)
	}
	if course == nil {
		t.Fatalf("course %d missing after insert", id)
	}
	return course
}
