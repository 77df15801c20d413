package testsupport

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/andyfreed/master-course-list/internal/config"
	"github.com/andyfreed/master-course-list/internal/lms"
)

// LMSCourse seeds one post row (plus SKU and archived metadata) in a test
// LMS export.
type LMSCourse struct {
	ID       int64
	Title    string
	SKU      string
	Type     string
	Status   string
	Archived bool
}

// SeedLMS writes a SQLite LMS export at cfg.LMS.Database containing the
// provided courses. Type defaults to the configured primary post type and
// Status to publish.
func SeedLMS(t testing.TB, cfg *config.Config, courses ...LMSCourse) {
	t.Helper()

	db, err := sql.Open("sqlite", cfg.LMS.Database)
	if err != nil {
		t.Fatalf("open lms export: %v", err)
	}
	defer db.Close()

	schema := `
CREATE TABLE IF NOT EXISTS posts (
    ID INTEGER PRIMARY KEY,
    post_title TEXT NOT NULL,
    post_type TEXT NOT NULL,
    post_status TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS postmeta (
    meta_id INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id INTEGER NOT NULL,
    meta_key TEXT NOT NULL,
    meta_value TEXT
);`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create lms schema: %v", err)
	}

	for _, course := range courses {
		postType := course.Type
		if postType == "" {
			postType = cfg.LMS.PrimaryType
		}
		status := course.Status
		if status == "" {
			status = "publish"
		}
		if _, err := db.Exec(
			`INSERT INTO posts (ID, post_title, post_type, post_status) VALUES (?, ?, ?, ?)`,
			course.ID, course.Title, postType, status,
		); err != nil {
			t.Fatalf("insert lms post %d: %v", course.ID, err)
		}
		if course.SKU != "" {
			if _, err := db.Exec(
				`INSERT INTO postmeta (post_id, meta_key, meta_value) VALUES (?, ?, ?)`,
				course.ID, cfg.LMS.SKUMetaKey, course.SKU,
			); err != nil {
				t.Fatalf("insert lms sku %d: %v", course.ID, err)
			}
		}
		if course.Archived {
			if _, err := db.Exec(
				`INSERT INTO postmeta (post_id, meta_key, meta_value) VALUES (?, ?, '1')`,
				course.ID, cfg.LMS.ArchivedMetaKey,
			); err != nil {
				t.Fatalf("insert lms archived flag %d: %v", course.ID, err)
			}
		}
	}
}

// MustOpenLMS opens the seeded LMS export for tests and registers cleanup.
func MustOpenLMS(t testing.TB, cfg *config.Config) *lms.DB {
	t.Helper()

	db, err := lms.Open(lms.Options{
		Path:            cfg.LMS.Database,
		SKUMetaKey:      cfg.LMS.SKUMetaKey,
		ArchivedMetaKey: cfg.LMS.ArchivedMetaKey,
	})
	if err != nil {
		t.Fatalf("lms.Open: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
