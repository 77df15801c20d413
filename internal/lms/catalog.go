package lms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Candidate is one published LMS course eligible for matching.
type Candidate struct {
	ID    int64
	Title string
	SKU   string
	Type  string
}

// Catalog exposes read access to the LMS course list.
type Catalog interface {
	// Search returns published candidates of the given post types whose
	// title or SKU contains term.
	Search(ctx context.Context, term string, postTypes []string) ([]Candidate, error)
	// List returns every published candidate of the given post types.
	List(ctx context.Context, postTypes []string) ([]Candidate, error)
	// Get returns one candidate by post ID, nil when absent or unpublished.
	Get(ctx context.Context, id int64) (*Candidate, error)
}

// Options configure how the export is read.
type Options struct {
	// Path is the SQLite export file.
	Path string
	// SKUMetaKey is the postmeta key holding a course's product SKU.
	SKUMetaKey string
	// ArchivedMetaKey is the postmeta key flagging archived courses, which
	// are excluded from matching.
	ArchivedMetaKey string
}

// DB is a Catalog backed by a local SQLite export.
type DB struct {
	db   *sql.DB
	opts Options
}

// Open connects to the LMS export. The file must already exist; an import
// tool owns producing it.
func Open(opts Options) (*DB, error) {
	if opts.Path == "" {
		return nil, errors.New("lms database path required")
	}
	db, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("open lms db: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma: %w", err)
	}
	return &DB{db: db, opts: opts}, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

const candidateSelect = `SELECT p.ID, p.post_title, p.post_type, COALESCE(s.meta_value, '')
FROM posts p
LEFT JOIN postmeta s ON s.post_id = p.ID AND s.meta_key = ?`

func (d *DB) notArchived() string {
	return `NOT EXISTS (
        SELECT 1 FROM postmeta a
        WHERE a.post_id = p.ID AND a.meta_key = ? AND a.meta_value = '1')`
}

func typePlaceholders(postTypes []string) (string, []any) {
	placeholders := make([]string, len(postTypes))
	args := make([]any, len(postTypes))
	for i, t := range postTypes {
		placeholders[i] = "?"
		args[i] = t
	}
	return strings.Join(placeholders, ", "), args
}

// Search implements Catalog.
func (d *DB) Search(ctx context.Context, term string, postTypes []string) ([]Candidate, error) {
	if len(postTypes) == 0 {
		return nil, nil
	}
	typeList, typeArgs := typePlaceholders(postTypes)
	pattern := "%" + escapeLike(strings.TrimSpace(term)) + "%"

	query := candidateSelect + `
WHERE p.post_status = 'publish'
  AND p.post_type IN (` + typeList + `)
  AND ` + d.notArchived() + `
  AND (p.post_title LIKE ? ESCAPE '\' OR COALESCE(s.meta_value, '') LIKE ? ESCAPE '\')
ORDER BY p.post_title`

	args := []any{d.opts.SKUMetaKey}
	args = append(args, typeArgs...)
	args = append(args, d.opts.ArchivedMetaKey, pattern, pattern)
	return d.queryCandidates(ctx, query, args...)
}

// List implements Catalog.
func (d *DB) List(ctx context.Context, postTypes []string) ([]Candidate, error) {
	if len(postTypes) == 0 {
		return nil, nil
	}
	typeList, typeArgs := typePlaceholders(postTypes)

	query := candidateSelect + `
WHERE p.post_status = 'publish'
  AND p.post_type IN (` + typeList + `)
  AND ` + d.notArchived() + `
ORDER BY p.post_title`

	args := []any{d.opts.SKUMetaKey}
	args = append(args, typeArgs...)
	args = append(args, d.opts.ArchivedMetaKey)
	return d.queryCandidates(ctx, query, args...)
}

// Get implements Catalog.
func (d *DB) Get(ctx context.Context, id int64) (*Candidate, error) {
	query := candidateSelect + `
WHERE p.ID = ? AND p.post_status = 'publish'`
	row := d.db.QueryRowContext(ctx, query, d.opts.SKUMetaKey, id)

	var c Candidate
	err := row.Scan(&c.ID, &c.Title, &c.Type, &c.SKU)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lms course: %w", err)
	}
	return &c, nil
}

func (d *DB) queryCandidates(ctx context.Context, query string, args ...any) ([]Candidate, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lms courses: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ID, &c.Title, &c.Type, &c.SKU); err != nil {
			return nil, fmt.Errorf("scan lms course: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
