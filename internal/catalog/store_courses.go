package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andyfreed/master-course-list/internal/normalize"
)

// ErrMissingNaturalKey is returned when an insert lacks code or edition.
var ErrMissingNaturalKey = errors.New("course requires code and edition")

// courseColumns is the full SELECT column list: id, every registered catalog
// field in stable order, then the link and timestamp columns.
var courseColumns = func() string {
	cols := append([]string{"id"}, normalize.Fields()...)
	cols = append(cols, "lms_course_id", "created_at", "updated_at")
	return strings.Join(cols, ", ")
}()

func bindValue(v *normalize.Value) any {
	if v == nil {
		return nil
	}
	if v.Kind == normalize.KindNumeric {
		return v.Number
	}
	return nullableString(v.Text)
}

func scanCourse(scanner interface{ Scan(dest ...any) error }) (*Course, error) {
	fields := normalize.Fields()

	var id int64
	texts := make([]sql.NullString, len(fields))
	numbers := make([]sql.NullFloat64, len(fields))
	var lmsID sql.NullInt64
	var createdRaw, updatedRaw sql.NullString

	dest := make([]any, 0, len(fields)+4)
	dest = append(dest, &id)
	for i, field := range fields {
		if normalize.KindOf(field) == normalize.KindNumeric {
			dest = append(dest, &numbers[i])
		} else {
			dest = append(dest, &texts[i])
		}
	}
	dest = append(dest, &lmsID, &createdRaw, &updatedRaw)

	if err := scanner.Scan(dest...); err != nil {
		return nil, err
	}

	course := &Course{ID: id, Values: make(FieldValues, len(fields))}
	for i, field := range fields {
		kind := normalize.KindOf(field)
		switch {
		case kind == normalize.KindNumeric && numbers[i].Valid:
			course.Values[field] = &normalize.Value{Kind: normalize.KindNumeric, Number: numbers[i].Float64}
		case kind != normalize.KindNumeric && texts[i].Valid && texts[i].String != "":
			course.Values[field] = &normalize.Value{Kind: kind, Text: texts[i].String}
		}
	}
	course.Code = course.Values.Canonical(normalize.FieldCode)
	course.Edition = course.Values.Canonical(normalize.FieldEdition)
	course.Title = course.Values.Canonical(normalize.FieldTitle)
	if lmsID.Valid {
		v := lmsID.Int64
		course.LMSCourseID = &v
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		course.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		course.UpdatedAt = updated
	}
	return course, nil
}

func insertCourse(ctx context.Context, q dbtx, values FieldValues) (int64, error) {
	if values.Canonical(normalize.FieldCode) == "" || values.Canonical(normalize.FieldEdition) == "" {
		return 0, ErrMissingNaturalKey
	}

	fields := normalize.Fields()
	now := timestamp(time.Now())

	cols := make([]string, 0, len(fields)+2)
	placeholders := make([]string, 0, len(fields)+2)
	args := make([]any, 0, len(fields)+2)
	for _, field := range fields {
		cols = append(cols, field)
		placeholders = append(placeholders, "?")
		args = append(args, bindValue(values[field]))
	}
	cols = append(cols, "created_at", "updated_at")
	placeholders = append(placeholders, "?", "?")
	args = append(args, now, now)

	query := `INSERT INTO courses (` + strings.Join(cols, ", ") + `) VALUES (` + strings.Join(placeholders, ", ") + `)`
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert course: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func getCourseByID(ctx context.Context, q dbtx, id int64) (*Course, error) {
	row := q.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id)
	course, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return course, nil
}

func getCourseByCodeEdition(ctx context.Context, q dbtx, code, edition string) (*Course, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE code = ? AND edition = ? LIMIT 1`,
		code, edition,
	)
	course, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get course by code+edition: %w", err)
	}
	return course, nil
}

// updateCourseWithHistory records one history entry per changed field, then
// applies a single UPDATE with every change. Fields absent from values are
// untouched; null and empty string compare equal so re-importing identical
// data writes nothing.
func updateCourseWithHistory(ctx context.Context, q dbtx, courseID int64, values FieldValues, actor string, changeType ChangeType, note string) (int, error) {
	current, err := getCourseByID(ctx, q, courseID)
	if err != nil {
		return 0, err
	}
	if current == nil {
		return 0, fmt.Errorf("course %d not found", courseID)
	}

	edition := values.Canonical(normalize.FieldEdition)
	if edition == "" {
		edition = current.Edition
	}

	type change struct {
		field string
		value *normalize.Value
	}
	var changes []change
	for _, field := range normalize.Fields() {
		value, present := values[field]
		if !present {
			continue
		}
		oldCanonical := current.Values.Canonical(field)
		newCanonical := value.Canonical()
		if oldCanonical == newCanonical {
			continue
		}
		if err := recordChange(ctx, q, &HistoryEntry{
			CourseID:   courseID,
			Edition:    edition,
			ChangeType: changeType,
			Field:      field,
			OldValue:   oldCanonical,
			NewValue:   newCanonical,
			Note:       note,
			ChangedBy:  actor,
		}); err != nil {
			return 0, err
		}
		changes = append(changes, change{field: field, value: value})
	}

	if len(changes) == 0 {
		return 0, nil
	}

	assignments := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+2)
	for _, ch := range changes {
		assignments = append(assignments, ch.field+" = ?")
		args = append(args, bindValue(ch.value))
	}
	assignments = append(assignments, "updated_at = ?")
	args = append(args, timestamp(time.Now()), courseID)

	query := `UPDATE courses SET ` + strings.Join(assignments, ", ") + ` WHERE id = ?`
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("update course: %w", err)
	}
	return len(changes), nil
}

func queryCourses(ctx context.Context, q dbtx, query string, args ...any) ([]*Course, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var courses []*Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// SearchQuery filters catalog listings.
type SearchQuery struct {
	// Search matches code, edition, or title substrings.
	Search string
	// Matched filters by link state: "matched", "unmatched", or "" for all.
	Matched string
	// Certification restricts to courses with credits in one category:
	// cfp, cpa, ea, erpa, cdfa, or iar.
	Certification string
	Limit         int
	Offset        int
}

var certificationColumns = map[string]string{
	"cfp":  normalize.FieldCFPCredits,
	"cpa":  normalize.FieldCPACredits,
	"ea":   normalize.FieldEAOTRPCredits,
	"erpa": normalize.FieldERPACredits,
	"cdfa": normalize.FieldCDFACredits,
	"iar":  normalize.FieldIARCredits,
}

func searchCourses(ctx context.Context, q dbtx, query SearchQuery) ([]*Course, error) {
	where := []string{"1=1"}
	var args []any

	if term := strings.TrimSpace(query.Search); term != "" {
		pattern := "%" + escapeLike(term) + "%"
		where = append(where, `(code LIKE ? ESCAPE '\' OR edition LIKE ? ESCAPE '\' OR title LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	switch query.Matched {
	case "matched":
		where = append(where, "lms_course_id IS NOT NULL")
	case "unmatched":
		where = append(where, "lms_course_id IS NULL")
	}

	if query.Certification != "" {
		column, ok := certificationColumns[strings.ToLower(query.Certification)]
		if !ok {
			return nil, fmt.Errorf("unknown certification %q", query.Certification)
		}
		where = append(where, column+" > 0")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}

	stmt := `SELECT ` + courseColumns + ` FROM courses WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY code, edition DESC LIMIT ? OFFSET ?`
	args = append(args, limit, query.Offset)
	return queryCourses(ctx, q, stmt, args...)
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

// Store-level wrappers.

// InsertCourse adds a new catalog record.
func (s *Store) InsertCourse(ctx context.Context, values FieldValues) (int64, error) {
	return insertCourse(ctx, s.db, values)
}

// GetByID fetches a course by identifier, nil when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Course, error) {
	return getCourseByID(ctx, s.db, id)
}

// GetByCodeEdition fetches a course by its natural key, nil when absent.
func (s *Store) GetByCodeEdition(ctx context.Context, code, edition string) (*Course, error) {
	return getCourseByCodeEdition(ctx, s.db, code, edition)
}

// UpdateWithHistory applies values to a course, recording one history entry
// per changed field. The history writes and the update commit together.
func (s *Store) UpdateWithHistory(ctx context.Context, courseID int64, values FieldValues, actor string, changeType ChangeType, note string) (int, error) {
	var changed int
	err := s.WithTx(ctx, func(tx *Tx) error {
		var err error
		changed, err = updateCourseWithHistory(ctx, tx.tx, courseID, values, actor, changeType, note)
		return err
	})
	return changed, err
}

// Search returns catalog courses matching the query.
func (s *Store) Search(ctx context.Context, query SearchQuery) ([]*Course, error) {
	return searchCourses(ctx, s.db, query)
}

// Unmatched returns courses with no match record, ordered by code then edition.
func (s *Store) Unmatched(ctx context.Context) ([]*Course, error) {
	stmt := `SELECT ` + courseColumns + ` FROM courses c
        WHERE NOT EXISTS (SELECT 1 FROM course_matches m WHERE m.course_id = c.id)
        ORDER BY c.code, c.edition`
	return queryCourses(ctx, s.db, stmt)
}

// Stats returns aggregate catalog counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	row := s.db.QueryRowContext(ctx, `SELECT
        (SELECT COUNT(1) FROM courses),
        (SELECT COUNT(1) FROM courses WHERE lms_course_id IS NOT NULL),
        (SELECT COUNT(1) FROM course_history)`)
	if err := row.Scan(&stats.Courses, &stats.Matched, &stats.History); err != nil {
		return Stats{}, fmt.Errorf("catalog stats: %w", err)
	}
	stats.Unmatched = stats.Courses - stats.Matched
	return stats, nil
}

// Tx-level variants used by the import pipeline.

// InsertCourse adds a new catalog record inside the transaction.
func (t *Tx) InsertCourse(ctx context.Context, values FieldValues) (int64, error) {
	return insertCourse(ctx, t.tx, values)
}

// GetByCodeEdition fetches a course by its natural key inside the transaction.
func (t *Tx) GetByCodeEdition(ctx context.Context, code, edition string) (*Course, error) {
	return getCourseByCodeEdition(ctx, t.tx, code, edition)
}

// UpdateWithHistory applies values and history entries inside the transaction.
func (t *Tx) UpdateWithHistory(ctx context.Context, courseID int64, values FieldValues, actor string, changeType ChangeType, note string) (int, error) {
	return updateCourseWithHistory(ctx, t.tx, courseID, values, actor, changeType, note)
}
