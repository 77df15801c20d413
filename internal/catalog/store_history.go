package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

func recordChange(ctx context.Context, q dbtx, entry *HistoryEntry) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO course_history (course_id, edition, change_type, field_name, old_value, new_value, note, changed_by, changed_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.CourseID,
		nullableString(entry.Edition),
		string(entry.ChangeType),
		entry.Field,
		nullableString(entry.OldValue),
		nullableString(entry.NewValue),
		nullableString(entry.Note),
		nullableString(entry.ChangedBy),
		timestamp(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("record change: %w", err)
	}
	return nil
}

func queryHistory(ctx context.Context, q dbtx, query string, args ...any) ([]*HistoryEntry, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []*HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var edition, oldValue, newValue, note, changedBy sql.NullString
		var changedAt string
		if err := rows.Scan(
			&entry.ID, &entry.CourseID, &edition, &entry.ChangeType, &entry.Field,
			&oldValue, &newValue, &note, &changedBy, &changedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entry.Edition = edition.String
		entry.OldValue = oldValue.String
		entry.NewValue = newValue.String
		entry.Note = note.String
		entry.ChangedBy = changedBy.String
		if t, err := parseTimeString(changedAt); err == nil {
			entry.ChangedAt = t
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

const historyColumns = `id, course_id, edition, change_type, field_name, old_value, new_value, note, changed_by, changed_at`

// History returns a course's change entries newest first. A limit of zero or
// less returns everything.
func (s *Store) History(ctx context.Context, courseID int64, limit int) ([]*HistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM course_history WHERE course_id = ? ORDER BY id DESC`
	args := []any{courseID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return queryHistory(ctx, s.db, query, args...)
}

// HistoryForField returns a course's change entries for one field, newest first.
func (s *Store) HistoryForField(ctx context.Context, courseID int64, field string) ([]*HistoryEntry, error) {
	return queryHistory(ctx, s.db,
		`SELECT `+historyColumns+` FROM course_history WHERE course_id = ? AND field_name = ? ORDER BY id DESC`,
		courseID, field,
	)
}

// RecordChange appends a single history entry outside any course update. Used
// for annotations such as match creation notes.
func (s *Store) RecordChange(ctx context.Context, entry *HistoryEntry) error {
	return recordChange(ctx, s.db, entry)
}
