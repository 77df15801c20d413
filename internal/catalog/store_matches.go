package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const matchColumns = `id, course_id, lms_course_id, method, confidence, matched_by, matched_at`

// CreateMatch links a course to an LMS course and mirrors the link onto the
// course row. Returns false without writing when the exact pair already
// exists; a match to a different LMS course is allowed and supersedes the
// course's mirrored link.
func (s *Store) CreateMatch(ctx context.Context, courseID, lmsCourseID int64, method MatchMethod, confidence int, matchedBy string) (bool, error) {
	created := false
	err := s.WithTx(ctx, func(tx *Tx) error {
		var exists int
		err := tx.tx.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM course_matches WHERE course_id = ? AND lms_course_id = ?`,
			courseID, lmsCourseID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check existing match: %w", err)
		}
		if exists > 0 {
			return nil
		}

		if _, err := tx.tx.ExecContext(ctx,
			`INSERT INTO course_matches (course_id, lms_course_id, method, confidence, matched_by, matched_at)
             VALUES (?, ?, ?, ?, ?, ?)`,
			courseID, lmsCourseID, string(method), confidence, nullableString(matchedBy), timestamp(time.Now()),
		); err != nil {
			return fmt.Errorf("insert match: %w", err)
		}

		if _, err := tx.tx.ExecContext(ctx,
			`UPDATE courses SET lms_course_id = ?, updated_at = ? WHERE id = ?`,
			lmsCourseID, timestamp(time.Now()), courseID,
		); err != nil {
			return fmt.Errorf("link course: %w", err)
		}

		created = true
		return nil
	})
	return created, err
}

// RemoveMatch deletes a course's match records and clears the mirrored link.
// Removing a course with no match is a no-op.
func (s *Store) RemoveMatch(ctx context.Context, courseID int64) error {
	return s.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.tx.ExecContext(ctx,
			`DELETE FROM course_matches WHERE course_id = ?`, courseID,
		); err != nil {
			return fmt.Errorf("delete match: %w", err)
		}
		if _, err := tx.tx.ExecContext(ctx,
			`UPDATE courses SET lms_course_id = NULL, updated_at = ? WHERE id = ?`,
			timestamp(time.Now()), courseID,
		); err != nil {
			return fmt.Errorf("unlink course: %w", err)
		}
		return nil
	})
}

func scanMatch(scanner interface{ Scan(dest ...any) error }) (*MatchRecord, error) {
	var record MatchRecord
	var matchedBy sql.NullString
	var matchedAt string
	if err := scanner.Scan(
		&record.ID, &record.CourseID, &record.LMSCourseID,
		&record.Method, &record.Confidence, &matchedBy, &matchedAt,
	); err != nil {
		return nil, err
	}
	record.MatchedBy = matchedBy.String
	if t, err := parseTimeString(matchedAt); err == nil {
		record.MatchedAt = t
	}
	return &record, nil
}

// MatchForCourse returns the most recent match record for a course, nil when
// the course is unmatched.
func (s *Store) MatchForCourse(ctx context.Context, courseID int64) (*MatchRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM course_matches WHERE course_id = ? ORDER BY id DESC LIMIT 1`,
		courseID,
	)
	record, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("match for course: %w", err)
	}
	return record, nil
}

// Matches returns every match record, newest first.
func (s *Store) Matches(ctx context.Context) ([]*MatchRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM course_matches ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var records []*MatchRecord
	for rows.Next() {
		record, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
