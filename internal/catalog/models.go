package catalog

import (
	"time"

	"github.com/andyfreed/master-course-list/internal/normalize"
)

// ChangeType records what kind of operation produced a history entry.
type ChangeType string

const (
	ChangeManual    ChangeType = "manual-update"
	ChangeCSVImport ChangeType = "csv-update"
)

// MatchMethod records how a course match was established.
type MatchMethod string

const (
	MatchManual    MatchMethod = "manual"
	MatchAutoCode  MatchMethod = "auto-code"
	MatchAutoTitle MatchMethod = "auto-title"
)

// FieldValues maps catalog field names to normalized values. A nil value
// means null. Only fields present in the map participate in an update.
type FieldValues map[string]*normalize.Value

// Canonical returns the canonical string form for a field, empty when absent
// or null.
func (fv FieldValues) Canonical(field string) string {
	return fv[field].Canonical()
}

// Course is a catalog record. Values holds every registered catalog field;
// Code, Edition, and Title are lifted out for convenient access since they
// form the natural key and display identity.
type Course struct {
	ID          int64
	Code        string
	Edition     string
	Title       string
	LMSCourseID *int64
	Values      FieldValues
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Credit returns a numeric credit-hours field, or 0 when null.
func (c *Course) Credit(field string) float64 {
	if v := c.Values[field]; v != nil && v.Kind == normalize.KindNumeric {
		return v.Number
	}
	return 0
}

// HistoryEntry is one immutable field-level change record.
type HistoryEntry struct {
	ID         int64
	CourseID   int64
	Edition    string
	ChangeType ChangeType
	Field      string
	OldValue   string
	NewValue   string
	Note       string
	ChangedBy  string
	ChangedAt  time.Time
}

// MatchRecord links a catalog course to an external LMS course.
type MatchRecord struct {
	ID          int64
	CourseID    int64
	LMSCourseID int64
	Method      MatchMethod
	Confidence  int
	MatchedBy   string
	MatchedAt   time.Time
}

// Stats aggregates catalog counts for diagnostics and the CLI.
type Stats struct {
	Courses   int
	Matched   int
	Unmatched int
	History   int
}
