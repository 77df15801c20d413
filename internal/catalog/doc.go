// Package catalog manages the authoritative course metadata store backed by
// SQLite.
//
// Three tables make up the persisted state: courses (unique per code+edition),
// course_history (an append-only ledger of field-level changes), and
// course_matches (associations between catalog courses and external LMS
// courses). Updates flow through UpdateCourseWithHistory so the ledger and the
// course row can never drift apart; multi-row mutations run inside WithTx
// scoped transactions with guaranteed rollback.
package catalog
