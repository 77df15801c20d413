// Package csvimport ingests the master course spreadsheet. A batch maps the
// spreadsheet's header aliases onto catalog fields, normalizes every cell,
// repairs rows with a recoverable natural key, and upserts each row through
// the history-tracking update path. The whole batch commits or rolls back as
// one transaction; a file lock keeps concurrent imports from interleaving.
package csvimport
