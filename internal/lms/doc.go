// Package lms reads the learning-management-system course catalog from a
// SQLite export of its posts and postmeta tables. The catalog is the match
// target: local courses link to published LMS courses by post ID.
package lms
