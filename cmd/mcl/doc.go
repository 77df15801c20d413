// Command mcl maintains the master course list: a local catalog of
// continuing-education course metadata imported from CSV spreadsheets, with
// field-level change history and fuzzy matching against an LMS course
// catalog export.
package main
