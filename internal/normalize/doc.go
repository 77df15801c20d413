// Package normalize coerces raw spreadsheet cell values into typed catalog
// field values.
//
// The source spreadsheets are hand-edited, so the policy is deliberately
// lenient: blank cells and placeholder markers become nulls, numeric cells are
// stripped of formatting noise before parsing, and values that still fail to
// parse are dropped rather than treated as errors.
package normalize
