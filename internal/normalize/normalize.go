package normalize

import (
	"strconv"
	"strings"
	"time"
)

// Value is a typed catalog field value. A nil *Value means null.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
}

// dateLayouts are tried in order; the first successful parse wins.
// Go's unpadded reference layouts also accept zero-padded input.
var dateLayouts = []string{"1/2/2006", "1/2/06", "2006-01-02"}

// numericKeep retains only the characters the numeric parser understands.
// Everything else (currency symbols, thousands separators, stray spaces)
// is formatting noise in the hand-edited source sheets.
func numericKeep(r rune) rune {
	if (r >= '0' && r <= '9') || r == '.' || r == '-' {
		return r
	}
	return -1
}

// Normalize coerces a raw cell value for the named field.
// Returns nil for blank cells, placeholder markers, and values that fail to
// parse under the field's kind. Parse failures are a skip, never an error.
func Normalize(field, raw string) *Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "-" || trimmed == "na" {
		return nil
	}

	switch KindOf(field) {
	case KindNumeric:
		cleaned := strings.Map(numericKeep, trimmed)
		number, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return &Value{Kind: KindNumeric, Number: number}
	case KindDate:
		for _, layout := range dateLayouts {
			if date, err := time.Parse(layout, trimmed); err == nil {
				return &Value{Kind: KindDate, Text: date.Format("2006-01-02")}
			}
		}
		return nil
	default:
		return &Value{Kind: KindText, Text: trimmed}
	}
}

// Canonical returns the canonical string form of a value: numbers without
// trailing zeros, dates in ISO form, text as-is. Nil values canonicalize to
// the empty string so null and empty compare equal for change detection.
func (v *Value) Canonical() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindNumeric {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

// TrimBOM strips a leading UTF-8 byte-order mark. CSV exports from
// spreadsheet tools routinely carry one on the first header token.
func TrimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
