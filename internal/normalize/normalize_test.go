package normalize

import "testing"

func TestNormalizeNullMarkers(t *testing.T) {
	for _, raw := range []string{"", "   ", "-", "na", "\t"} {
		if got := Normalize(FieldCFPCredits, raw); got != nil {
			t.Fatalf("Normalize(%q) = %#v, expected nil", raw, got)
		}
		if got := Normalize(FieldNotes, raw); got != nil {
			t.Fatalf("Normalize(%q) on text field = %#v, expected nil", raw, got)
		}
	}
}

func TestNormalizeNumeric(t *testing.T) {
	cases := []struct {
		raw      string
		expected float64
		null     bool
	}{
		{"3", 3, false},
		{"3.5", 3.5, false},
		{"3,500", 3500, false},
		// Comma stripping concatenates digits; the stated policy keeps
		// only digits, dot, and minus, so "3,5" survives as 35.
		{"3,5", 35, false},
		{"$49.00", 49, false},
		{" 12 ", 12, false},
		{"abc", 0, true},
		{"..", 0, true},
		{"1.2.3", 0, true},
	}
	for _, tc := range cases {
		got := Normalize(FieldCPACredits, tc.raw)
		if tc.null {
			if got != nil {
				t.Fatalf("Normalize(%q) = %#v, expected nil", tc.raw, got)
			}
			continue
		}
		if got == nil || got.Kind != KindNumeric || got.Number != tc.expected {
			t.Fatalf("Normalize(%q) = %#v, expected %v", tc.raw, got, tc.expected)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
		null     bool
	}{
		{"3/15/2024", "2024-03-15", false},
		{"03/15/2024", "2024-03-15", false},
		{"3/15/24", "2024-03-15", false},
		{"2024-03-15", "2024-03-15", false},
		{"March 15", "", true},
		{"15/33/2024", "", true},
	}
	for _, tc := range cases {
		got := Normalize(FieldAnnualUpdate, tc.raw)
		if tc.null {
			if got != nil {
				t.Fatalf("Normalize(%q) = %#v, expected nil", tc.raw, got)
			}
			continue
		}
		if got == nil || got.Kind != KindDate || got.Text != tc.expected {
			t.Fatalf("Normalize(%q) = %#v, expected %q", tc.raw, got, tc.expected)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	got := Normalize(FieldTitle, "  Retirement Planning  ")
	if got == nil || got.Text != "Retirement Planning" {
		t.Fatalf("expected trimmed text, got %#v", got)
	}
}

func TestCanonical(t *testing.T) {
	cases := []struct {
		value    *Value
		expected string
	}{
		{nil, ""},
		{&Value{Kind: KindNumeric, Number: 3.5}, "3.5"},
		{&Value{Kind: KindNumeric, Number: 3}, "3"},
		{&Value{Kind: KindDate, Text: "2024-03-15"}, "2024-03-15"},
		{&Value{Kind: KindText, Text: "notes"}, "notes"},
	}
	for _, tc := range cases {
		if got := tc.value.Canonical(); got != tc.expected {
			t.Fatalf("Canonical(%#v) = %q, expected %q", tc.value, got, tc.expected)
		}
	}
}

func TestTrimBOM(t *testing.T) {
	if got := TrimBOM("\ufeffFour Digit"); got != "Four Digit" {
		t.Fatalf("expected BOM stripped, got %q", got)
	}
	if got := TrimBOM("Four Digit"); got != "Four Digit" {
		t.Fatalf("expected unchanged, got %q", got)
	}
}

func TestFieldRegistry(t *testing.T) {
	fields := Fields()
	if len(fields) != len(fieldKinds) {
		t.Fatalf("field order lists %d fields, registry has %d", len(fields), len(fieldKinds))
	}
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if !IsKnownField(field) {
			t.Fatalf("ordered field %q missing from registry", field)
		}
		if _, dup := seen[field]; dup {
			t.Fatalf("duplicate field %q in order", field)
		}
		seen[field] = struct{}{}
	}
	if KindOf(FieldAnnualUpdate) != KindDate {
		t.Fatal("annual_update should be a date field")
	}
	if KindOf("unknown_field") != KindText {
		t.Fatal("unknown fields should default to text")
	}
}
