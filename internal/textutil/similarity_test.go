package textutil

import "testing"

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"Retirement Planning: 2024 Update!", "retirement planning 2024 update"},
		{"  CPA   Ethics  ", "cpa ethics"},
		{"Tax-Law (Advanced)", "taxlaw advanced"},
		{"", ""},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := NormalizeTitle(tc.input); got != tc.expected {
			t.Fatalf("NormalizeTitle(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestSimilarityPercent(t *testing.T) {
	if got := SimilarityPercent("hello", "hello"); got != 100 {
		t.Fatalf("identical strings should score 100, got %v", got)
	}
	if got := SimilarityPercent("", ""); got != 0 {
		t.Fatalf("empty strings should score 0, got %v", got)
	}
	if got := SimilarityPercent("abc", "xyz"); got != 0 {
		t.Fatalf("disjoint strings should score 0, got %v", got)
	}

	// Shared prefix and suffix around a differing middle.
	got := SimilarityPercent("retirement planning 2024", "retirement planning 2025")
	if got < 90 || got >= 100 {
		t.Fatalf("near-identical titles should score in the 90s, got %v", got)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "ab", 2},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}
	for _, tc := range cases {
		if got := Levenshtein(tc.a, tc.b); got != tc.expected {
			t.Fatalf("Levenshtein(%q, %q) = %d, expected %d", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 3); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if got := Truncate("ab", 10); got != "ab" {
		t.Fatalf("expected ab, got %q", got)
	}
}
