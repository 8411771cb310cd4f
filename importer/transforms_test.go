package importer

import (
	"math"
	"testing"
)

func TestParseWeightGrams_Conversions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw         string
		defaultUnit string
		want        float64
	}{
		{"1kg", "g", 1000},
		{"1 kg", "g", 1000},
		{"1lb", "g", 453.592},
		{"1oz", "g", 28.3495},
		{"100g", "g", 100},
		{"100", "g", 100},
		{"2.2", "lb", 997.9024},
	}

	for _, tc := range cases {
		got, diag := parseWeightGrams(tc.raw, tc.defaultUnit)
		if diag != nil {
			t.Fatalf("parseWeightGrams(%q, %q): %v", tc.raw, tc.defaultUnit, diag)
		}
		if got == nil || math.Abs(*got-tc.want) > 1e-9 {
			t.Fatalf("parseWeightGrams(%q, %q) = %v, want %v", tc.raw, tc.defaultUnit, got, tc.want)
		}
	}
}

func TestParseWeightGrams_Invalid(t *testing.T) {
	t.Parallel()

	got, diag := parseWeightGrams("heavy", "g")
	if got != nil || diag == nil {
		t.Fatalf("expected nil value plus diagnostic, got %v, %v", got, diag)
	}

	got, diag = parseWeightGrams("", "g")
	if got != nil || diag != nil {
		t.Fatalf("empty cell must be nil without diagnostic, got %v, %v", got, diag)
	}
}

func TestParseLengthCM_Conversions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw         string
		defaultUnit string
		want        float64
	}{
		{"1in", "cm", 2.54},
		{"10mm", "cm", 1},
		{"1ft", "cm", 30.48},
		{"5", "cm", 5},
		{"2", "in", 5.08},
	}

	for _, tc := range cases {
		got, diag := parseLengthCM(tc.raw, tc.defaultUnit)
		if diag != nil {
			t.Fatalf("parseLengthCM(%q, %q): %v", tc.raw, tc.defaultUnit, diag)
		}
		if got == nil || math.Abs(*got-tc.want) > 1e-9 {
			t.Fatalf("parseLengthCM(%q, %q) = %v, want %v", tc.raw, tc.defaultUnit, got, tc.want)
		}
	}
}

func TestParseBool_TruthyTokensOnly(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"yes", "TRUE", "1", "y", "T", " Yes "} {
		if !parseBool(raw) {
			t.Fatalf("parseBool(%q) must be true", raw)
		}
	}
	for _, raw := range []string{"no", "0", "", "maybe", "2"} {
		if parseBool(raw) {
			t.Fatalf("parseBool(%q) must be false", raw)
		}
	}
}

func TestParseNumber_ThousandsAndFailures(t *testing.T) {
	t.Parallel()

	got, diag := parseNumber("1,234.50")
	if diag != nil || got == nil || *got != 1234.5 {
		t.Fatalf("thousands separator: got %v, %v", got, diag)
	}

	got, diag = parseNumber("$19.99")
	if diag != nil || got == nil || *got != 19.99 {
		t.Fatalf("currency sign: got %v, %v", got, diag)
	}

	got, diag = parseNumber("abc")
	if got != nil || diag == nil {
		t.Fatalf("failures must be nil plus diagnostic, not zero: got %v, %v", got, diag)
	}

	got, diag = parseNumber("")
	if got != nil || diag != nil {
		t.Fatalf("empty cell is missing, not an error: got %v, %v", got, diag)
	}
}

func TestParseDate_LayoutsAndFailure(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"2026-03-05", "03/05/2026", "2026-03-05 10:30:00"} {
		got, diag := parseDate(raw)
		if diag != nil || got == nil {
			t.Fatalf("parseDate(%q): %v, %v", raw, got, diag)
		}
	}

	got, diag := parseDate("not a date")
	if got != nil || diag == nil {
		t.Fatalf("invalid date must be nil plus diagnostic, got %v, %v", got, diag)
	}
}
