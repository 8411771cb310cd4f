package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golist/product"
)

// Transform helpers are total: they never panic and never fail a row. An
// unparsable cell yields a nil value plus a FieldError diagnostic.

var weightToGrams = map[string]float64{
	"g":  1,
	"kg": 1000,
	"lb": 453.592,
	"oz": 28.3495,
}

var lengthToCM = map[string]float64{
	"cm": 1,
	"mm": 0.1,
	"in": 2.54,
	"ft": 30.48,
}

var valueWithUnitPattern = regexp.MustCompile(`^(-?[0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z]*)$`)

// parseMeasure splits a cell like "100g" or "2.2 lb" into value and unit.
// When the cell carries no unit suffix, defaultUnit applies.
func parseMeasure(raw, defaultUnit string) (float64, string, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	match := valueWithUnitPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return 0, "", fmt.Errorf("not a measurement: %q", raw)
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse measurement %q: %w", raw, err)
	}
	unit := strings.ToLower(match[2])
	if unit == "" {
		unit = strings.ToLower(strings.TrimSpace(defaultUnit))
	}
	return value, unit, nil
}

func parseWeightGrams(raw, defaultUnit string) (*float64, *product.FieldError) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, unit, err := parseMeasure(raw, defaultUnit)
	if err != nil {
		return nil, &product.FieldError{Field: "weight", Value: raw, Message: err.Error()}
	}
	factor, ok := weightToGrams[unit]
	if !ok {
		return nil, &product.FieldError{Field: "weight", Value: raw, Message: fmt.Sprintf("unknown weight unit %q", unit)}
	}
	grams := value * factor
	return &grams, nil
}

func parseLengthCM(raw, defaultUnit string) (*float64, *product.FieldError) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, unit, err := parseMeasure(raw, defaultUnit)
	if err != nil {
		return nil, &product.FieldError{Field: "length", Value: raw, Message: err.Error()}
	}
	factor, ok := lengthToCM[unit]
	if !ok {
		return nil, &product.FieldError{Field: "length", Value: raw, Message: fmt.Sprintf("unknown length unit %q", unit)}
	}
	cm := value * factor
	return &cm, nil
}

var truthyTokens = map[string]bool{
	"yes":  true,
	"true": true,
	"1":    true,
	"y":    true,
	"t":    true,
}

// parseBool never fails: absence of a truthy token is a valid false.
func parseBool(raw string) bool {
	return truthyTokens[strings.ToLower(strings.TrimSpace(raw))]
}

// parseNumber strips thousands-separator commas and an optional leading
// currency sign. Returns nil (never 0, never NaN) when the cell does not
// parse, so callers can distinguish "missing" from "zero".
func parseNumber(raw string) (*float64, *product.FieldError) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil, nil
	}
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, &product.FieldError{Field: "number", Value: raw, Message: fmt.Sprintf("not a number: %q", raw)}
	}
	return &value, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"02.01.2006",
	"Jan 2, 2006",
}

// parseDate returns nil rather than an invalid-date sentinel on failure.
func parseDate(raw string) (*time.Time, *product.FieldError) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, cleaned, time.UTC); err == nil {
			return &parsed, nil
		}
	}
	return nil, &product.FieldError{Field: "date", Value: raw, Message: fmt.Sprintf("unsupported date format: %q", raw)}
}
