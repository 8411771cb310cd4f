package export

import (
	"fmt"
	"io"
	"log"
	"strings"

	"golist/product"
)

// utf8BOM prefixes Excel-friendly output so Excel picks up UTF-8.
const utf8BOM = "\xef\xbb\xbf"

// SerializeOptions control the byte-level CSV shape.
type SerializeOptions struct {
	Delimiter rune
	// CRLF switches line endings to \r\n ("Excel-friendly" mode).
	CRLF bool
	// BOM prepends a UTF-8 byte-order mark.
	BOM bool
	// Strict aborts on the first mapper validation failure instead of
	// skipping the record.
	Strict bool
	// RowCap limits the number of exported records when positive.
	RowCap int
}

// Result reports what a CSV export actually wrote.
type Result struct {
	Written int
	Skipped int
}

// WriteCSV serializes records through the given mapper. Per-record
// validation failures are logged and skipped unless strict mode is on.
// The returned Result is never nil, even when writing fails.
func WriteCSV(w io.Writer, mapper Mapper, records []product.Record, mapOpts Options, serOpts SerializeOptions) (*Result, error) {
	result := &Result{}

	delimiter := serOpts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}
	lineEnd := "\n"
	if serOpts.CRLF {
		lineEnd = "\r\n"
	}

	if serOpts.BOM {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return result, fmt.Errorf("write BOM: %w", err)
		}
	}

	if err := writeRow(w, mapper.Headers(), delimiter, lineEnd); err != nil {
		return result, err
	}

	validator, _ := mapper.(Validator)
	for _, rec := range records {
		if serOpts.RowCap > 0 && result.Written >= serOpts.RowCap {
			break
		}
		if validator != nil {
			if err := validator.Validate(rec); err != nil {
				if serOpts.Strict {
					return result, fmt.Errorf("validate record for %s export: %w", mapper.Name(), err)
				}
				log.Printf("export: skipping record %d: %v", rec.ID, err)
				result.Skipped++
				continue
			}
		}
		if err := writeRow(w, mapper.Map(rec, mapOpts), delimiter, lineEnd); err != nil {
			return result, err
		}
		result.Written++
	}

	return result, nil
}

func writeRow(w io.Writer, values []string, delimiter rune, lineEnd string) error {
	escaped := make([]string, len(values))
	for i, value := range values {
		escaped[i] = EscapeField(value, delimiter)
	}
	if _, err := io.WriteString(w, strings.Join(escaped, string(delimiter))+lineEnd); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	return nil
}

// EscapeField applies CSV-injection protection, then standard quoting.
//
// A leading '=', '+', '-' or '@' would be executed as a formula by
// spreadsheet applications, so such values are prefixed with a literal
// apostrophe before quoting.
func EscapeField(value string, delimiter rune) string {
	guarded := false
	if value != "" {
		switch value[0] {
		case '=', '+', '-', '@':
			value = "'" + value
			guarded = true
		}
	}
	if guarded || strings.ContainsRune(value, delimiter) || strings.ContainsAny(value, "\"\n\r") {
		value = "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
	}
	return value
}
