package importer

import (
	"fmt"
	"strings"
)

// maxFieldLength is a sanity threshold; longer fields are flagged but kept.
const maxFieldLength = 32768

// Row is one tokenized line of a delimited file. Line is the 1-based
// physical line the row started on.
type Row struct {
	Line   int
	Fields []string
}

// Warning is a non-fatal tokenizer diagnostic.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Tokenize scans text into rows of fields. It never fails: malformed input
// degrades to best-effort rows plus warnings.
//
// Quote handling follows the usual CSV rules: a double quote toggles quoted
// state, except that "" inside a quoted field is a literal quote. The
// delimiter and line terminators (\n or \r\n) only split when outside
// quotes. Rows whose fields are all empty after trimming are dropped.
func Tokenize(text string, delimiter rune) ([]Row, []Warning) {
	text = strings.TrimPrefix(text, "\uFEFF")

	rows := make([]Row, 0, 64)
	warnings := make([]Warning, 0)

	var field strings.Builder
	fields := make([]string, 0, 16)
	inQuotes := false
	line := 1
	rowStart := 1

	endField := func() {
		value := field.String()
		if len(value) > maxFieldLength {
			warnings = append(warnings, Warning{
				Line:    line,
				Message: fmt.Sprintf("field exceeds %d characters (%d)", maxFieldLength, len(value)),
			})
		}
		if strings.ContainsRune(value, '\n') {
			warnings = append(warnings, Warning{Line: rowStart, Message: "field contains embedded line break"})
		}
		fields = append(fields, value)
		field.Reset()
	}

	endRow := func() {
		endField()
		if !rowIsBlank(fields) {
			row := Row{Line: rowStart, Fields: fields}
			rows = append(rows, row)
			fields = make([]string, 0, 16)
		} else {
			fields = fields[:0]
		}
		rowStart = line
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				// Escaped quote inside a quoted field.
				field.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == delimiter && !inQuotes:
			endField()
		case ch == '\r' && !inQuotes && i+1 < len(runes) && runes[i+1] == '\n':
			i++
			line++
			endRow()
		case ch == '\n' && !inQuotes:
			line++
			endRow()
		default:
			if ch == '\n' {
				line++
			}
			field.WriteRune(ch)
		}
	}

	if inQuotes {
		warnings = append(warnings, Warning{Line: rowStart, Message: "unterminated quoted field; row closed at end of input"})
	}
	if field.Len() > 0 || len(fields) > 0 {
		endRow()
	}

	return rows, warnings
}

func rowIsBlank(fields []string) bool {
	for _, value := range fields {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
