package importer

import "strings"

// rowRecord is one tokenized data row keyed by its normalized headers, with
// positional access kept for canonical files.
type rowRecord struct {
	RowNumber int
	Headers   []string
	Fields    []string
	values    map[string]string
}

func newRowRecord(rowNumber int, headers, fields []string) rowRecord {
	values := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(fields) {
			values[normalizeHeader(header)] = fields[i]
		} else {
			values[normalizeHeader(header)] = ""
		}
	}
	return rowRecord{RowNumber: rowNumber, Headers: headers, Fields: fields, values: values}
}

// Get returns the first non-missing value among the given header keys,
// trimmed. Keys are matched on their normalized form.
func (r rowRecord) Get(keys ...string) string {
	for _, key := range keys {
		if value, ok := r.values[normalizeHeader(key)]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// At returns the trimmed field at a column position, or "" out of range.
func (r rowRecord) At(index int) string {
	if index < 0 || index >= len(r.Fields) {
		return ""
	}
	return strings.TrimSpace(r.Fields[index])
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
