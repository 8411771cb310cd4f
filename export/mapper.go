package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golist/product"
)

// Options are the caller-chosen mapping parameters. Mappers are stateless;
// every Map call is a pure function of the record plus these options.
type Options struct {
	Currency         string
	CategoryOverride string
	TaxRate          float64
}

// Mapper converts normalized records into ordered rows for one target
// format. Map must never fail on missing optional fields; it substitutes
// empty-string/zero defaults instead.
type Mapper interface {
	Name() string
	Headers() []string
	Map(rec product.Record, opts Options) []string
}

// Validator is implemented by mappers that reject individual records. A
// failing record is skipped (or aborts the export in strict mode); it never
// poisons the rest of the batch.
type Validator interface {
	Validate(rec product.Record) error
}

func SupportedFormats() []string {
	return []string{"cpi", "baselinker", "ebay"}
}

func MapperByName(name string) (Mapper, error) {
	switch strings.TrimSpace(strings.ToLower(name)) {
	case "cpi":
		return &CPIMapper{}, nil
	case "baselinker":
		return &BaselinkerMapper{}, nil
	case "ebay":
		return &EbayMapper{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s (supported: %s)", name, strings.Join(SupportedFormats(), ", "))
	}
}

func formatNumber(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func formatPrice(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', 2, 64)
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format("2006-01-02")
}

func truncate(value string, limit int) string {
	if limit <= 0 || len([]rune(value)) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit])
}
