package product

import "time"

// Record is the normalized product row used across importers, outputs and
// storage.
type Record struct {
	ID int64

	// Identifiers. At least one of UPC/EAN/GTIN/SKU must be present.
	UPC  string
	EAN  string
	GTIN string
	SKU  string

	Title            string
	ShortDescription string
	Description      string
	Condition        string
	Type             string
	Brand            string
	Model            string
	MPN              string
	Manufacturer     string
	Color            string
	Size             string
	Category         string
	StoreCategory    string

	Quantity *float64

	// Physical attributes, unit-canonicalized.
	WeightGrams *float64
	LengthCM    *float64
	WidthCM     *float64
	HeightCM    *float64

	Price        *float64
	RegularPrice *float64
	Cost         *float64
	Currency     string
	TaxRate      *float64

	ReleaseDate *time.Time

	Images []string

	// AdditionalAttributes holds every canonical column that has no explicit
	// field mapping, keyed by column name, so unmapped data survives a
	// round-trip through export and re-import.
	AdditionalAttributes map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasIdentifier reports whether the record carries at least one of the
// alternate identifiers used for upsert matching.
func (r Record) HasIdentifier() bool {
	return r.UPC != "" || r.EAN != "" || r.GTIN != "" || r.SKU != ""
}

// PrimaryIdentifier returns the most specific identifier present, in
// UPC > EAN > GTIN > SKU order.
func (r Record) PrimaryIdentifier() string {
	for _, id := range []string{r.UPC, r.EAN, r.GTIN, r.SKU} {
		if id != "" {
			return id
		}
	}
	return ""
}

// Attribute returns an additional-attribute value by column name.
func (r Record) Attribute(column string) string {
	if r.AdditionalAttributes == nil {
		return ""
	}
	return r.AdditionalAttributes[column]
}

// FieldError describes a single-field transform failure. It is diagnostic
// data, not a row-fatal condition.
type FieldError struct {
	Field   string
	Value   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}
