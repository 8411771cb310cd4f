package importer

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"golist/config"
	"golist/product"
)

// Store is the product store the orchestrator upserts into. A nil record
// with a nil error from FindByIdentifiers means "no match".
type Store interface {
	FindByIdentifiers(upc, ean, sku string) (*product.Record, error)
	CreateProduct(rec *product.Record) (int64, error)
	UpdateProduct(rec *product.Record, modified []string) error
}

// Action is the per-row outcome kind.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
	ActionError   Action = "error"
)

// RowResult is the outcome of one data row. Expected failures travel here
// as data; the orchestrator loop never aborts on them.
type RowResult struct {
	Row            int      `json:"row"`
	Identifier     string   `json:"identifier,omitempty"`
	Action         Action   `json:"action"`
	Error          string   `json:"error,omitempty"`
	Data           string   `json:"data,omitempty"`
	ModifiedFields []string `json:"modifiedFields,omitempty"`
}

// Summary aggregates an import run. Success is a threshold judgment over
// the error-row share, not zero-tolerance.
type Summary struct {
	TotalRows int         `json:"total"`
	Processed int         `json:"processed"`
	Created   int         `json:"created"`
	Updated   int         `json:"updated"`
	Skipped   int         `json:"skipped"`
	Errors    int         `json:"errors"`
	Success   bool        `json:"success"`
	Canonical bool        `json:"canonical"`
	Rows      []RowResult `json:"rows"`
	Warnings  []string    `json:"warnings,omitempty"`
}

// Service drives the tokenizer, analyzer and mapping table over one file
// and upserts the results. The engine is synchronous: rows are processed
// strictly in file order.
type Service struct {
	store Store
	cfg   config.ImportConfig
}

func NewService(store Store, cfg config.ImportConfig) *Service {
	return &Service{store: store, cfg: cfg}
}

// ImportFile imports one delimited-text file. The only fatal errors are a
// file that cannot be read as text at all or one with no rows; everything
// else degrades to per-row results.
func (s *Service) ImportFile(text string) (*Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty import file")
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("import file is not valid UTF-8 text")
	}

	// Two-phase: tokenize the whole file before touching any row, so a
	// corrupt tail cannot hide diagnostics for earlier rows.
	rows, warnings := Tokenize(text, sniffDelimiter(text))
	if len(rows) == 0 {
		return nil, fmt.Errorf("import file contains no rows")
	}

	summary := &Summary{Rows: make([]RowResult, 0, len(rows)-1)}
	for _, warning := range warnings {
		log.Printf("importer: %s", warning)
		summary.Warnings = append(summary.Warnings, warning.String())
	}

	headers := make([]string, len(rows[0].Fields))
	for i, header := range rows[0].Fields {
		headers[i] = strings.ToLower(strings.TrimSpace(header))
	}

	layout := ValidateHeaderLayout(headers)
	summary.Canonical = layout.IsValid

	var guess ColumnGuess
	if !layout.IsValid {
		guess = AnalyzeColumns(headers, sampleRow(rows))
	}

	opts := TransformOptions{
		DefaultWeightUnit: s.cfg.DefaultWeightUnit,
		DefaultLengthUnit: s.cfg.DefaultLengthUnit,
		MaxImages:         s.cfg.MaxImages,
	}

	for _, row := range rows[1:] {
		summary.TotalRows++
		result := s.processRow(row, headers, layout.IsValid, guess, opts)
		summary.Rows = append(summary.Rows, result)
		switch result.Action {
		case ActionCreated:
			summary.Created++
			summary.Processed++
		case ActionUpdated:
			summary.Updated++
			summary.Processed++
		case ActionSkipped:
			summary.Skipped++
			summary.Processed++
		case ActionError:
			summary.Errors++
		}
	}

	threshold := s.cfg.ErrorThreshold
	if threshold <= 0 {
		threshold = config.DefaultErrorThreshold
	}
	summary.Success = float64(summary.Errors) < threshold*float64(summary.TotalRows)
	return summary, nil
}

// processRow handles one data row end to end and reports the outcome as
// data. Any failure is local to the row.
func (s *Service) processRow(row Row, headers []string, canonical bool, guess ColumnGuess, opts TransformOptions) RowResult {
	result := RowResult{Row: row.Line, Action: ActionError, Data: excerpt(row.Fields)}

	if len(row.Fields) != len(headers) {
		result.Error = fmt.Sprintf("column count mismatch: row has %d fields, header has %d", len(row.Fields), len(headers))
		return result
	}

	record := newRowRecord(row.Line, headers, row.Fields)

	var rec *product.Record
	var diags []product.FieldError
	if canonical {
		rec, diags = mapCanonicalRow(record, opts)
	} else {
		rec, diags = mapHeuristicRow(record, guess, opts)
	}
	for _, diag := range diags {
		log.Printf("importer: row %d: %s (value %q)", row.Line, diag.Error(), diag.Value)
	}

	if err := validateRecord(rec); err != nil {
		result.Error = err.Error()
		return result
	}
	result.Identifier = rec.PrimaryIdentifier()

	existing, err := s.store.FindByIdentifiers(rec.UPC, rec.EAN, rec.SKU)
	if err != nil {
		result.Error = fmt.Sprintf("store lookup: %v", err)
		return result
	}

	if existing == nil {
		if _, err := s.store.CreateProduct(rec); err != nil {
			result.Error = fmt.Sprintf("create product: %v", err)
			return result
		}
		result.Action = ActionCreated
		return result
	}

	modified := mergeRecords(existing, rec, s.cfg.OverwriteWithEmpty)
	if len(modified) == 0 {
		result.Action = ActionSkipped
		return result
	}
	if err := s.store.UpdateProduct(existing, modified); err != nil {
		result.Error = fmt.Sprintf("update product: %v", err)
		return result
	}
	result.Action = ActionUpdated
	result.ModifiedFields = modified
	return result
}

// validateRecord applies row-level validation: a title and at least one
// identifier are required, and numeric fields must be non-negative.
func validateRecord(rec *product.Record) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("missing required field: title")
	}
	if !rec.HasIdentifier() {
		return fmt.Errorf("missing identifier: need one of UPC, EAN, GTIN or SKU")
	}
	for _, check := range []struct {
		name  string
		value *float64
	}{
		{"quantity", rec.Quantity},
		{"price", rec.Price},
		{"cost", rec.Cost},
		{"weight", rec.WeightGrams},
	} {
		if check.value != nil && *check.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %v", check.name, *check.value)
		}
	}
	return nil
}

// mergeRecords applies the incoming row onto an existing record and returns
// the names of the fields it changed. With overwriteWithEmpty false (the
// default policy) empty incoming values leave existing values alone.
func mergeRecords(existing, incoming *product.Record, overwriteWithEmpty bool) []string {
	modified := make([]string, 0, 8)

	mergeString := func(field string, dst *string, src string) {
		if src == "" && !overwriteWithEmpty {
			return
		}
		if *dst != src {
			*dst = src
			modified = append(modified, field)
		}
	}
	mergeNumber := func(field string, dst **float64, src *float64) {
		if src == nil {
			return
		}
		if *dst == nil || **dst != *src {
			*dst = src
			modified = append(modified, field)
		}
	}

	mergeString(FieldUPC, &existing.UPC, incoming.UPC)
	mergeString(FieldEAN, &existing.EAN, incoming.EAN)
	mergeString(FieldGTIN, &existing.GTIN, incoming.GTIN)
	mergeString(FieldSKU, &existing.SKU, incoming.SKU)
	mergeString(FieldTitle, &existing.Title, incoming.Title)
	mergeString(FieldShortDescription, &existing.ShortDescription, incoming.ShortDescription)
	mergeString(FieldDescription, &existing.Description, incoming.Description)
	mergeString(FieldCondition, &existing.Condition, incoming.Condition)
	mergeString(FieldType, &existing.Type, incoming.Type)
	mergeString(FieldBrand, &existing.Brand, incoming.Brand)
	mergeString(FieldModel, &existing.Model, incoming.Model)
	mergeString(FieldMPN, &existing.MPN, incoming.MPN)
	mergeString(FieldManufacturer, &existing.Manufacturer, incoming.Manufacturer)
	mergeString(FieldColor, &existing.Color, incoming.Color)
	mergeString(FieldSize, &existing.Size, incoming.Size)
	mergeString(FieldCategory, &existing.Category, incoming.Category)
	mergeString(FieldStoreCategory, &existing.StoreCategory, incoming.StoreCategory)
	mergeString(FieldCurrency, &existing.Currency, incoming.Currency)

	mergeNumber(FieldQuantity, &existing.Quantity, incoming.Quantity)
	mergeNumber(FieldWeightGrams, &existing.WeightGrams, incoming.WeightGrams)
	mergeNumber(FieldLengthCM, &existing.LengthCM, incoming.LengthCM)
	mergeNumber(FieldWidthCM, &existing.WidthCM, incoming.WidthCM)
	mergeNumber(FieldHeightCM, &existing.HeightCM, incoming.HeightCM)
	mergeNumber(FieldPrice, &existing.Price, incoming.Price)
	mergeNumber(FieldRegularPrice, &existing.RegularPrice, incoming.RegularPrice)
	mergeNumber(FieldCost, &existing.Cost, incoming.Cost)
	mergeNumber(FieldTaxRate, &existing.TaxRate, incoming.TaxRate)

	if incoming.ReleaseDate != nil &&
		(existing.ReleaseDate == nil || !existing.ReleaseDate.Equal(*incoming.ReleaseDate)) {
		existing.ReleaseDate = incoming.ReleaseDate
		modified = append(modified, FieldReleaseDate)
	}

	if len(incoming.Images) > 0 && !equalStrings(existing.Images, incoming.Images) {
		existing.Images = incoming.Images
		modified = append(modified, FieldImages)
	}

	for key, value := range incoming.AdditionalAttributes {
		if value == "" && !overwriteWithEmpty {
			continue
		}
		if existing.AdditionalAttributes == nil {
			existing.AdditionalAttributes = make(map[string]string)
		}
		if existing.AdditionalAttributes[key] != value {
			existing.AdditionalAttributes[key] = value
			modified = append(modified, "attribute:"+key)
		}
	}

	return modified
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sniffDelimiter picks semicolon when the header line carries semicolons
// but no commas; comma otherwise.
func sniffDelimiter(text string) rune {
	firstLine := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		firstLine = text[:i]
	}
	if !strings.Contains(firstLine, ",") && strings.Contains(firstLine, ";") {
		return ';'
	}
	return ','
}

// sampleRow returns the first data row, used as the analyzer's content
// sample.
func sampleRow(rows []Row) []string {
	if len(rows) > 1 {
		return rows[1].Fields
	}
	return nil
}

// excerpt keeps a short, loggable slice of the raw row for error reporting.
func excerpt(fields []string) string {
	joined := strings.Join(fields, ",")
	if len(joined) > 120 {
		joined = joined[:120] + "..."
	}
	return joined
}
