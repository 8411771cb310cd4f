package importer

import (
	"strings"

	"golist/product"
)

// TransformKind names the conversion a field mapping applies. Keeping the
// kind as data (dispatched through a switch) keeps the mapping table itself
// serializable and testable apart from the transform code.
type TransformKind int

const (
	TransformNone TransformKind = iota
	TransformNumber
	TransformWeight
	TransformLength
	TransformDate
)

// FieldMapping is one declarative column -> record-field rule.
type FieldMapping struct {
	Column    string
	Field     string
	Transform TransformKind
	Required  bool
}

// Target field names used by FieldMapping entries.
const (
	FieldUPC              = "upc"
	FieldEAN              = "ean"
	FieldGTIN             = "gtin"
	FieldSKU              = "sku"
	FieldTitle            = "title"
	FieldShortDescription = "short_description"
	FieldDescription      = "description"
	FieldCondition        = "condition"
	FieldType             = "type"
	FieldBrand            = "brand"
	FieldModel            = "model"
	FieldMPN              = "mpn"
	FieldManufacturer     = "manufacturer"
	FieldColor            = "color"
	FieldSize             = "size"
	FieldCategory         = "category"
	FieldStoreCategory    = "store_category"
	FieldQuantity         = "quantity"
	FieldWeightGrams      = "weight_grams"
	FieldLengthCM         = "length_cm"
	FieldWidthCM          = "width_cm"
	FieldHeightCM         = "height_cm"
	FieldPrice            = "price"
	FieldRegularPrice     = "regular_price"
	FieldCost             = "cost"
	FieldCurrency         = "currency"
	FieldTaxRate          = "tax_rate"
	FieldReleaseDate      = "release_date"
	FieldImages           = "images"
)

// canonicalMappings binds canonical columns to typed record fields. Columns
// absent from this table (and not image slots) round-trip through the
// additional-attributes bag.
var canonicalMappings = []FieldMapping{
	{Column: ColQuantity, Field: FieldQuantity, Transform: TransformNumber},
	{Column: ColSKU, Field: FieldSKU},
	{Column: ColUPC, Field: FieldUPC, Required: true},
	{Column: ColCondition, Field: FieldCondition},
	{Column: ColTitle, Field: FieldTitle},
	{Column: ColType, Field: FieldType},
	{Column: ColBrand, Field: FieldBrand},
	{Column: ColModel, Field: FieldModel},
	{Column: ColShortDescription, Field: FieldShortDescription},
	{Column: ColDescription, Field: FieldDescription},
	{Column: "Category", Field: FieldCategory},
	{Column: "Store Category", Field: FieldStoreCategory},
	{Column: "Color", Field: FieldColor},
	{Column: "Size", Field: FieldSize},
	{Column: "MPN", Field: FieldMPN},
	{Column: "Manufacturer", Field: FieldManufacturer},
	{Column: ColWeight, Field: FieldWeightGrams, Transform: TransformWeight},
	{Column: ColLength, Field: FieldLengthCM, Transform: TransformLength},
	{Column: ColWidth, Field: FieldWidthCM, Transform: TransformLength},
	{Column: ColHeight, Field: FieldHeightCM, Transform: TransformLength},
	{Column: ColPrice, Field: FieldPrice, Transform: TransformNumber},
	{Column: ColRegularPrice, Field: FieldRegularPrice, Transform: TransformNumber},
	{Column: ColCost, Field: FieldCost, Transform: TransformNumber},
	{Column: ColCurrency, Field: FieldCurrency},
	{Column: "Tax Rate", Field: FieldTaxRate, Transform: TransformNumber},
	{Column: "Release Date", Field: FieldReleaseDate, Transform: TransformDate},
	{Column: ColEAN, Field: FieldEAN},
	{Column: ColGTIN, Field: FieldGTIN},
}

// TransformOptions carries caller defaults used when a cell embeds no unit.
type TransformOptions struct {
	DefaultWeightUnit string
	DefaultLengthUnit string
	MaxImages         int
}

var mappedColumns = buildMappedColumnSet()

func buildMappedColumnSet() map[string]bool {
	set := make(map[string]bool, len(canonicalMappings))
	for _, m := range canonicalMappings {
		set[m.Column] = true
	}
	return set
}

// mapCanonicalRow converts a canonical-compliant row into a normalized
// record. Transform failures degrade to nil fields plus diagnostics; they
// never fail the row on their own.
func mapCanonicalRow(row rowRecord, opts TransformOptions) (*product.Record, []product.FieldError) {
	rec := &product.Record{AdditionalAttributes: make(map[string]string)}
	diags := make([]product.FieldError, 0)

	for _, mapping := range canonicalMappings {
		raw := row.Get(mapping.Column)
		if raw == "" {
			continue
		}
		if diag := applyTransform(rec, mapping, raw, opts); diag != nil {
			diag.Field = mapping.Field
			diags = append(diags, *diag)
		}
	}

	rec.Images = collectCanonicalImages(row, opts.MaxImages)

	for _, column := range canonicalColumns {
		if mappedColumns[column] || IsImageColumn(column) || column == ColID {
			continue
		}
		if value := row.Get(column); value != "" {
			rec.AdditionalAttributes[column] = value
		}
	}

	return rec, diags
}

// applyTransform dispatches a mapping's transform kind and assigns the
// resulting typed value.
func applyTransform(rec *product.Record, mapping FieldMapping, raw string, opts TransformOptions) *product.FieldError {
	switch mapping.Transform {
	case TransformNumber:
		value, diag := parseNumber(raw)
		if diag != nil {
			return diag
		}
		setNumberField(rec, mapping.Field, value)
	case TransformWeight:
		value, diag := parseWeightGrams(raw, opts.DefaultWeightUnit)
		if diag != nil {
			return diag
		}
		rec.WeightGrams = value
	case TransformLength:
		value, diag := parseLengthCM(raw, opts.DefaultLengthUnit)
		if diag != nil {
			return diag
		}
		setLengthField(rec, mapping.Field, value)
	case TransformDate:
		value, diag := parseDate(raw)
		if diag != nil {
			return diag
		}
		rec.ReleaseDate = value
	default:
		setStringField(rec, mapping.Field, raw)
	}
	return nil
}

func setStringField(rec *product.Record, field, value string) {
	switch field {
	case FieldUPC:
		rec.UPC = value
	case FieldEAN:
		rec.EAN = value
	case FieldGTIN:
		rec.GTIN = value
	case FieldSKU:
		rec.SKU = value
	case FieldTitle:
		rec.Title = value
	case FieldShortDescription:
		rec.ShortDescription = value
	case FieldDescription:
		rec.Description = value
	case FieldCondition:
		rec.Condition = value
	case FieldType:
		rec.Type = value
	case FieldBrand:
		rec.Brand = value
	case FieldModel:
		rec.Model = value
	case FieldMPN:
		rec.MPN = value
	case FieldManufacturer:
		rec.Manufacturer = value
	case FieldColor:
		rec.Color = value
	case FieldSize:
		rec.Size = value
	case FieldCategory:
		rec.Category = value
	case FieldStoreCategory:
		rec.StoreCategory = value
	case FieldCurrency:
		rec.Currency = strings.ToUpper(value)
	}
}

func setNumberField(rec *product.Record, field string, value *float64) {
	switch field {
	case FieldQuantity:
		rec.Quantity = value
	case FieldPrice:
		rec.Price = value
	case FieldRegularPrice:
		rec.RegularPrice = value
	case FieldCost:
		rec.Cost = value
	case FieldTaxRate:
		rec.TaxRate = value
	}
}

func setLengthField(rec *product.Record, field string, value *float64) {
	switch field {
	case FieldLengthCM:
		rec.LengthCM = value
	case FieldWidthCM:
		rec.WidthCM = value
	case FieldHeightCM:
		rec.HeightCM = value
	}
}

// collectCanonicalImages gathers the numbered slots in order, then the
// aggregate comma-joined column, deduplicated and capped.
func collectCanonicalImages(row rowRecord, maxImages int) []string {
	if maxImages <= 0 {
		maxImages = 10
	}
	urls := make([]string, 0, maxImages)
	seen := make(map[string]bool)

	add := func(url string) {
		url = strings.TrimSpace(url)
		if url == "" || !strings.HasPrefix(url, "http") || seen[url] || len(urls) >= maxImages {
			return
		}
		seen[url] = true
		urls = append(urls, url)
	}

	for _, slot := range ImageSlotColumns() {
		add(row.Get(slot))
	}
	for _, url := range strings.Split(row.Get(ColImages), ",") {
		add(url)
	}
	return urls
}
