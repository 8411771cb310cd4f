package importer

import "strings"

// The canonical product interchange ("CPI") schema: a fixed, ordered
// 91-column layout. Order is positionally significant when deciding whether
// an incoming file is canonical-compliant.

// UnitKind tags the measurement a unit-bearing column carries.
type UnitKind int

const (
	UnitNone UnitKind = iota
	UnitWeight
	UnitLength
)

// MaxImageSlots is the number of numbered image columns; the aggregate
// Images column accepts a comma-joined list on top of these.
const MaxImageSlots = 12

const (
	ColQuantity         = "Quantity"
	ColSKU              = "SKU"
	ColUPC              = "UPC"
	ColCondition        = "Condition"
	ColTitle            = "Title"
	ColType             = "Type"
	ColBrand            = "Brand"
	ColModel            = "Model"
	ColShortDescription = "Short Description"
	ColDescription      = "Description"
	ColWeight           = "Weight (unit)"
	ColLength           = "Length (unit)"
	ColWidth            = "Width (unit)"
	ColHeight           = "Height (unit)"
	ColPrice            = "Price"
	ColRegularPrice     = "Regular Price"
	ColCost             = "Cost"
	ColCurrency         = "Currency"
	ColImages           = "Images"
	ColEAN              = "EAN"
	ColGTIN             = "GTIN"
	ColID               = "ID"
)

// canonicalColumns is the full ordered schema. Do not reorder: position is
// part of the interchange contract.
var canonicalColumns = []string{
	ColQuantity,
	ColSKU,
	ColUPC,
	ColCondition,
	ColTitle,
	ColType,
	ColBrand,
	ColModel,
	ColShortDescription,
	ColDescription,
	"Features",
	"Keywords",
	"Category",
	"Subcategory",
	"Store Category",
	"Color",
	"Size",
	"Material",
	"Style",
	"MPN",
	"Manufacturer",
	"Country of Manufacture",
	ColWeight,
	ColLength,
	ColWidth,
	ColHeight,
	ColPrice,
	ColRegularPrice,
	"Sale Price",
	ColCost,
	ColCurrency,
	"MSRP",
	"MAP",
	"Tax Class",
	"Tax Rate",
	"Quantity Sold",
	"Min Order Quantity",
	"Availability",
	"Lead Time",
	"Restock Date",
	"Release Date",
	"Discontinued",
	"New Arrival",
	"Featured",
	"On Sale",
	"Free Shipping",
	"Shipping Price",
	"Shipping Method",
	"Handling Time",
	"Package Contents",
	"Warranty",
	"Condition Note",
	"Image 1",
	"Image 2",
	"Image 3",
	"Image 4",
	"Image 5",
	"Image 6",
	"Image 7",
	"Image 8",
	"Image 9",
	"Image 10",
	"Image 11",
	"Image 12",
	ColImages,
	"Video URL",
	"Warehouse Location",
	"Bin Number",
	"Lot Number",
	"Serial Number",
	"Supplier",
	"Supplier SKU",
	"Supplier Price",
	"Date Added",
	"Last Modified",
	"Visibility",
	"Meta Title",
	"Meta Description",
	"Meta Keywords",
	"Slug",
	"Variant Group",
	"Variant Name",
	"Parent SKU",
	"Attribute Set",
	"Custom Field 1",
	"Custom Field 2",
	"Custom Field 3",
	"Tags",
	ColEAN,
	ColGTIN,
	ColID,
}

var (
	requiredColumns = map[string]bool{ColUPC: true}

	booleanColumns = map[string]bool{
		"Discontinued":  true,
		"New Arrival":   true,
		"Featured":      true,
		"On Sale":       true,
		"Free Shipping": true,
	}

	priceColumns = map[string]bool{
		ColPrice:         true,
		ColRegularPrice:  true,
		"Sale Price":     true,
		ColCost:          true,
		"MSRP":           true,
		"MAP":            true,
		"Shipping Price": true,
		"Supplier Price": true,
	}

	dateColumns = map[string]bool{
		"Restock Date":  true,
		"Release Date":  true,
		"Date Added":    true,
		"Last Modified": true,
	}

	unitColumns = map[string]UnitKind{
		ColWeight: UnitWeight,
		ColLength: UnitLength,
		ColWidth:  UnitLength,
		ColHeight: UnitLength,
	}

	canonicalIndex = buildCanonicalIndex()
)

func buildCanonicalIndex() map[string]int {
	index := make(map[string]int, len(canonicalColumns))
	for i, name := range canonicalColumns {
		index[strings.ToLower(name)] = i
	}
	return index
}

// Columns returns a copy of the ordered canonical schema.
func Columns() []string {
	out := make([]string, len(canonicalColumns))
	copy(out, canonicalColumns)
	return out
}

// IndexOf returns the canonical position of a column name, case-insensitive,
// or -1 when the name is not part of the schema.
func IndexOf(name string) int {
	if i, ok := canonicalIndex[strings.ToLower(strings.TrimSpace(name))]; ok {
		return i
	}
	return -1
}

// IsRequiredColumn reports whether a canonical column must be present and
// non-empty in every imported row.
func IsRequiredColumn(name string) bool { return requiredColumns[name] }

// IsBooleanColumn reports whether a canonical column holds a truthy token.
func IsBooleanColumn(name string) bool { return booleanColumns[name] }

// IsPriceColumn reports whether a canonical column holds a monetary amount.
func IsPriceColumn(name string) bool { return priceColumns[name] }

// IsDateColumn reports whether a canonical column holds a date.
func IsDateColumn(name string) bool { return dateColumns[name] }

// UnitKindOf returns the measurement kind of a unit-bearing column, or
// UnitNone for every other column.
func UnitKindOf(name string) UnitKind { return unitColumns[name] }

// IsImageColumn reports whether a canonical column is one of the numbered
// image slots or the aggregate Images column.
func IsImageColumn(name string) bool {
	if name == ColImages {
		return true
	}
	return strings.HasPrefix(name, "Image ")
}

// ImageSlotColumns returns the numbered image slot names in order.
func ImageSlotColumns() []string {
	slots := make([]string, 0, MaxImageSlots)
	for _, name := range canonicalColumns {
		if name != ColImages && IsImageColumn(name) {
			slots = append(slots, name)
		}
	}
	return slots
}

// LayoutReport is the result of validating a file's header row against the
// canonical layout.
type LayoutReport struct {
	IsValid    bool
	Missing    []string
	Extra      []string
	OutOfOrder []string
}

// ValidateHeaderLayout checks the provided headers against the canonical
// schema. It is pure and order-sensitive: a file is canonical-compliant only
// when every column is present, no extras exist, and positions match.
func ValidateHeaderLayout(headers []string) LayoutReport {
	report := LayoutReport{}

	provided := make(map[string]int, len(headers))
	for i, header := range headers {
		provided[strings.ToLower(strings.TrimSpace(header))] = i
	}

	for i, name := range canonicalColumns {
		at, ok := provided[strings.ToLower(name)]
		if !ok {
			report.Missing = append(report.Missing, name)
			continue
		}
		if at != i {
			report.OutOfOrder = append(report.OutOfOrder, name)
		}
	}

	for _, header := range headers {
		if IndexOf(header) < 0 {
			report.Extra = append(report.Extra, strings.TrimSpace(header))
		}
	}

	report.IsValid = len(report.Missing) == 0 && len(report.Extra) == 0 && len(report.OutOfOrder) == 0 &&
		len(headers) == len(canonicalColumns)
	return report
}
