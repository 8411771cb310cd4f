package export

import (
	"fmt"
	"strconv"
	"strings"

	"golist/importer"
	"golist/product"
)

// CPIMapper emits the full canonical 91-column interchange layout. A record
// exported here and re-imported through the canonical path yields an equal
// record, so CPI doubles as the backup/round-trip format.
type CPIMapper struct{}

func (m *CPIMapper) Name() string { return "cpi" }

func (m *CPIMapper) Headers() []string { return importer.Columns() }

func (m *CPIMapper) Validate(rec product.Record) error {
	if strings.TrimSpace(rec.UPC) == "" {
		return fmt.Errorf("record %d: missing required column UPC", rec.ID)
	}
	return nil
}

func (m *CPIMapper) Map(rec product.Record, opts Options) []string {
	columns := importer.Columns()
	values := make([]string, len(columns))
	slots := importer.ImageSlotColumns()

	for i, column := range columns {
		switch column {
		case importer.ColQuantity:
			values[i] = formatNumber(rec.Quantity)
		case importer.ColSKU:
			values[i] = rec.SKU
		case importer.ColUPC:
			values[i] = rec.UPC
		case importer.ColCondition:
			values[i] = rec.Condition
		case importer.ColTitle:
			values[i] = rec.Title
		case importer.ColType:
			values[i] = rec.Type
		case importer.ColBrand:
			values[i] = rec.Brand
		case importer.ColModel:
			values[i] = rec.Model
		case importer.ColShortDescription:
			values[i] = rec.ShortDescription
		case importer.ColDescription:
			values[i] = rec.Description
		case "Category":
			values[i] = categoryOrOverride(rec.Category, opts)
		case "Store Category":
			values[i] = rec.StoreCategory
		case "Color":
			values[i] = rec.Color
		case "Size":
			values[i] = rec.Size
		case "MPN":
			values[i] = rec.MPN
		case "Manufacturer":
			values[i] = rec.Manufacturer
		case importer.ColWeight:
			values[i] = formatMeasure(rec.WeightGrams, "g")
		case importer.ColLength:
			values[i] = formatMeasure(rec.LengthCM, "cm")
		case importer.ColWidth:
			values[i] = formatMeasure(rec.WidthCM, "cm")
		case importer.ColHeight:
			values[i] = formatMeasure(rec.HeightCM, "cm")
		case importer.ColPrice:
			values[i] = formatNumber(rec.Price)
		case importer.ColRegularPrice:
			values[i] = formatNumber(rec.RegularPrice)
		case importer.ColCost:
			values[i] = formatNumber(rec.Cost)
		case importer.ColCurrency:
			values[i] = currencyOrDefault(rec.Currency, opts)
		case "Tax Rate":
			values[i] = formatNumber(rec.TaxRate)
		case "Release Date":
			values[i] = formatDate(rec.ReleaseDate)
		case importer.ColImages:
			values[i] = strings.Join(rec.Images, ",")
		case importer.ColEAN:
			values[i] = rec.EAN
		case importer.ColGTIN:
			values[i] = rec.GTIN
		case importer.ColID:
			if rec.ID != 0 {
				values[i] = strconv.FormatInt(rec.ID, 10)
			}
		default:
			if slot := imageSlotIndex(slots, column); slot >= 0 {
				if slot < len(rec.Images) {
					values[i] = rec.Images[slot]
				}
				continue
			}
			values[i] = rec.Attribute(column)
		}
	}

	return values
}

// formatMeasure writes the canonical unit suffix so a re-import needs no
// default-unit assumption.
func formatMeasure(value *float64, unit string) string {
	if value == nil {
		return ""
	}
	return formatNumber(value) + unit
}

func imageSlotIndex(slots []string, column string) int {
	for i, slot := range slots {
		if slot == column {
			return i
		}
	}
	return -1
}

func categoryOrOverride(category string, opts Options) string {
	if opts.CategoryOverride != "" {
		return opts.CategoryOverride
	}
	return category
}

func currencyOrDefault(currency string, opts Options) string {
	if currency != "" {
		return currency
	}
	return opts.Currency
}
