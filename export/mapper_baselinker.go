package export

import (
	"fmt"
	"strings"

	"golist/internal/htmlutil"
	"golist/product"
)

const (
	baselinkerDescriptionLimit = 5000
	baselinkerImageLimit       = 5
	baselinkerDefaultTaxRate   = 23
)

// BaselinkerMapper emits the Baselinker product feed layout.
type BaselinkerMapper struct{}

func (m *BaselinkerMapper) Name() string { return "baselinker" }

func (m *BaselinkerMapper) Headers() []string {
	return []string{
		"Product name",
		"SKU",
		"EAN",
		"UPC",
		"Price",
		"Stock",
		"Weight",
		"Description",
		"Category",
		"Manufacturer",
		"Tax rate (%)",
		"Images",
	}
}

func (m *BaselinkerMapper) Validate(rec product.Record) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("record %d: missing product name", rec.ID)
	}
	return nil
}

func (m *BaselinkerMapper) Map(rec product.Record, opts Options) []string {
	description := htmlutil.Truncate(htmlutil.StripTags(rec.Description), baselinkerDescriptionLimit)

	images := rec.Images
	if len(images) > baselinkerImageLimit {
		images = images[:baselinkerImageLimit]
	}

	taxRate := rec.TaxRate
	if taxRate == nil {
		rate := opts.TaxRate
		if rate == 0 {
			rate = baselinkerDefaultTaxRate
		}
		taxRate = &rate
	}

	return []string{
		rec.Title,
		rec.SKU,
		rec.EAN,
		rec.UPC,
		formatPrice(rec.Price),
		formatNumber(rec.Quantity),
		formatNumber(rec.WeightGrams),
		description,
		categoryOrOverride(rec.Category, opts),
		firstNonEmpty(rec.Manufacturer, rec.Brand),
		formatNumber(taxRate),
		strings.Join(images, ";"),
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
