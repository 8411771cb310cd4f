package export

import (
	"fmt"
	"sort"
	"strings"

	"golist/product"
)

const (
	// ebayActionHeader is the literal marker column eBay's bulk upload
	// format requires as the first header.
	ebayActionHeader = "Action(SiteID=US|Country=US|Currency=USD|Version=1193|CC=UTF-8)"

	ebayTitleLimit    = 80
	ebaySubTitleLimit = 55

	ebayConditionNew  = "1000"
	ebayConditionUsed = "3000"

	// GTC = Good Till Cancelled.
	ebayDurationGTC = "GTC"
)

// EbayMapper emits eBay's File Exchange bulk-upload layout.
type EbayMapper struct{}

func (m *EbayMapper) Name() string { return "ebay" }

func (m *EbayMapper) Headers() []string {
	return []string{
		ebayActionHeader,
		"Category",
		"ConditionID",
		"Title",
		"SubTitle",
		"PicURL",
		"Quantity",
		"StartPrice",
		"BuyItNowPrice",
		"Duration",
		"Description",
		"Brand",
		"MPN",
		"UPC",
		"EAN",
		"CustomLabel",
		"ItemSpecifics",
	}
}

func (m *EbayMapper) Validate(rec product.Record) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("record %d: missing title", rec.ID)
	}
	if rec.Price == nil {
		return fmt.Errorf("record %d: missing start price", rec.ID)
	}
	return nil
}

func (m *EbayMapper) Map(rec product.Record, opts Options) []string {
	picURL := ""
	if len(rec.Images) > 0 {
		picURL = rec.Images[0]
	}

	return []string{
		"Add",
		categoryOrOverride(rec.Category, opts),
		ebayConditionID(rec.Condition),
		truncate(rec.Title, ebayTitleLimit),
		truncate(rec.ShortDescription, ebaySubTitleLimit),
		picURL,
		formatNumber(rec.Quantity),
		formatPrice(rec.Price),
		formatPrice(rec.RegularPrice),
		ebayDurationGTC,
		rec.Description,
		rec.Brand,
		rec.MPN,
		rec.UPC,
		rec.EAN,
		fmt.Sprintf("INV-%d", rec.ID),
		buildItemSpecifics(rec),
	}
}

func ebayConditionID(condition string) string {
	if strings.Contains(strings.ToLower(condition), "used") {
		return ebayConditionUsed
	}
	return ebayConditionNew
}

// buildItemSpecifics joins Key:Value pairs with semicolons: the typed
// attribute fields first, then any additional attributes in name order.
func buildItemSpecifics(rec product.Record) string {
	pairs := make([]string, 0, 8)
	add := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		pairs = append(pairs, key+":"+value)
	}

	add("Brand", rec.Brand)
	add("Model", rec.Model)
	add("Color", rec.Color)
	add("Size", rec.Size)

	keys := make([]string, 0, len(rec.AdditionalAttributes))
	for key := range rec.AdditionalAttributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		add(key, rec.AdditionalAttributes[key])
	}

	return strings.Join(pairs, ";")
}
