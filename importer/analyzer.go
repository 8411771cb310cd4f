package importer

import (
	"log"
	"regexp"
	"strings"

	"golist/product"
)

// The heuristic analyzer guesses column purposes for files whose headers do
// not match the canonical layout. Header text and cell content act as
// co-signals: both must agree before a column is claimed.

// ColumnGuess holds best-guess column indexes (-1 = not found).
type ColumnGuess struct {
	Title      int
	Identifier int
	Price      int
	Brand      int
	Quantity   int
	Images     []int
}

var (
	upcPattern     = regexp.MustCompile(`^\d{12}$|^\d{13}$`)
	pricePattern   = regexp.MustCompile(`^\$?\d{1,3}(,\d{3})*(\.\d+)?$|^\$?\d+(\.\d+)?$`)
	digitsPattern  = regexp.MustCompile(`^\d+$`)
	decimalPattern = regexp.MustCompile(`^\d+\.\d+$`)
)

// AnalyzeColumns inspects the header row and one sample data row and
// returns a best-guess purpose for each column. Later matches only override
// earlier ones when their header is more specific.
func AnalyzeColumns(headers, sample []string) ColumnGuess {
	guess := ColumnGuess{Title: -1, Identifier: -1, Price: -1, Brand: -1, Quantity: -1}

	for i, rawHeader := range headers {
		header := strings.ToLower(strings.TrimSpace(rawHeader))
		value := ""
		if i < len(sample) {
			value = strings.TrimSpace(sample[i])
		}

		if looksLikeTitle(header, value) {
			if guess.Title < 0 || preferTitleHeader(header, strings.ToLower(headers[guess.Title])) {
				guess.Title = i
			}
		}

		if guess.Identifier < 0 &&
			(strings.Contains(header, "upc") || strings.Contains(header, "barcode")) &&
			upcPattern.MatchString(value) {
			guess.Identifier = i
		}

		if (strings.Contains(header, "price") || strings.Contains(header, "cost")) &&
			pricePattern.MatchString(value) {
			if guess.Price < 0 || preferPriceHeader(header) {
				guess.Price = i
			}
		}

		if guess.Brand < 0 && strings.Contains(header, "brand") &&
			len(value) > 0 && len(value) < 50 {
			guess.Brand = i
		}

		if guess.Quantity < 0 &&
			(strings.Contains(header, "quantity") || strings.Contains(header, "qty") || strings.Contains(header, "stock")) &&
			digitsPattern.MatchString(value) {
			guess.Quantity = i
		}

		if strings.Contains(header, "image") || strings.Contains(header, "picture") ||
			strings.Contains(header, "photo") || strings.Contains(value, "http") {
			guess.Images = append(guess.Images, i)
		}
	}

	return guess
}

func looksLikeTitle(header, value string) bool {
	if strings.Contains(header, "image") {
		return false
	}
	if !strings.Contains(header, "title") && !strings.Contains(header, "name") && !strings.Contains(header, "product") {
		return false
	}
	if len(value) <= 10 || strings.HasPrefix(value, "http") {
		return false
	}
	if digitsPattern.MatchString(value) || decimalPattern.MatchString(value) {
		return false
	}
	return true
}

// preferTitleHeader resolves a tie toward the header that literally says
// "title".
func preferTitleHeader(candidate, current string) bool {
	return strings.Contains(candidate, "title") && !strings.Contains(current, "title")
}

func preferPriceHeader(header string) bool {
	return header == "price" || header == "regular price"
}

// personalDataHeader matches columns that look like they carry personal
// data; these are skipped outright rather than imported.
func personalDataHeader(header string) bool {
	for _, token := range []string{"seller", "owner", "user", "person"} {
		if strings.Contains(header, token) {
			return true
		}
	}
	return false
}

// headerSynonyms maps well-known normalized header spellings to record
// fields for columns the content heuristics did not claim.
var headerSynonyms = map[string]string{
	"ean":                FieldEAN,
	"gtin":               FieldGTIN,
	"sku":                FieldSKU,
	"itemsku":            FieldSKU,
	"condition":          FieldCondition,
	"description":        FieldDescription,
	"productdescription": FieldDescription,
	"longdescription":    FieldDescription,
	"shortdescription":   FieldShortDescription,
	"model":              FieldModel,
	"modelnumber":        FieldModel,
	"mpn":                FieldMPN,
	"color":              FieldColor,
	"colour":             FieldColor,
	"size":               FieldSize,
	"category":           FieldCategory,
	"weight":             FieldWeightGrams,
	"itemweight":         FieldWeightGrams,
	"dimensions":         "dimensions",
}

var dimensionsPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[xX]\s*(\d+(?:\.\d+)?)\s*[xX]\s*(\d+(?:\.\d+)?)`)

// mapHeuristicRow builds a record from a non-canonical row using the
// analyzer guess plus the exact-header synonym table.
func mapHeuristicRow(row rowRecord, guess ColumnGuess, opts TransformOptions) (*product.Record, []product.FieldError) {
	rec := &product.Record{AdditionalAttributes: make(map[string]string)}
	diags := make([]product.FieldError, 0)
	claimed := make(map[int]bool)

	claim := func(index int) string {
		if index < 0 {
			return ""
		}
		claimed[index] = true
		return row.At(index)
	}

	rec.Title = claim(guess.Title)
	if id := claim(guess.Identifier); id != "" {
		rec.UPC = id
	}
	if raw := claim(guess.Price); raw != "" {
		value, diag := parseNumber(raw)
		if diag != nil {
			diags = append(diags, *diag)
		}
		rec.Price = value
	}
	rec.Brand = claim(guess.Brand)
	if raw := claim(guess.Quantity); raw != "" {
		value, diag := parseNumber(raw)
		if diag != nil {
			diags = append(diags, *diag)
		}
		rec.Quantity = value
	}

	rec.Images = collectHeuristicImages(row, guess, claimed, opts.MaxImages)

	// Secondary pass: exact-header synonyms for whatever the heuristics
	// left unclaimed. Anything else is discarded.
	for i, header := range row.Headers {
		if claimed[i] {
			continue
		}
		lower := strings.ToLower(strings.TrimSpace(header))
		if personalDataHeader(lower) {
			log.Printf("importer: skipping personal-data column %q", header)
			continue
		}
		field, ok := headerSynonyms[normalizeHeader(header)]
		if !ok {
			continue
		}
		value := row.At(i)
		if value == "" {
			continue
		}
		switch field {
		case FieldWeightGrams:
			grams, diag := parseWeightGrams(value, opts.DefaultWeightUnit)
			if diag != nil {
				diags = append(diags, *diag)
				continue
			}
			rec.WeightGrams = grams
		case "dimensions":
			if match := dimensionsPattern.FindStringSubmatch(value); match != nil {
				l, _ := parseLengthCM(match[1], opts.DefaultLengthUnit)
				w, _ := parseLengthCM(match[2], opts.DefaultLengthUnit)
				h, _ := parseLengthCM(match[3], opts.DefaultLengthUnit)
				rec.LengthCM, rec.WidthCM, rec.HeightCM = l, w, h
			}
		case FieldDescription:
			// Prefer the most explicit description column when several map
			// to the same field.
			if rec.Description == "" || normalizeHeader(header) == "longdescription" {
				rec.Description = value
			}
		default:
			setStringField(rec, field, value)
		}
	}

	return rec, diags
}

// collectHeuristicImages splits comma-joined cells, keeps http URLs only,
// and caps the aggregate.
func collectHeuristicImages(row rowRecord, guess ColumnGuess, claimed map[int]bool, maxImages int) []string {
	if maxImages <= 0 {
		maxImages = 10
	}
	urls := make([]string, 0, maxImages)
	seen := make(map[string]bool)
	for _, index := range guess.Images {
		claimed[index] = true
		for _, part := range strings.Split(row.At(index), ",") {
			url := strings.TrimSpace(part)
			if url == "" || !strings.HasPrefix(url, "http") || seen[url] || len(urls) >= maxImages {
				continue
			}
			seen[url] = true
			urls = append(urls, url)
		}
	}
	return urls
}
