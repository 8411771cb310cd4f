package export

import (
	"strings"
	"testing"
	"time"
)

func TestMapperByName(t *testing.T) {
	t.Parallel()

	for _, name := range SupportedFormats() {
		mapper, err := MapperByName(name)
		if err != nil {
			t.Fatalf("mapper %q: %v", name, err)
		}
		if mapper.Name() != name {
			t.Fatalf("mapper %q reports name %q", name, mapper.Name())
		}
		if len(mapper.Headers()) == 0 {
			t.Fatalf("mapper %q has no headers", name)
		}
	}

	if _, err := MapperByName("amazon"); err == nil {
		t.Fatalf("unknown format must fail")
	}
}

func TestEbayMapper_Constants(t *testing.T) {
	t.Parallel()

	mapper := &EbayMapper{}
	headers := mapper.Headers()
	if headers[0] != "Action(SiteID=US|Country=US|Currency=USD|Version=1193|CC=UTF-8)" {
		t.Fatalf("unexpected action header %q", headers[0])
	}

	rec := testRecord()
	rec.Condition = "Used - Good"
	row := mapper.Map(rec, Options{})
	if row[0] != "Add" {
		t.Fatalf("action column must be Add, got %q", row[0])
	}
	if row[2] != ebayConditionUsed {
		t.Fatalf("used condition must map to %s, got %q", ebayConditionUsed, row[2])
	}
	if row[9] != "GTC" {
		t.Fatalf("duration must be GTC, got %q", row[9])
	}
	if row[15] != "INV-7" {
		t.Fatalf("custom label must derive from the record ID, got %q", row[15])
	}

	rec.Condition = "New"
	row = mapper.Map(rec, Options{})
	if row[2] != ebayConditionNew {
		t.Fatalf("new condition must map to %s, got %q", ebayConditionNew, row[2])
	}
}

func TestEbayMapper_TitleTruncation(t *testing.T) {
	t.Parallel()

	rec := testRecord()
	rec.Title = strings.Repeat("x", 120)
	rec.ShortDescription = strings.Repeat("y", 80)

	row := (&EbayMapper{}).Map(rec, Options{})
	if len([]rune(row[3])) != ebayTitleLimit {
		t.Fatalf("title must truncate to %d runes, got %d", ebayTitleLimit, len([]rune(row[3])))
	}
	if len([]rune(row[4])) != ebaySubTitleLimit {
		t.Fatalf("subtitle must truncate to %d runes, got %d", ebaySubTitleLimit, len([]rune(row[4])))
	}
}

func TestEbayMapper_ItemSpecifics(t *testing.T) {
	t.Parallel()

	rec := testRecord()
	rec.Model = "D-18"
	rec.Color = "Blue"
	rec.AdditionalAttributes = map[string]string{
		"Voltage": "18V",
		"Battery": "Li-Ion",
	}

	row := (&EbayMapper{}).Map(rec, Options{})
	want := "Brand:Acme;Model:D-18;Color:Blue;Battery:Li-Ion;Voltage:18V"
	if row[16] != want {
		t.Fatalf("item specifics = %q, want %q", row[16], want)
	}
}

func TestEbayMapper_ValidateRequiresPrice(t *testing.T) {
	t.Parallel()

	rec := testRecord()
	rec.Price = nil
	if err := (&EbayMapper{}).Validate(rec); err == nil {
		t.Fatalf("missing price must fail validation")
	}
}

func TestBaselinkerMapper_DescriptionStrippedAndTruncated(t *testing.T) {
	t.Parallel()

	rec := testRecord()
	rec.Description = "<p>Hello <script>alert(1)</script><b>world</b></p> " + strings.Repeat("z", 6000)

	row := (&BaselinkerMapper{}).Map(rec, Options{})
	description := row[7]
	if strings.Contains(description, "<") || strings.Contains(description, "alert") {
		t.Fatalf("description must be plain text, got %q", description[:40])
	}
	if !strings.HasPrefix(description, "Hello world") {
		t.Fatalf("description must keep text content, got %q", description[:40])
	}
	if len([]rune(description)) != baselinkerDescriptionLimit+3 {
		t.Fatalf("description must truncate to %d runes plus ellipsis, got %d", baselinkerDescriptionLimit, len([]rune(description)))
	}
	if !strings.HasSuffix(description, "...") {
		t.Fatalf("truncated description must end with an ellipsis")
	}
}

func TestBaselinkerMapper_ImageCapAndTax(t *testing.T) {
	t.Parallel()

	rec := testRecord()
	rec.Images = []string{"a", "b", "c", "d", "e", "f", "g"}

	row := (&BaselinkerMapper{}).Map(rec, Options{})
	if row[11] != "a;b;c;d;e" {
		t.Fatalf("images must cap at %d and join with semicolons, got %q", baselinkerImageLimit, row[11])
	}
	if row[10] != "23" {
		t.Fatalf("default tax rate must be 23, got %q", row[10])
	}

	rate := 8.5
	rec.TaxRate = &rate
	row = (&BaselinkerMapper{}).Map(rec, Options{})
	if row[10] != "8.5" {
		t.Fatalf("record tax rate must win, got %q", row[10])
	}
}

func TestBaselinkerMapper_ManufacturerFallsBackToBrand(t *testing.T) {
	t.Parallel()

	rec := testRecord()
	rec.Manufacturer = ""
	rec.Brand = "Acme"

	row := (&BaselinkerMapper{}).Map(rec, Options{})
	if row[9] != "Acme" {
		t.Fatalf("manufacturer column must fall back to brand, got %q", row[9])
	}
}

func TestCPIMapper_ValidateRequiresUPC(t *testing.T) {
	t.Parallel()

	rec := testRecord()
	rec.UPC = ""
	if err := (&CPIMapper{}).Validate(rec); err == nil {
		t.Fatalf("missing UPC must fail validation")
	}
}

func TestCPIMapper_CategoryOverride(t *testing.T) {
	t.Parallel()

	mapper := &CPIMapper{}
	rec := testRecord()
	rec.Category = "Tools"

	row := mapper.Map(rec, Options{CategoryOverride: "Power Tools"})
	found := false
	for _, value := range row {
		if value == "Power Tools" {
			found = true
		}
		if value == "Tools" {
			t.Fatalf("override must replace the record category")
		}
	}
	if !found {
		t.Fatalf("override category missing from output row")
	}
}

func TestCPIMapper_ReleaseDateFormat(t *testing.T) {
	t.Parallel()

	mapper := &CPIMapper{}
	rec := testRecord()
	release := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	rec.ReleaseDate = &release

	row := mapper.Map(rec, Options{})
	found := false
	for _, value := range row {
		if value == "2024-03-15" {
			found = true
		}
	}
	if !found {
		t.Fatalf("release date must serialize as 2024-03-15")
	}
}
