package importer

import (
	"strings"
	"testing"
)

func TestColumns_CountAndAnchors(t *testing.T) {
	t.Parallel()

	columns := Columns()
	if len(columns) != 91 {
		t.Fatalf("canonical schema must have 91 columns, got %d", len(columns))
	}
	if columns[0] != ColQuantity {
		t.Fatalf("first column must be Quantity, got %s", columns[0])
	}
	if columns[len(columns)-1] != ColID {
		t.Fatalf("last column must be ID, got %s", columns[len(columns)-1])
	}
}

func TestColumns_TwelveImageSlotsPlusAggregate(t *testing.T) {
	t.Parallel()

	slots := ImageSlotColumns()
	if len(slots) != MaxImageSlots {
		t.Fatalf("expected %d image slots, got %d", MaxImageSlots, len(slots))
	}
	if slots[0] != "Image 1" || slots[11] != "Image 12" {
		t.Fatalf("unexpected slot names: %v", slots)
	}
	if !IsImageColumn(ColImages) {
		t.Fatalf("aggregate Images column must count as an image column")
	}
}

func TestIndexOf_CaseInsensitive(t *testing.T) {
	t.Parallel()

	if IndexOf("upc") != IndexOf("UPC") {
		t.Fatalf("IndexOf must be case-insensitive")
	}
	if IndexOf("Nonexistent Column") != -1 {
		t.Fatalf("unknown column must return -1")
	}
}

func TestRoleSets(t *testing.T) {
	t.Parallel()

	if !IsRequiredColumn(ColUPC) {
		t.Fatalf("UPC must be required")
	}
	if IsRequiredColumn(ColTitle) {
		t.Fatalf("only UPC is required")
	}
	if !IsBooleanColumn("Featured") || !IsPriceColumn("MSRP") || !IsDateColumn("Release Date") {
		t.Fatalf("role sets incomplete")
	}
	if UnitKindOf(ColWeight) != UnitWeight || UnitKindOf(ColWidth) != UnitLength {
		t.Fatalf("unit kinds wrong")
	}
	if UnitKindOf(ColTitle) != UnitNone {
		t.Fatalf("Title must not be unit-bearing")
	}
}

func TestValidateHeaderLayout_ExactMatch(t *testing.T) {
	t.Parallel()

	headers := make([]string, 0, 91)
	for _, column := range Columns() {
		headers = append(headers, strings.ToLower(column))
	}

	report := ValidateHeaderLayout(headers)
	if !report.IsValid {
		t.Fatalf("lower-cased canonical headers must validate: %+v", report)
	}
}

func TestValidateHeaderLayout_MissingExtraOutOfOrder(t *testing.T) {
	t.Parallel()

	headers := Columns()
	headers[0], headers[1] = headers[1], headers[0]
	report := ValidateHeaderLayout(headers)
	if report.IsValid || len(report.OutOfOrder) != 2 {
		t.Fatalf("swapped columns must be out of order: %+v", report)
	}

	short := Columns()[:90]
	report = ValidateHeaderLayout(short)
	if report.IsValid || len(report.Missing) != 1 || report.Missing[0] != ColID {
		t.Fatalf("dropped last column must be reported missing: %+v", report)
	}

	extra := append(Columns(), "Mystery")
	report = ValidateHeaderLayout(extra)
	if report.IsValid || len(report.Extra) != 1 || report.Extra[0] != "Mystery" {
		t.Fatalf("unknown column must be reported extra: %+v", report)
	}
}
