package export

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"golist/config"
	"golist/importer"
	"golist/product"
)

// captureStore records the products an import run creates.
type captureStore struct {
	created []*product.Record
}

func (s *captureStore) FindByIdentifiers(upc, ean, sku string) (*product.Record, error) {
	return nil, nil
}

func (s *captureStore) CreateProduct(rec *product.Record) (int64, error) {
	s.created = append(s.created, rec)
	rec.ID = int64(len(s.created))
	return rec.ID, nil
}

func (s *captureStore) UpdateProduct(rec *product.Record, modified []string) error {
	return fmt.Errorf("unexpected update")
}

// Serializing through the canonical layout and re-importing the result must
// reproduce the record, including converted units and attribute columns.
func TestCanonicalExportReimportsEqual(t *testing.T) {
	t.Parallel()

	qty := 4.0
	weight := 1250.0
	length := 30.5
	price := 149.99
	release := time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC)

	original := product.Record{
		UPC:              "123456789012",
		EAN:              "4006381333931",
		SKU:              "DRL-18",
		Title:            "Cordless Drill 18V Brushless",
		ShortDescription: "Compact 18V drill",
		Description:      "Two-speed gearbox, includes charger.",
		Condition:        "New",
		Brand:            "Acme",
		Model:            "D-18",
		Color:            "Blue",
		Category:         "Power Tools",
		Currency:         "USD",
		Quantity:         &qty,
		WeightGrams:      &weight,
		LengthCM:         &length,
		Price:            &price,
		ReleaseDate:      &release,
		Images:           []string{"http://img/1.jpg", "http://img/2.jpg"},
		AdditionalAttributes: map[string]string{
			"Tags": "drill, cordless",
		},
	}

	var sb strings.Builder
	result, err := WriteCSV(&sb, &CPIMapper{}, []product.Record{original}, Options{Currency: "USD"}, SerializeOptions{Delimiter: ','})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if result.Written != 1 {
		t.Fatalf("want 1 exported row, got %d", result.Written)
	}

	store := &captureStore{}
	service := importer.NewService(store, config.ImportConfig{})
	summary, err := service.ImportFile(sb.String())
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if !summary.Canonical {
		t.Fatalf("exported layout must validate as canonical: %+v", summary)
	}
	if summary.Created != 1 || summary.Errors != 0 {
		t.Fatalf("want clean single create, got %+v", summary)
	}

	got := store.created[0]
	if got.UPC != original.UPC || got.EAN != original.EAN || got.SKU != original.SKU {
		t.Fatalf("identifiers changed: %+v", got)
	}
	if got.Title != original.Title || got.Brand != original.Brand || got.Model != original.Model {
		t.Fatalf("text fields changed: %+v", got)
	}
	if got.Currency != "USD" || got.Condition != "New" || got.Color != "Blue" {
		t.Fatalf("text fields changed: %+v", got)
	}
	if got.Quantity == nil || *got.Quantity != qty {
		t.Fatalf("quantity changed: %v", got.Quantity)
	}
	if got.WeightGrams == nil || *got.WeightGrams != weight {
		t.Fatalf("weight changed: %v", got.WeightGrams)
	}
	if got.LengthCM == nil || *got.LengthCM != length {
		t.Fatalf("length changed: %v", got.LengthCM)
	}
	if got.Price == nil || *got.Price != price {
		t.Fatalf("price changed: %v", got.Price)
	}
	if got.ReleaseDate == nil || !got.ReleaseDate.Equal(release) {
		t.Fatalf("release date changed: %v", got.ReleaseDate)
	}
	if len(got.Images) != 2 || got.Images[0] != original.Images[0] || got.Images[1] != original.Images[1] {
		t.Fatalf("images changed: %v", got.Images)
	}
	if got.AdditionalAttributes["Tags"] != "drill, cordless" {
		t.Fatalf("attribute column changed: %v", got.AdditionalAttributes)
	}
}
