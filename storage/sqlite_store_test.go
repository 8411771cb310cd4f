package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golist/product"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "products.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecord() *product.Record {
	qty := 3.0
	price := 24.5
	release := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &product.Record{
		UPC:         "123456789012",
		SKU:         "SAW-01",
		Title:       "Circular Saw 1200W",
		Brand:       "Acme",
		Currency:    "USD",
		Quantity:    &qty,
		Price:       &price,
		ReleaseDate: &release,
		Images:      []string{"http://img/saw.jpg"},
		AdditionalAttributes: map[string]string{
			"Tags": "saw",
		},
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	rec := sampleRecord()
	id, err := store.CreateProduct(rec)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 || rec.ID != id {
		t.Fatalf("create must assign the record id, got id=%d rec.ID=%d", id, rec.ID)
	}

	got, err := store.GetProduct(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UPC != rec.UPC || got.Title != rec.Title || got.Currency != "USD" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.Quantity == nil || *got.Quantity != 3 {
		t.Fatalf("quantity lost: %v", got.Quantity)
	}
	if got.Price == nil || *got.Price != 24.5 {
		t.Fatalf("price lost: %v", got.Price)
	}
	if got.ReleaseDate == nil || !got.ReleaseDate.Equal(*rec.ReleaseDate) {
		t.Fatalf("release date lost: %v", got.ReleaseDate)
	}
	if len(got.Images) != 1 || got.Images[0] != "http://img/saw.jpg" {
		t.Fatalf("images lost: %v", got.Images)
	}
	if got.AdditionalAttributes["Tags"] != "saw" {
		t.Fatalf("attributes lost: %v", got.AdditionalAttributes)
	}
	if got.WeightGrams != nil {
		t.Fatalf("absent measure must stay nil, got %v", *got.WeightGrams)
	}
}

func TestFindByIdentifiers(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	rec := sampleRecord()
	if _, err := store.CreateProduct(rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	byUPC, err := store.FindByIdentifiers("123456789012", "", "")
	if err != nil || byUPC == nil {
		t.Fatalf("find by upc: rec=%v err=%v", byUPC, err)
	}

	bySKU, err := store.FindByIdentifiers("", "", "SAW-01")
	if err != nil || bySKU == nil || bySKU.ID != rec.ID {
		t.Fatalf("find by sku: rec=%v err=%v", bySKU, err)
	}

	missing, err := store.FindByIdentifiers("999999999999", "", "")
	if err != nil {
		t.Fatalf("find missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("no match must return nil record, got %+v", missing)
	}

	empty, err := store.FindByIdentifiers("", "", "")
	if err != nil || empty != nil {
		t.Fatalf("all-empty identifiers must return nil, nil; got rec=%v err=%v", empty, err)
	}
}

func TestUpdateProduct(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	rec := sampleRecord()
	if _, err := store.CreateProduct(rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	rec.Title = "Circular Saw 1400W"
	newPrice := 29.99
	rec.Price = &newPrice
	if err := store.UpdateProduct(rec, []string{"title", "price"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetProduct(rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Circular Saw 1400W" || got.Price == nil || *got.Price != 29.99 {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestUpdateMissingProduct(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	rec := sampleRecord()
	rec.ID = 42
	err := store.UpdateProduct(rec, nil)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}

	rec.ID = 0
	if err := store.UpdateProduct(rec, nil); err == nil {
		t.Fatalf("zero id must fail")
	}
}

func TestListProductsAndBySKUs(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	for i, sku := range []string{"A-1", "B-2", "C-3"} {
		rec := sampleRecord()
		rec.UPC = ""
		rec.SKU = sku
		rec.Title = "Product " + sku
		if _, err := store.CreateProduct(rec); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, err := store.ListProducts(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].SKU != "A-1" || all[2].SKU != "C-3" {
		t.Fatalf("unexpected list order: %+v", all)
	}

	capped, err := store.ListProducts(2)
	if err != nil || len(capped) != 2 {
		t.Fatalf("limit not honored: n=%d err=%v", len(capped), err)
	}

	subset, err := store.ListBySKUs([]string{"C-3", "A-1"})
	if err != nil {
		t.Fatalf("list by skus: %v", err)
	}
	if len(subset) != 2 || subset[0].SKU != "A-1" || subset[1].SKU != "C-3" {
		t.Fatalf("sku subset must keep insertion order: %+v", subset)
	}

	none, err := store.ListBySKUs(nil)
	if err != nil || none != nil {
		t.Fatalf("empty sku set must return nil, nil; got %v %v", none, err)
	}

	count, err := store.CountProducts()
	if err != nil || count != 3 {
		t.Fatalf("count = %d err = %v", count, err)
	}
}
