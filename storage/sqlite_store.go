package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"golist/product"
)

// SQLiteStore is the product store behind the import orchestrator and the
// export surfaces.
type SQLiteStore struct {
	db *sql.DB
}

var ErrProductNotFound = errors.New("product not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	upc TEXT NOT NULL DEFAULT '',
	ean TEXT NOT NULL DEFAULT '',
	gtin TEXT NOT NULL DEFAULT '',
	sku TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL,
	short_description TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	condition TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL DEFAULT '',
	brand TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL DEFAULT '',
	mpn TEXT NOT NULL DEFAULT '',
	manufacturer TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	size TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	store_category TEXT NOT NULL DEFAULT '',
	quantity REAL,
	weight_grams REAL,
	length_cm REAL,
	width_cm REAL,
	height_cm REAL,
	price REAL,
	regular_price REAL,
	cost REAL,
	tax_rate REAL,
	currency TEXT NOT NULL DEFAULT '',
	release_date TEXT,
	images TEXT NOT NULL DEFAULT '[]',
	attributes TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_upc ON products(upc);
CREATE INDEX IF NOT EXISTS idx_products_ean ON products(ean);
CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const productColumns = `id, upc, ean, gtin, sku, title, short_description, description,
	condition, type, brand, model, mpn, manufacturer, color, size, category, store_category,
	quantity, weight_grams, length_cm, width_cm, height_cm,
	price, regular_price, cost, tax_rate, currency, release_date, images, attributes,
	created_at, updated_at`

// FindByIdentifiers resolves a product by any of its alternate identifiers.
// Returns (nil, nil) when no identifier matches.
func (s *SQLiteStore) FindByIdentifiers(upc, ean, sku string) (*product.Record, error) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 3)
	for _, pair := range []struct {
		column string
		value  string
	}{{"upc", upc}, {"ean", ean}, {"sku", sku}} {
		if strings.TrimSpace(pair.value) != "" {
			clauses = append(clauses, pair.column+" = ?")
			args = append(args, pair.value)
		}
	}
	if len(clauses) == 0 {
		return nil, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE ` + strings.Join(clauses, " OR ") + ` LIMIT 1;`
	rec, err := scanProduct(s.db.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by identifiers: %w", err)
	}
	return rec, nil
}

func (s *SQLiteStore) CreateProduct(rec *product.Record) (int64, error) {
	images, attributes, err := encodeJSONColumns(rec)
	if err != nil {
		return 0, err
	}

	const insertStmt = `
INSERT INTO products (
	upc, ean, gtin, sku, title, short_description, description,
	condition, type, brand, model, mpn, manufacturer, color, size, category, store_category,
	quantity, weight_grams, length_cm, width_cm, height_cm,
	price, regular_price, cost, tax_rate, currency, release_date, images, attributes
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	res, err := s.db.Exec(insertStmt,
		rec.UPC, rec.EAN, rec.GTIN, rec.SKU, rec.Title, rec.ShortDescription, rec.Description,
		rec.Condition, rec.Type, rec.Brand, rec.Model, rec.MPN, rec.Manufacturer,
		rec.Color, rec.Size, rec.Category, rec.StoreCategory,
		nullFloat(rec.Quantity), nullFloat(rec.WeightGrams), nullFloat(rec.LengthCM),
		nullFloat(rec.WidthCM), nullFloat(rec.HeightCM),
		nullFloat(rec.Price), nullFloat(rec.RegularPrice), nullFloat(rec.Cost), nullFloat(rec.TaxRate),
		rec.Currency, nullDate(rec.ReleaseDate), images, attributes,
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted product id: %w", err)
	}
	rec.ID = id
	return id, nil
}

// UpdateProduct persists the full current state of an already-merged
// record. The modified list is accepted for symmetry with the orchestrator
// contract; the write is whole-row.
func (s *SQLiteStore) UpdateProduct(rec *product.Record, modified []string) error {
	if rec.ID == 0 {
		return fmt.Errorf("update product: record has no id")
	}
	images, attributes, err := encodeJSONColumns(rec)
	if err != nil {
		return err
	}

	const updateStmt = `
UPDATE products SET
	upc = ?, ean = ?, gtin = ?, sku = ?, title = ?, short_description = ?, description = ?,
	condition = ?, type = ?, brand = ?, model = ?, mpn = ?, manufacturer = ?,
	color = ?, size = ?, category = ?, store_category = ?,
	quantity = ?, weight_grams = ?, length_cm = ?, width_cm = ?, height_cm = ?,
	price = ?, regular_price = ?, cost = ?, tax_rate = ?, currency = ?, release_date = ?,
	images = ?, attributes = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?;`

	res, err := s.db.Exec(updateStmt,
		rec.UPC, rec.EAN, rec.GTIN, rec.SKU, rec.Title, rec.ShortDescription, rec.Description,
		rec.Condition, rec.Type, rec.Brand, rec.Model, rec.MPN, rec.Manufacturer,
		rec.Color, rec.Size, rec.Category, rec.StoreCategory,
		nullFloat(rec.Quantity), nullFloat(rec.WeightGrams), nullFloat(rec.LengthCM),
		nullFloat(rec.WidthCM), nullFloat(rec.HeightCM),
		nullFloat(rec.Price), nullFloat(rec.RegularPrice), nullFloat(rec.Cost), nullFloat(rec.TaxRate),
		rec.Currency, nullDate(rec.ReleaseDate), images, attributes,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *SQLiteStore) GetProduct(id int64) (*product.Record, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?;`
	rec, err := scanProduct(s.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return rec, nil
}

// ListProducts returns products in insertion order, capped when limit is
// positive.
func (s *SQLiteStore) ListProducts(limit int) ([]product.Record, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query+`;`, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListBySKUs returns the products whose SKU is in the given set, in
// insertion order.
func (s *SQLiteStore) ListBySKUs(skus []string) ([]product.Record, error) {
	if len(skus) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(skus)), ",")
	args := make([]any, len(skus))
	for i, sku := range skus {
		args[i] = sku
	}

	rows, err := s.db.Query(`SELECT `+productColumns+` FROM products WHERE sku IN (`+placeholders+`) ORDER BY id;`, args...)
	if err != nil {
		return nil, fmt.Errorf("list products by sku: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (s *SQLiteStore) CountProducts() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM products;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*product.Record, error) {
	var (
		rec         product.Record
		quantity    sql.NullFloat64
		weight      sql.NullFloat64
		length      sql.NullFloat64
		width       sql.NullFloat64
		height      sql.NullFloat64
		price       sql.NullFloat64
		regular     sql.NullFloat64
		cost        sql.NullFloat64
		taxRate     sql.NullFloat64
		releaseDate sql.NullString
		images      string
		attributes  string
		createdAt   string
		updatedAt   string
	)

	err := row.Scan(
		&rec.ID, &rec.UPC, &rec.EAN, &rec.GTIN, &rec.SKU, &rec.Title, &rec.ShortDescription, &rec.Description,
		&rec.Condition, &rec.Type, &rec.Brand, &rec.Model, &rec.MPN, &rec.Manufacturer,
		&rec.Color, &rec.Size, &rec.Category, &rec.StoreCategory,
		&quantity, &weight, &length, &width, &height,
		&price, &regular, &cost, &taxRate, &rec.Currency, &releaseDate, &images, &attributes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Quantity = floatPtr(quantity)
	rec.WeightGrams = floatPtr(weight)
	rec.LengthCM = floatPtr(length)
	rec.WidthCM = floatPtr(width)
	rec.HeightCM = floatPtr(height)
	rec.Price = floatPtr(price)
	rec.RegularPrice = floatPtr(regular)
	rec.Cost = floatPtr(cost)
	rec.TaxRate = floatPtr(taxRate)

	if releaseDate.Valid && releaseDate.String != "" {
		if parsed, parseErr := time.Parse(time.RFC3339, releaseDate.String); parseErr == nil {
			rec.ReleaseDate = &parsed
		}
	}
	if err := json.Unmarshal([]byte(images), &rec.Images); err != nil {
		return nil, fmt.Errorf("decode images column: %w", err)
	}
	if err := json.Unmarshal([]byte(attributes), &rec.AdditionalAttributes); err != nil {
		return nil, fmt.Errorf("decode attributes column: %w", err)
	}
	if parsed, parseErr := time.Parse("2006-01-02 15:04:05", createdAt); parseErr == nil {
		rec.CreatedAt = parsed
	}
	if parsed, parseErr := time.Parse("2006-01-02 15:04:05", updatedAt); parseErr == nil {
		rec.UpdatedAt = parsed
	}

	return &rec, nil
}

func collectProducts(rows *sql.Rows) ([]product.Record, error) {
	records := make([]product.Record, 0, 64)
	for rows.Next() {
		rec, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return records, nil
}

func encodeJSONColumns(rec *product.Record) (string, string, error) {
	images := rec.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return "", "", fmt.Errorf("encode images: %w", err)
	}

	attributes := rec.AdditionalAttributes
	if attributes == nil {
		attributes = map[string]string{}
	}
	attributesJSON, err := json.Marshal(attributes)
	if err != nil {
		return "", "", fmt.Errorf("encode attributes: %w", err)
	}
	return string(imagesJSON), string(attributesJSON), nil
}

func nullFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullDate(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.Format(time.RFC3339)
}

func floatPtr(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	v := value.Float64
	return &v
}
