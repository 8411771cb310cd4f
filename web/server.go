// Package web serves the localhost import/export API; it is a
// single-user surface with no auth in this mode.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golist/config"
	"golist/export"
	"golist/importer"
	"golist/product"
	"golist/storage"
)

// maxImportBytes caps uploaded file size; larger files must be chunked by
// the caller.
const maxImportBytes = 64 << 20

type Server struct {
	store *storage.SQLiteStore
	cfg   config.Config
	mux   *http.ServeMux
}

func NewServer(store *storage.SQLiteStore, cfg config.Config) *Server {
	s := &Server{store: store, cfg: cfg, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/import", s.handleImport)
	s.mux.HandleFunc("GET /api/export", s.handleExport)
	s.mux.HandleFunc("GET /api/products", s.handleListProducts)
	s.mux.HandleFunc("GET /api/products/{id}", s.handleGetProduct)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleImport accepts a delimited-text file (multipart field "file" or the
// raw request body) and responds 200 with the per-row summary even on
// partial failure. Only a missing or unreadable file is a 400.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	text, err := readImportBody(r)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	service := importer.NewService(s.store, s.cfg.Import)
	summary, err := service.ImportFile(text)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// handleExport streams the selected format as a CSV attachment. Record
// selection supports an explicit SKU list and a row cap.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	mapper, err := export.MapperByName(query.Get("format"))
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.selectRecords(query.Get("skus"), query.Get("limit"))
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	mapOpts := export.Options{
		Currency:         firstNonEmpty(query.Get("currency"), s.cfg.Export.Currency),
		CategoryOverride: query.Get("category"),
		TaxRate:          s.cfg.Export.TaxRate,
	}

	excelFriendly := s.cfg.Export.ExcelFriendly
	if query.Has("excel") {
		excelFriendly = query.Get("excel") == "true" || query.Get("excel") == "1"
	}
	delimiter := firstNonEmpty(query.Get("delimiter"), s.cfg.Export.Delimiter, ",")
	if delimiter != "," && delimiter != ";" {
		httpError(w, http.StatusBadRequest, fmt.Sprintf("invalid delimiter %q: must be %q or %q", delimiter, ",", ";"))
		return
	}
	serOpts := export.SerializeOptions{
		Delimiter: rune(delimiter[0]),
		CRLF:      excelFriendly,
		BOM:       excelFriendly,
		Strict:    s.cfg.Export.Strict,
	}

	filename := fmt.Sprintf("products-%s-%s.csv", mapper.Name(), time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	result, err := export.WriteCSV(w, mapper, records, mapOpts, serOpts)
	if err != nil {
		// Headers are out by now; all we can do is log the abort.
		log.Printf("web: export aborted after %d rows: %v", result.Written, err)
		return
	}
	if result.Skipped > 0 {
		log.Printf("web: export %s: wrote %d rows, skipped %d invalid records", mapper.Name(), result.Written, result.Skipped)
	}
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.store.ListProducts(limit)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":    len(records),
		"products": records,
	})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	rec, err := s.store.GetProduct(id)
	if errors.Is(err, storage.ErrProductNotFound) {
		httpError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountProducts()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "products": count})
}

// selectRecords resolves the export selection: explicit SKU list when
// given, otherwise all products up to the optional limit.
func (s *Server) selectRecords(skusParam, limitParam string) ([]product.Record, error) {
	if strings.TrimSpace(skusParam) != "" {
		skus := make([]string, 0, 8)
		for _, sku := range strings.Split(skusParam, ",") {
			if trimmed := strings.TrimSpace(sku); trimmed != "" {
				skus = append(skus, trimmed)
			}
		}
		return s.store.ListBySKUs(skus)
	}

	limit, err := parseLimit(limitParam)
	if err != nil {
		return nil, err
	}
	return s.store.ListProducts(limit)
}

func readImportBody(r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxImportBytes)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", fmt.Errorf("missing file field in multipart request")
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("read uploaded file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("read request body: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("missing import file")
	}
	return string(data), nil
}

func parseLimit(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return limit, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("web: encode response: %v", err)
	}
}

func httpError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
