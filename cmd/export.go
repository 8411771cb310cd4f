package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"golist/config"
	"golist/export"
	"golist/product"
	"golist/storage"
)

var (
	exportFormat        string
	exportOutput        string
	exportDBPath        string
	exportSKUs          []string
	exportLimit         int
	exportCurrency      string
	exportCategory      string
	exportExcelFriendly bool
	exportStrict        bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored products as a marketplace feed",
	Long: `Export products from SQLite through one of the format mappers.

Formats:
- cpi: the canonical 91-column interchange layout (round-trip safe)
- baselinker: the Baselinker product feed
- ebay: the eBay bulk-upload (File Exchange) layout

Output is CSV by default; an --output ending in .xlsx writes an Excel
workbook instead. Cells are escaped against CSV formula injection.`,
	Example: `
  # Export everything as CPI
  golist export --format cpi --db ./golist.db --output ./products.csv

  # Export selected SKUs as a Baselinker feed
  golist export --format baselinker --skus SKU-1,SKU-2 --output ./baselinker.csv

  # Excel-friendly CSV (semicolon-safe, BOM, CRLF)
  golist export --format ebay --excel-friendly --output ./ebay.csv

  # Native Excel workbook
  golist export --format cpi --output ./products.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		mapper, err := export.MapperByName(exportFormat)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := selectExportRecords(store)
		if err != nil {
			return err
		}

		mapOpts := export.Options{
			Currency:         firstNonEmptyString(exportCurrency, cfg.Export.Currency),
			CategoryOverride: exportCategory,
			TaxRate:          cfg.Export.TaxRate,
		}
		strict := exportStrict || cfg.Export.Strict

		out, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create export output %s: %w", exportOutput, err)
		}
		defer out.Close()

		var result *export.Result
		if strings.EqualFold(filepath.Ext(exportOutput), ".xlsx") {
			writer := &export.ExcelWriter{}
			result, err = writer.Write(out, mapper, records, mapOpts, strict)
		} else {
			excelFriendly := exportExcelFriendly || cfg.Export.ExcelFriendly
			delimiter := firstNonEmptyString(cfg.Export.Delimiter, ",")
			serOpts := export.SerializeOptions{
				Delimiter: rune(delimiter[0]),
				CRLF:      excelFriendly,
				BOM:       excelFriendly,
				Strict:    strict,
				RowCap:    exportLimit,
			}
			result, err = export.WriteCSV(out, mapper, records, mapOpts, serOpts)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Export completed. Format: %s, Rows: %d, Skipped: %d, File: %s\n",
			mapper.Name(), result.Written, result.Skipped, exportOutput)
		return nil
	},
}

func selectExportRecords(store *storage.SQLiteStore) ([]product.Record, error) {
	if len(exportSKUs) > 0 {
		return store.ListBySKUs(exportSKUs)
	}
	return store.ListProducts(exportLimit)
}

func firstNonEmptyString(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "cpi", "Export format: cpi, baselinker, or ebay")
	exportCmd.Flags().StringVar(&exportOutput, "output", "./products.csv", "Output file path (.csv or .xlsx)")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "./golist.db", "SQLite database path")
	exportCmd.Flags().StringSliceVar(&exportSKUs, "skus", nil, "Export only these SKUs")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "Cap the number of exported rows (0 = no cap)")
	exportCmd.Flags().StringVar(&exportCurrency, "currency", "", "Currency code override")
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "Category override applied to every record")
	exportCmd.Flags().BoolVar(&exportExcelFriendly, "excel-friendly", false, "Write CRLF line endings and a UTF-8 BOM")
	exportCmd.Flags().BoolVar(&exportStrict, "strict", false, "Abort on the first record that fails format validation")
}
