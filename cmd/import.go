package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"golist/config"
	"golist/importer"
	"golist/storage"
)

var (
	importInputs []string
	importDBPath string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import delimited product files into a local SQLite database",
	Long: `Read product files, normalize each row, and upsert the results into SQLite.

Files whose header row matches the canonical 91-column CPI layout exactly are
mapped directly; anything else goes through heuristic column detection. Rows
are upserted by any matching identifier (UPC, EAN, SKU): existing products
are partially updated (non-empty incoming values only, by default) and new
ones are created. Malformed rows are reported per row and never abort the
batch.`,
	Example: `
  # Import a canonical CPI file
  golist import -i products.csv --db ./golist.db

  # Import several vendor files in one run
  golist import -i stock-a.csv -i stock-b.csv --db ./golist.db

  # Import with a custom config file
  golist --configFile ./custom-golist.yaml import -i products.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(importDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		service := importer.NewService(store, cfg.Import)
		for _, path := range importInputs {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read import file %s: %w", path, err)
			}

			summary, err := service.ImportFile(string(data))
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}

			fmt.Printf("Imported %s. Rows: %d, Created: %d, Updated: %d, Skipped: %d, Errors: %d, Success: %t\n",
				path,
				summary.TotalRows,
				summary.Created,
				summary.Updated,
				summary.Skipped,
				summary.Errors,
				summary.Success,
			)
			for _, row := range summary.Rows {
				if row.Action == importer.ActionError {
					fmt.Printf("  row %d: %s\n", row.Row, row.Error)
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringSliceVarP(&importInputs, "input", "i", nil, "Input file path (repeatable)")
	importCmd.Flags().StringVar(&importDBPath, "db", "./golist.db", "SQLite database path")
	_ = importCmd.MarkFlagRequired("input")
}
