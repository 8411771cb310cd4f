package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"golist/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  golist config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded; showing defaults.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("import.error_threshold: %g\n", cfg.Import.ErrorThreshold)
		fmt.Printf("import.overwrite_with_empty: %t\n", cfg.Import.OverwriteWithEmpty)
		fmt.Printf("import.default_weight_unit: %s\n", cfg.Import.DefaultWeightUnit)
		fmt.Printf("import.default_length_unit: %s\n", cfg.Import.DefaultLengthUnit)
		fmt.Printf("import.max_images: %d\n", cfg.Import.MaxImages)
		fmt.Printf("export.currency: %s\n", cfg.Export.Currency)
		fmt.Printf("export.delimiter: %q\n", cfg.Export.Delimiter)
		fmt.Printf("export.excel_friendly: %t\n", cfg.Export.ExcelFriendly)
		fmt.Printf("export.tax_rate: %g\n", cfg.Export.TaxRate)
		fmt.Printf("export.strict: %t\n", cfg.Export.Strict)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
