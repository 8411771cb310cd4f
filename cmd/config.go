package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the golist configuration file.",
	Long: `Create and display the golist configuration file.

The configuration stores the import/export policy parameters:
- import.error_threshold / overwrite_with_empty / default units / max_images
- export.currency / delimiter / excel_friendly / tax_rate / strict`,
	Example: `
  # Create default config in $HOME/.golist.yaml
  golist config create

  # Show active config and source file
  golist config show
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
