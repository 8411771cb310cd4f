/*
Copyright © 2025 golist authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"golist/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "golist",
	Short: "Import, normalize, and export product listings between inventory files and marketplaces.",
	Long: `golist imports delimited product files (canonical 91-column CPI layout or
arbitrary user spreadsheets via heuristic column detection), normalizes rows
into a local SQLite database with identifier-based upsert, and exports stored
products as CPI, Baselinker, or eBay bulk-upload feeds.`,
	Example: `
  # Create configuration file
  golist config create

  # Import a canonical CPI export
  golist import -i products.csv --db ./golist.db

  # Import a vendor spreadsheet with unknown headers
  golist import -i vendor-stock.csv --db ./golist.db

  # Export the Baselinker feed
  golist export --format baselinker --output ./baselinker.csv

  # Export an Excel-friendly eBay bulk upload file
  golist export --format ebay --excel-friendly --output ./ebay.csv

  # Start the local import/export API
  golist serve --port 8080
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.golist.yaml, then ./.golist.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".golist" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".golist")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in; defaults cover the rest.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: golist config create")
	}
}
