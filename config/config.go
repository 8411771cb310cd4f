package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyImportErrorThreshold     = "import.error_threshold"
	KeyImportOverwriteWithEmpty = "import.overwrite_with_empty"
	KeyImportDefaultWeightUnit  = "import.default_weight_unit"
	KeyImportDefaultLengthUnit  = "import.default_length_unit"
	KeyImportMaxImages          = "import.max_images"
	KeyExportCurrency           = "export.currency"
	KeyExportDelimiter          = "export.delimiter"
	KeyExportExcelFriendly      = "export.excel_friendly"
	KeyExportTaxRate            = "export.tax_rate"
	KeyExportStrict             = "export.strict"
)

// Policy defaults. The error threshold and merge policy are deliberate
// product decisions carried as configuration, not constants.
const (
	DefaultErrorThreshold = 0.5
	DefaultMaxImages      = 10
	DefaultTaxRate        = 23
)

type Config struct {
	Import ImportConfig `mapstructure:"import"`
	Export ExportConfig `mapstructure:"export"`
}

// ImportConfig carries the import policy parameters.
type ImportConfig struct {
	// ErrorThreshold is the error-row share at or above which an import is
	// reported as failed overall.
	ErrorThreshold float64 `mapstructure:"error_threshold" validate:"gte=0,lte=1"`
	// OverwriteWithEmpty lets empty incoming cells clear existing values on
	// update. Off by default: only non-empty values overwrite.
	OverwriteWithEmpty bool   `mapstructure:"overwrite_with_empty"`
	DefaultWeightUnit  string `mapstructure:"default_weight_unit" validate:"oneof=g kg lb oz"`
	DefaultLengthUnit  string `mapstructure:"default_length_unit" validate:"oneof=cm mm in ft"`
	MaxImages          int    `mapstructure:"max_images" validate:"gt=0"`
}

type ExportConfig struct {
	Currency      string  `mapstructure:"currency" validate:"len=3"`
	Delimiter     string  `mapstructure:"delimiter"`
	ExcelFriendly bool    `mapstructure:"excel_friendly"`
	TaxRate       float64 `mapstructure:"tax_rate" validate:"gte=0"`
	// Strict aborts an export on the first mapper validation failure
	// instead of skipping the offending record.
	Strict bool `mapstructure:"strict"`
}

// SetDefaults sets default values if not provided.
func SetDefaults() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyImportErrorThreshold, DefaultErrorThreshold)
	v.SetDefault(KeyImportOverwriteWithEmpty, false)
	v.SetDefault(KeyImportDefaultWeightUnit, "g")
	v.SetDefault(KeyImportDefaultLengthUnit, "cm")
	v.SetDefault(KeyImportMaxImages, DefaultMaxImages)
	v.SetDefault(KeyExportCurrency, "USD")
	v.SetDefault(KeyExportDelimiter, ",")
	v.SetDefault(KeyExportExcelFriendly, false)
	v.SetDefault(KeyExportTaxRate, DefaultTaxRate)
	v.SetDefault(KeyExportStrict, false)
}

// LoadAndValidate loads config from Viper and validates it.
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# golist configuration
import:
  # Import is reported failed when the error-row share reaches this value.
  error_threshold: 0.5
  # When true, empty incoming cells clear existing values on update.
  overwrite_with_empty: false
  default_weight_unit: "g"
  default_length_unit: "cm"
  max_images: 10

export:
  currency: "USD"
  delimiter: ","
  excel_friendly: false
  tax_rate: 23
  strict: false
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if cfg.Import.ErrorThreshold == 0 {
		return nil, fmt.Errorf("validation failed: import.error_threshold must be greater than 0")
	}
	if strings.TrimSpace(cfg.Export.Currency) == "" {
		return nil, fmt.Errorf("validation failed: export.currency is required")
	}
	if cfg.Export.Delimiter != "," && cfg.Export.Delimiter != ";" {
		return nil, fmt.Errorf("validation failed: export.delimiter must be %q or %q", ",", ";")
	}

	return &cfg, nil
}
