// Package config loads CLI configuration from flags and DD1750_-prefixed
// environment variables, flags taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeConvert  = "convert"
	ModeExtract  = "extract"
	ModeGenerate = "generate"
	ModeFormats  = "formats"

	// Default values
	DefaultStartPage   = 1
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for the DD Form 1750 generator.
type Config struct {
	// Pipeline selection
	Mode string

	// I/O paths. Input is the BOM PDF for convert/extract and the edited
	// session JSON for generate. Output is the packing-list PDF for
	// convert/generate and the session file for extract.
	Input        string
	Output       string
	TemplatePath string

	// Extraction configuration
	StartPage   int
	MaxFileSize int64

	// Header-field values stamped into the first page's editable fields
	PackedBy    string
	Boxes       string
	Requisition string
	Order       string
	EndItem     string
	Date        string

	Debug bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeConvert,
		StartPage:   DefaultStartPage,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand the input path if needed
	if cfg.Input != "" {
		if expandedPath, err := filepath.Abs(cfg.Input); err == nil {
			cfg.Input = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("DD1750")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("input", cfg.Input)
	viper.SetDefault("output", cfg.Output)
	viper.SetDefault("template", cfg.TemplatePath)
	viper.SetDefault("startpage", cfg.StartPage)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("packedby", cfg.PackedBy)
	viper.SetDefault("boxes", cfg.Boxes)
	viper.SetDefault("requisition", cfg.Requisition)
	viper.SetDefault("order", cfg.Order)
	viper.SetDefault("enditem", cfg.EndItem)
	viper.SetDefault("date", cfg.Date)
	viper.SetDefault("debug", cfg.Debug)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode,
		"Run mode: 'convert' (BOM PDF to packing list), 'extract' (BOM PDF to review session), "+
			"'generate' (review session to packing list), 'formats' (list supported BOM layouts)")
	pflag.String("input", cfg.Input, "Source file: BOM PDF for convert/extract, session JSON for generate")
	pflag.String("output", cfg.Output, "Destination: packing-list PDF for convert/generate, session JSON or .xlsx for extract")
	pflag.String("template", cfg.TemplatePath, "Blank DD Form 1750 template PDF (conventional locations tried when unset)")
	pflag.Int("startpage", cfg.StartPage, "First page of the BOM export to read (1-based)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum source file size in bytes")
	pflag.String("packedby", cfg.PackedBy, "Header: packed by")
	pflag.String("boxes", cfg.Boxes, "Header: number of boxes")
	pflag.String("requisition", cfg.Requisition, "Header: requisition number")
	pflag.String("order", cfg.Order, "Header: order number")
	pflag.String("enditem", cfg.EndItem, "Header: end item description (defaults to the extracted one)")
	pflag.String("date", cfg.Date, "Header: date (defaults to today)")
	pflag.Bool("debug", cfg.Debug, "Enable development logging")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("template", pflag.Lookup("template"))
	_ = viper.BindPFlag("startpage", pflag.Lookup("startpage"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("packedby", pflag.Lookup("packedby"))
	_ = viper.BindPFlag("boxes", pflag.Lookup("boxes"))
	_ = viper.BindPFlag("requisition", pflag.Lookup("requisition"))
	_ = viper.BindPFlag("order", pflag.Lookup("order"))
	_ = viper.BindPFlag("enditem", pflag.Lookup("enditem"))
	_ = viper.BindPFlag("date", pflag.Lookup("date"))
	_ = viper.BindPFlag("debug", pflag.Lookup("debug"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ndd1750 - Generate DD Form 1750 packing lists from GCSS-Army BOM exports\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --input=bom.pdf --output=packing_list.pdf              "+
			"# one-shot convert (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=extract --input=bom.pdf --output=session.json   "+
			"# extract for review\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=extract --input=bom.pdf --output=items.xlsx     "+
			"# extract to a spreadsheet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=generate --input=session.json --output=packing_list.pdf\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=formats                                         "+
			"# list supported BOM layouts\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  DD1750_MODE         Run mode\n")
		fmt.Fprintf(os.Stderr, "  DD1750_INPUT        Source file\n")
		fmt.Fprintf(os.Stderr, "  DD1750_OUTPUT       Destination file\n")
		fmt.Fprintf(os.Stderr, "  DD1750_TEMPLATE     Form template PDF\n")
		fmt.Fprintf(os.Stderr, "  DD1750_STARTPAGE    First page to read\n")
		fmt.Fprintf(os.Stderr, "  DD1750_MAXFILESIZE  Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  DD1750_PACKEDBY     Header: packed by\n")
		fmt.Fprintf(os.Stderr, "  DD1750_BOXES        Header: number of boxes\n")
		fmt.Fprintf(os.Stderr, "  DD1750_REQUISITION  Header: requisition number\n")
		fmt.Fprintf(os.Stderr, "  DD1750_ORDER        Header: order number\n")
		fmt.Fprintf(os.Stderr, "  DD1750_ENDITEM      Header: end item description\n")
		fmt.Fprintf(os.Stderr, "  DD1750_DATE         Header: date\n")
		fmt.Fprintf(os.Stderr, "  DD1750_DEBUG        Development logging\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Input = viper.GetString("input")
	cfg.Output = viper.GetString("output")
	cfg.TemplatePath = viper.GetString("template")
	cfg.StartPage = viper.GetInt("startpage")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.PackedBy = viper.GetString("packedby")
	cfg.Boxes = viper.GetString("boxes")
	cfg.Requisition = viper.GetString("requisition")
	cfg.Order = viper.GetString("order")
	cfg.EndItem = viper.GetString("enditem")
	cfg.Date = viper.GetString("date")
	cfg.Debug = viper.GetBool("debug")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeConvert, ModeExtract, ModeGenerate, ModeFormats:
	default:
		return errors.New("mode must be one of: convert, extract, generate, formats")
	}

	// The formats listing needs no files at all
	if c.Mode != ModeFormats && c.Input == "" {
		return fmt.Errorf("input path is required for %s mode", c.Mode)
	}

	// Extract may fall back to stdout; the PDF-producing modes may not
	if (c.Mode == ModeConvert || c.Mode == ModeGenerate) && c.Output == "" {
		return fmt.Errorf("output path is required for %s mode", c.Mode)
	}

	if c.StartPage < 1 {
		return errors.New("start page must be positive")
	}
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.TemplatePath != "" && !strings.HasSuffix(strings.ToLower(c.TemplatePath), ".pdf") {
		return fmt.Errorf("template path must point to a .pdf file: %s", c.TemplatePath)
	}

	return nil
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Input: %s, Output: %s, TemplatePath: %s, StartPage: %d, MaxFileSize: %d, Debug: %t}",
		c.Mode, c.Input, c.Output, c.TemplatePath, c.StartPage, c.MaxFileSize, c.Debug)
}

// IsConvertMode returns true for the one-shot convert pipeline
func (c *Config) IsConvertMode() bool {
	return c.Mode == ModeConvert
}

// IsExtractMode returns true when only extraction is requested
func (c *Config) IsExtractMode() bool {
	return c.Mode == ModeExtract
}

// IsGenerateMode returns true when rendering a reviewed session
func (c *Config) IsGenerateMode() bool {
	return c.Mode == ModeGenerate
}

// IsFormatsMode returns true when listing supported BOM layouts
func (c *Config) IsFormatsMode() bool {
	return c.Mode == ModeFormats
}
