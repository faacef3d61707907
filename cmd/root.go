package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/surveylens/surveylens-cli/internal/config"
	"github.com/surveylens/surveylens-cli/internal/dataset"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "surveylens",
	Short: "Surveylens CLI: descriptive and association analysis for survey tables",
	Long: `Surveylens explores tabular survey data (CSV or Excel .xlsx): per-column
descriptive statistics, and normality-aware correlation between two chosen
variables with a scatter/regression visualization. The Shapiro-Wilk test
decides between Pearson and Spearman.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.surveylens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// effectiveConfig returns the loaded configuration or built-in defaults
// when none was loaded (e.g. in tests that execute commands directly).
func effectiveConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return cfgpkg.Default()
}

// parseDelimiter maps a user-supplied delimiter flag to a rune; empty means
// auto-detect by extension.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s (use ','|';'|'tab')", s)
	}
}

// loadOptions assembles dataset load options from config and the
// per-command sheet/delimiter flags.
func loadOptions(delimiter, sheet string, sheetIndex int) (dataset.LoadOptions, error) {
	c := effectiveConfig()
	opt := dataset.DefaultLoadOptions()
	opt.MaxRows = c.MaxRows
	if delimiter == "" {
		delimiter = c.Delimiter
	}
	d, err := parseDelimiter(delimiter)
	if err != nil {
		return opt, err
	}
	opt.Delimiter = d
	opt.Sheet = sheet
	opt.SheetIndex = sheetIndex
	return opt, nil
}
