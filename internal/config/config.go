package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// PreviewRows is how many rows the preview command shows.
	PreviewRows int `mapstructure:"preview_rows" yaml:"preview_rows"`
	// Delimiter is the default CSV delimiter ("", ",", ";", "tab").
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// Alpha is the normality significance threshold for method selection.
	Alpha float64 `mapstructure:"alpha" yaml:"alpha"`
	// MaxRows caps how many data rows are loaded; 0 means unlimited.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows"`
	// Plot dimensions in pixels.
	PlotWidth  int `mapstructure:"plot_width" yaml:"plot_width"`
	PlotHeight int `mapstructure:"plot_height" yaml:"plot_height"`
}

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		PreviewRows: 10,
		Alpha:       0.05,
		MaxRows:     100000,
		PlotWidth:   900,
		PlotHeight:  500,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.surveylens/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".surveylens")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SURVEYLENS")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("preview_rows", d.PreviewRows)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("alpha", d.Alpha)
	v.SetDefault("max_rows", d.MaxRows)
	v.SetDefault("plot_width", d.PlotWidth)
	v.SetDefault("plot_height", d.PlotHeight)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".surveylens"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
