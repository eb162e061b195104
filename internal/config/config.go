// Package config loads gantry settings from an optional TOML file and
// GANTRY_* environment variables. Environment values win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/gantry/internal/gantt"
)

// LayoutConfig holds chart geometry in pixels. Zero values keep the defaults.
type LayoutConfig struct {
	LabelWidth    float64 `toml:"label_width"`
	HeaderHeight  float64 `toml:"header_height"`
	RowHeight     float64 `toml:"row_height"`
	ViewportWidth float64 `toml:"viewport_width"`
}

// ChartConfig holds chart defaults used when the command line does not
// override them.
type ChartConfig struct {
	Granularity string `toml:"granularity"`
	Lexical     bool   `toml:"lexical"`
	ExpandAll   bool   `toml:"expand_all"`
}

// Config is the resolved gantry configuration.
type Config struct {
	DBPath      string       `toml:"db_path"`
	Theme       string       `toml:"theme"`
	LogUseCases bool         `toml:"log"`
	LogLevel    string       `toml:"log_level"`
	Layout      LayoutConfig `toml:"layout"`
	Chart       ChartConfig  `toml:"chart"`

	// Path is the config file that was read, empty when none was found.
	Path string `toml:"-"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	dims := gantt.DefaultDimensions()
	return Config{
		DBPath:   filepath.Join(gantryHome(), "gantry.db"),
		Theme:    "light",
		LogLevel: "info",
		Layout: LayoutConfig{
			LabelWidth:    dims.LabelWidth,
			HeaderHeight:  dims.HeaderHeight,
			RowHeight:     dims.RowHeight,
			ViewportWidth: dims.ViewportWidth,
		},
		Chart: ChartConfig{Granularity: string(gantt.GranularityWeek)},
	}
}

// DefaultPath is where Load looks for a config file when GANTRY_CONFIG is
// unset.
func DefaultPath() string {
	return filepath.Join(gantryHome(), "config.toml")
}

// Load reads the config file named by GANTRY_CONFIG, or DefaultPath, and
// applies environment overrides. A missing default file is not an error; a
// missing file named explicitly is.
func Load() (Config, error) {
	path := os.Getenv("GANTRY_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg, err := LoadFile(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
		cfg = DefaultConfig()
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// LoadFile decodes a TOML file over the defaults. Keys the file does not set
// keep their default values.
func LoadFile(path string) (Config, error) {
	resolved, err := expandHome(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %s: %w", resolved, err)
	}

	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config file %s: %w", resolved, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config file %s: unknown keys %s", resolved, strings.Join(keys, ", "))
	}
	cfg.Path = resolved
	if cfg.DBPath, err = expandHome(cfg.DBPath); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GANTRY_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GANTRY_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("GANTRY_LOG"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GANTRY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GANTRY_GRANULARITY"); v != "" {
		cfg.Chart.Granularity = v
	}
}

// Validate checks the values that cannot be repaired silently.
func (c Config) Validate() error {
	if _, err := gantt.ParseGranularity(c.Chart.Granularity); err != nil {
		return fmt.Errorf("chart.granularity: %w", err)
	}
	if c.Theme != "light" && c.Theme != "dark" {
		return fmt.Errorf("theme: unknown theme %q (want light or dark)", c.Theme)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Dimensions converts the layout section into engine geometry.
func (c Config) Dimensions() gantt.Dimensions {
	return gantt.Dimensions{
		LabelWidth:    c.Layout.LabelWidth,
		HeaderHeight:  c.Layout.HeaderHeight,
		RowHeight:     c.Layout.RowHeight,
		ViewportWidth: c.Layout.ViewportWidth,
	}
}

// Granularity returns the default zoom level, week when unset or invalid.
func (c Config) Granularity() gantt.Granularity {
	g, err := gantt.ParseGranularity(c.Chart.Granularity)
	if err != nil {
		return gantt.GranularityWeek
	}
	return g
}

// SlogLevel returns the configured log level, info when unparseable.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func gantryHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gantry"
	}
	return filepath.Join(home, ".gantry")
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/")
	return filepath.Join(home, trimmed), nil
}
