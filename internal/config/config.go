package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Dicklesworthstone/muxmon/internal/monitor"
)

// Config represents the main configuration
type Config struct {
	Session  string         `toml:"session"`  // Default tmux session name
	Remote   string         `toml:"remote"`   // Optional ssh host; tmux runs there
	Layout   LayoutConfig   `toml:"layout"`
	Reflow   ReflowConfig   `toml:"reflow"`
	Borders  BordersConfig  `toml:"borders"`
	Monitors MonitorsConfig `toml:"monitors"`
}

// LayoutConfig holds grid planning settings
type LayoutConfig struct {
	Mode     string  `toml:"mode"`      // vertical, horizontal, square, wide, tall, aspect, auto
	Padding  bool    `toml:"padding"`   // Fill trailing slots so rows stay uniform
	StackMax float64 `toml:"stack_max"` // Aspect at or below which auto stacks a single column
	TallMax  float64 `toml:"tall_max"`  // Aspect below which auto prefers tall cells
	WideMin  float64 `toml:"wide_min"`  // Aspect at or above which auto prefers wide cells
}

// ReflowConfig holds live reflow settings
type ReflowConfig struct {
	Enabled     bool   `toml:"enabled"`      // Install resize/attach hooks
	MinInterval string `toml:"min_interval"` // Debounce between reflows, e.g. "500ms"
}

// BordersConfig holds pane border cosmetics
type BordersConfig struct {
	Enabled     bool   `toml:"enabled"`
	Style       string `toml:"style"`        // tmux style string for inactive borders
	ActiveStyle string `toml:"active_style"` // tmux style string for the active border
}

// MonitorsConfig holds monitor program settings
type MonitorsConfig struct {
	Program   string            `toml:"program"`   // Graph binary each pane runs
	Args      []string          `toml:"args"`      // Extra args appended to every pane command
	Overrides map[string]string `toml:"overrides"` // Full command replacement per monitor name
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Session: "muxmon",
		Layout: LayoutConfig{
			Mode:     "auto",
			Padding:  true,
			StackMax: 0.95,
			TallMax:  1.25,
			WideMin:  2.40,
		},
		Reflow: ReflowConfig{
			Enabled:     true,
			MinInterval: "500ms",
		},
		Borders: BordersConfig{
			Enabled:     true,
			Style:       "fg=colour240",
			ActiveStyle: "fg=colour39",
		},
		Monitors: MonitorsConfig{
			Program: monitor.DefaultProgram,
		},
	}
}

// DefaultPath returns the default config file path
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "muxmon", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "muxmon", "config.toml")
}

// Load reads the config file at path, or the default path when path is
// empty. Keys absent from the file keep their Default() values, which is
// why decoding goes through toml.Decode: several defaults are true and a
// zero-value check cannot tell "false" from "missing".
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !md.IsDefined("layout", "padding") {
		cfg.Layout.Padding = Default().Layout.Padding
	}
	if !md.IsDefined("reflow", "enabled") {
		cfg.Reflow.Enabled = Default().Reflow.Enabled
	}
	if !md.IsDefined("borders", "enabled") {
		cfg.Borders.Enabled = Default().Borders.Enabled
	}

	// Environment variable overrides
	if remote := os.Getenv("MUXMON_REMOTE"); remote != "" {
		cfg.Remote = remote
	}
	if session := os.Getenv("MUXMON_SESSION"); session != "" {
		cfg.Session = session
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default() when no
// config file exists. Any other read or parse failure is still an error:
// a broken config should stop the launch, not silently revert.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) && path == "" {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that TOML decoding cannot
func (c *Config) Validate() error {
	switch c.Layout.Mode {
	case "vertical", "horizontal", "square", "wide", "tall", "aspect", "auto":
	default:
		return fmt.Errorf("invalid layout mode %q", c.Layout.Mode)
	}
	if c.Layout.StackMax <= 0 || c.Layout.TallMax <= 0 || c.Layout.WideMin <= 0 {
		return fmt.Errorf("layout thresholds must be positive")
	}
	if c.Layout.StackMax > c.Layout.TallMax || c.Layout.TallMax > c.Layout.WideMin {
		return fmt.Errorf("layout thresholds must satisfy stack_max <= tall_max <= wide_min")
	}
	if c.Reflow.MinInterval != "" {
		if _, err := time.ParseDuration(c.Reflow.MinInterval); err != nil {
			return fmt.Errorf("invalid reflow min_interval: %w", err)
		}
	}
	return nil
}

// ReflowInterval parses the configured debounce interval. Validate has
// already rejected malformed values, so a parse failure here only happens
// for a hand-built Config and maps to zero (no debounce).
func (c *Config) ReflowInterval() time.Duration {
	d, err := time.ParseDuration(c.Reflow.MinInterval)
	if err != nil {
		return 0
	}
	return d
}
