package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/snapdeck/snapdeck/internal/preset"
)

// Config holds the daemon configuration.
type Config struct {
	// GapSize is the pixel gap between arranged windows.
	GapSize int `yaml:"gap_size"`
	// ScreenPadding insets the work area on all sides before layout.
	ScreenPadding int `yaml:"screen_padding"`
	// Hotkeys maps X11 key sequences (e.g. "mod4-shift-left") to command
	// identifiers from the trigger table.
	Hotkeys map[string]string `yaml:"hotkeys"`
	// SelfIdentity lists substrings identifying the host application's own
	// windows by app name, class, or title. Matching windows are never
	// arranged.
	SelfIdentity []string `yaml:"self_identity"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		GapSize:       0,
		ScreenPadding: 0,
		Hotkeys: map[string]string{
			"mod4-left":        "window-left-half",
			"mod4-right":       "window-right-half",
			"mod4-up":          "window-top-half",
			"mod4-down":        "window-bottom-half",
			"mod4-return":      "window-fill",
			"mod4-c":           "window-center",
			"mod4-shift-o":     "windows-organize",
			"mod4-shift-left":  "window-move-left",
			"mod4-shift-right": "window-move-right",
			"mod4-shift-up":    "window-move-up",
			"mod4-shift-down":  "window-move-down",
		},
		SelfIdentity: []string{"snapdeck"},
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "snapdeck", "config.yaml"), nil
}

// Load reads the configuration from the standard location, falling back to
// defaults when no file exists.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates configuration from path. A missing file
// is not an error: defaults are returned.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks field ranges and that every hotkey binding names a known
// command.
func (c *Config) Validate() error {
	if c.GapSize < 0 {
		return fmt.Errorf("gap_size must be >= 0, got %d", c.GapSize)
	}
	if c.ScreenPadding < 0 {
		return fmt.Errorf("screen_padding must be >= 0, got %d", c.ScreenPadding)
	}

	for key, command := range c.Hotkeys {
		if _, ok := preset.FromTrigger(command); !ok {
			return fmt.Errorf("hotkey %q is bound to unknown command %q", key, command)
		}
	}

	return nil
}
