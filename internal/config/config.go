// Package config loads mdreduce's configuration: theme colors for the
// terminal view, chunking/partial-rendering knobs, and the syntax
// highlighting style, from an optional YAML file over built-in defaults,
// the way the teacher's own command-line tool does. Environment variables
// do not override individual values; only XDG_CONFIG_HOME is consulted, to
// locate the config directory.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the root configuration tree for mdreduce.
type Config struct {
	Theme     ThemeConfig     `mapstructure:"theme"`
	Render    RenderConfig    `mapstructure:"render"`
	Highlight HighlightConfig `mapstructure:"highlight"`
}

// ThemeConfig customizes the colors the terminal view uses for each block
// kind. Colors are ANSI color numbers (0-255) or hex codes (#RRGGBB), passed
// straight through to lipgloss.
type ThemeConfig struct {
	Heading string `mapstructure:"heading"`
	Code    string `mapstructure:"code"`
	List    string `mapstructure:"list"`
	Muted   string `mapstructure:"muted"`
}

// RenderConfig controls how the demo CLI feeds input into the reducer and
// whether it shows in-progress blocks before they settle.
type RenderConfig struct {
	ChunkSize int  `mapstructure:"chunk_size"`
	Partial   bool `mapstructure:"partial"`
}

// HighlightConfig selects the chroma style used for fenced code blocks.
type HighlightConfig struct {
	Style string `mapstructure:"style"`
}

// Load reads config.yaml from the XDG config directory (or the current
// directory), falling back to defaults when no file is present.
func Load() (*Config, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("mdreduce: config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	viper.SetDefault("theme.heading", "13")
	viper.SetDefault("theme.code", "10")
	viper.SetDefault("theme.list", "12")
	viper.SetDefault("theme.muted", "245")
	viper.SetDefault("render.chunk_size", 1)
	viper.SetDefault("render.partial", true)
	viper.SetDefault("highlight.style", "monokai")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("mdreduce: read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("mdreduce: unmarshal config: %w", err)
	}

	if cfg.Render.ChunkSize <= 0 {
		slog.Warn("render.chunk_size must be positive, falling back to default", "value", cfg.Render.ChunkSize, "default", 1)
		cfg.Render.ChunkSize = 1
	}

	return &cfg, nil
}

// ConfigDir returns the XDG config directory for mdreduce.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdreduce"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mdreduce"), nil
}

// ConfigPath returns the path config.yaml would be read from or written to.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// defaultConfigContent is written by `mdreduce config reset`.
func defaultConfigContent() string {
	return `# mdreduce configuration
# Run 'mdreduce config edit' to modify

theme:
  heading: "13"
  code: "10"
  list: "12"
  muted: "245"

render:
  chunk_size: 1
  partial: true

highlight:
  style: monokai
`
}

// Save writes the default configuration to disk, creating the config
// directory if needed.
func Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mdreduce: create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigContent()), 0o644)
}

// Exists reports whether a config file is already present.
func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
