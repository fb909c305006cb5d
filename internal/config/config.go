package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "flowershow.yml"

// EnvPrefix marks environment overrides: FLOWERSHOW_CONTENT_DIR -> content_dir.
const EnvPrefix = "FLOWERSHOW_"

type Config struct {
	// Content
	ContentDir  string   `yaml:"content_dir" koanf:"content_dir"`
	SearchIndex string   `yaml:"search_index" koanf:"search_index"`
	Exclude     []string `yaml:"exclude" koanf:"exclude"`

	// Navigation
	Locale         string  `yaml:"locale" koanf:"locale"`
	ViewportOffset float64 `yaml:"viewport_offset" koanf:"viewport_offset"`
	ShowSidebar    bool    `yaml:"show_sidebar" koanf:"show_sidebar"`
	ShowToc        bool    `yaml:"show_toc" koanf:"show_toc"`

	// Server
	Port           string   `yaml:"port" koanf:"port"`
	APIKey         string   `yaml:"api_key,omitempty" koanf:"api_key"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes" koanf:"max_upload_bytes"`

	// Rebuilds
	Watch           bool          `yaml:"watch" koanf:"watch"`
	RebuildDebounce time.Duration `yaml:"rebuild_debounce" koanf:"rebuild_debounce"`

	// Logging
	LogFormat string `yaml:"log_format" koanf:"log_format"`
	LogLevel  string `yaml:"log_level" koanf:"log_level"`
}

// DefaultConfig returns the settings used when neither a file nor the
// environment says otherwise.
func DefaultConfig() *Config {
	return &Config{
		ContentDir:      "content",
		SearchIndex:     "public/search.json",
		Exclude:         []string{".git/**", "node_modules/**", ".flowershow/**"},
		Locale:          "und",
		ShowSidebar:     true,
		ShowToc:         true,
		Port:            "8090",
		AllowedOrigins:  []string{"*"},
		MaxUploadBytes:  10 << 20,
		Watch:           true,
		RebuildDebounce: 300 * time.Millisecond,
		LogFormat:       "json",
		LogLevel:        "info",
	}
}

// Load reads configuration from the given YAML file, then overlays
// FLOWERSHOW_* environment variables. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogFormats = map[string]bool{"json": true, "text": true}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
		}
	}
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}
	if c.RebuildDebounce < 0 {
		return fmt.Errorf("rebuild_debounce must be non-negative")
	}
	if !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format %q: must be json or text", c.LogFormat)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
