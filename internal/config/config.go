package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Backend names accepted in [search].backend
const (
	BackendStatic = "static"
	BackendSQLite = "sqlite"
	BackendHTTP   = "http"
)

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Search  SearchSettings `toml:"search"`
	UI      UISettings     `toml:"ui"`
	Keys    KeySettings    `toml:"keys"`
}

// SearchSettings selects and tunes the search backend
type SearchSettings struct {
	Backend       string   `toml:"backend"`
	Limit         int      `toml:"limit"`
	URL           string   `toml:"url,omitempty"`
	Token         string   `toml:"token,omitempty"`
	DBPath        string   `toml:"db_path,omitempty"`
	SeedFile      string   `toml:"seed_file,omitempty"`
	RatePerSecond float64  `toml:"rate_per_second"`
	Timeout       Duration `toml:"timeout"`
	CacheSize     int      `toml:"cache_size"` // 0 disables the cache
	CacheTTL      Duration `toml:"cache_ttl"`
	Workers       int      `toml:"workers"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Placeholder    string `toml:"placeholder"`
	Width          int    `toml:"width"`
	Mouse          bool   `toml:"mouse"`
	NotifyOnAction bool   `toml:"notify_on_action"`
	CopyOnAction   bool   `toml:"copy_on_action"`
}

// KeySettings maps logical actions to key names as bubbletea spells them
// ("up", "ctrl+p", "enter", ...)
type KeySettings struct {
	Previous []string `toml:"previous"`
	Next     []string `toml:"next"`
	Confirm  []string `toml:"confirm"`
	Cancel   []string `toml:"cancel"`
}

// Duration is a time.Duration written as a string ("5s") in TOML
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service for the default location
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service bound to path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "suggest", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, returning defaults when no file exists yet
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Tokens may live here
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the settings the widget cannot run without
func (c *Config) Validate() error {
	var errs []error

	switch c.Search.Backend {
	case BackendStatic, BackendSQLite:
	case BackendHTTP:
		if c.Search.URL == "" {
			errs = append(errs, errors.New("search.url is required for the http backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown search.backend %q", c.Search.Backend))
	}
	if c.Search.Limit <= 0 {
		errs = append(errs, fmt.Errorf("search.limit must be positive, got %d", c.Search.Limit))
	}
	if c.Search.Workers < 0 || c.Search.CacheSize < 0 {
		errs = append(errs, errors.New("search.workers and search.cache_size must not be negative"))
	}

	for name, keys := range map[string][]string{
		"previous": c.Keys.Previous,
		"next":     c.Keys.Next,
		"confirm":  c.Keys.Confirm,
		"cancel":   c.Keys.Cancel,
	} {
		if len(keys) == 0 {
			errs = append(errs, fmt.Errorf("keys.%s must list at least one key", name))
		}
	}

	return errors.Join(errs...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Search: SearchSettings{
			Backend:       BackendStatic,
			Limit:         10,
			RatePerSecond: 0,
			Timeout:       Duration{5 * time.Second},
			CacheSize:     256,
			CacheTTL:      Duration{time.Minute},
			Workers:       4,
		},
		UI: UISettings{
			Placeholder: "Start typing...",
			Width:       60,
			Mouse:       true,
		},
		Keys: KeySettings{
			Previous: []string{"up", "ctrl+p"},
			Next:     []string{"down", "ctrl+n"},
			Confirm:  []string{"enter"},
			Cancel:   []string{"esc"},
		},
	}
}
