package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Config struct {
	APIURL          string   `yaml:"api_url"`
	RequestTimeout  string   `yaml:"request_timeout"`
	PageSize        int      `yaml:"page_size"`
	DefaultTopic    string   `yaml:"default_topic"`
	DefaultCategory string   `yaml:"default_category"`
	Topics          []string `yaml:"topics"`
	Categories      []string `yaml:"categories"`
	AdminKey        string   `yaml:"admin_key,omitempty"`
	Debug           bool     `yaml:"debug,omitempty"`
}

// envOverrides are applied on top of the file; NEWSLINE_API_URL beats
// whatever the yaml says, and the admin key usually only lives in the
// environment.
type envOverrides struct {
	APIURL   string `envconfig:"API_URL"`
	AdminKey string `envconfig:"ADMIN_KEY"`
	Debug    bool   `envconfig:"DEBUG"`
}

func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GetPageSize returns the feed page size, defaulting to 5.
func (c *Config) GetPageSize() int {
	if c.PageSize <= 0 {
		return 5
	}
	return c.PageSize
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsline", "config.yaml")
}

func SessionPath() string {
	return filepath.Join(xdg.StateHome, "newsline", "session.json")
}

func DebugLogPath() string {
	return filepath.Join(xdg.StateHome, "newsline", "debug.log")
}

func HistoryPath() string {
	return filepath.Join(xdg.CacheHome, "newsline", "newsline.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return applyEnv(defaults)
			}
			return applyEnv(defaults)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	fillMissing(&cfg, defaults)

	loaded, err := applyEnv(&cfg)
	if err != nil {
		return nil, err
	}
	if err := validate(loaded); err != nil {
		return nil, err
	}
	return loaded, nil
}

func applyEnv(cfg *Config) (*Config, error) {
	var env envOverrides
	if err := envconfig.Process("newsline", &env); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if env.APIURL != "" {
		cfg.APIURL = env.APIURL
	}
	if env.AdminKey != "" {
		cfg.AdminKey = env.AdminKey
	}
	if env.Debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// fillMissing backfills fields the user's file left out so a partial
// config still works.
func fillMissing(cfg, defaults *Config) {
	if cfg.APIURL == "" {
		cfg.APIURL = defaults.APIURL
	}
	if cfg.RequestTimeout == "" {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.DefaultTopic == "" {
		cfg.DefaultTopic = defaults.DefaultTopic
	}
	if cfg.DefaultCategory == "" {
		cfg.DefaultCategory = defaults.DefaultCategory
	}
	if len(cfg.Topics) == 0 {
		cfg.Topics = defaults.Topics
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = defaults.Categories
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url scheme must be http or https, got %q", u.Scheme)
	}
	if cfg.PageSize < 0 {
		return fmt.Errorf("page_size must not be negative, got %d", cfg.PageSize)
	}
	if cfg.DefaultCategory != "" && len(cfg.Categories) > 0 {
		found := false
		for _, c := range cfg.Categories {
			if c == cfg.DefaultCategory {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("default_category %q is not in categories", cfg.DefaultCategory)
		}
	}
	return nil
}
