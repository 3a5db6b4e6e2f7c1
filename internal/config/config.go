package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ThemeConfig holds TUI color overrides on top of a preset.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServeConfig holds settings for the HTTP surface.
type ServeConfig struct {
	Addr          string `mapstructure:"addr"`
	SessionSecret string `mapstructure:"session_secret"`
}

// Config holds the application configuration.
type Config struct {
	Storage    string      `mapstructure:"storage"`
	DataDir    string      `mapstructure:"data_dir"`
	CatalogURL string      `mapstructure:"catalog_url"`
	SiteURL    string      `mapstructure:"site_url"`
	CacheTTL   string      `mapstructure:"cache_ttl"`
	MaxWidth   int         `mapstructure:"max_width"`
	Editor     string      `mapstructure:"editor"`
	Theme      ThemeConfig `mapstructure:"theme"`
	Log        LogConfig   `mapstructure:"log"`
	Serve      ServeConfig `mapstructure:"serve"`
}

// DefaultDataDir returns the default data directory (~/.featurectl/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".featurectl")
	}
	return filepath.Join(home, ".featurectl")
}

// DefaultConfigPath is where Load looks for a config file when none is given
// and XDG_CONFIG_HOME is unset.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.toml")
}

// FeaturesPageURL is where share links point: the catalog page of the site.
func (c *Config) FeaturesPageURL() string {
	return strings.TrimSuffix(c.SiteURL, "/") + "/features"
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", "file")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("site_url", "http://localhost:3000")
	v.SetDefault("catalog_url", "http://localhost:3000/features.json")
	v.SetDefault("cache_ttl", "10m")
	v.SetDefault("max_width", 100)
	v.SetDefault("editor", "")
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.markdown_style", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("serve.addr", "localhost:8080")
	v.SetDefault("serve.session_secret", "")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "featurectl"))
		}
		v.AddConfigPath(filepath.Join(DefaultDataDir()))
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: FEATURECTL_STORAGE, FEATURECTL_LOG_LEVEL, etc.
	v.SetEnvPrefix("FEATURECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
