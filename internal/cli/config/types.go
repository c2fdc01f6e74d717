// Package config provides configuration management for the webui CLI.
package config

import "time"

// Default configuration values.
const (
	DefaultAPIURL         = "https://podcastindex.org"
	DefaultRecentEpisodes = 7
	DefaultHTTPTimeout    = 10 * time.Second
	DefaultUserAgent      = "podcastindex-webui"
	DefaultOutput         = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPort           = 8765

	// MaxRecentEpisodes bounds recent_episodes.
	MaxRecentEpisodes = 1000

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "WEBUI_"
)

// ConfigFileNames are searched, in order, when no config file is given.
var ConfigFileNames = []string{"webui.yaml", "webui.yml"}

// IndexConfig points at a local podcast index database.
type IndexConfig struct {
	Path string `koanf:"path"`
}

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port     int  `koanf:"port"`
	AutoOpen bool `koanf:"auto_open"`
	Watch    bool `koanf:"watch"`
}

// Config holds all CLI configuration options.
type Config struct {
	APIURL         string        `koanf:"api_url"`
	RecentEpisodes int           `koanf:"recent_episodes"`
	HTTPTimeout    time.Duration `koanf:"http_timeout"`
	RateLimit      float64       `koanf:"rate_limit"`
	UserAgent      string        `koanf:"user_agent"`
	Verbose        bool          `koanf:"verbose"`
	OutputFormat   string        `koanf:"output"`
	Index          IndexConfig   `koanf:"index"`
	UI             UIConfig      `koanf:"ui"`
}

// UsesIndex reports whether a local index is configured.
func (c *Config) UsesIndex() bool {
	return c.Index.Path != ""
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		APIURL:         DefaultAPIURL,
		RecentEpisodes: DefaultRecentEpisodes,
		HTTPTimeout:    DefaultHTTPTimeout,
		UserAgent:      DefaultUserAgent,
		OutputFormat:   DefaultOutput,
		UI: UIConfig{
			Port:     DefaultPort,
			AutoOpen: true,
		},
	}
}
