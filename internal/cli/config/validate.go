package config

import (
	"fmt"
	"net/url"
	"slices"
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.UsesIndex() {
		u, err := url.Parse(c.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("api_url must be an http(s) URL, got %q\nHint: set api_url or use --index to read a local index", c.APIURL)
		}
	}
	if c.RecentEpisodes < 1 || c.RecentEpisodes > MaxRecentEpisodes {
		return fmt.Errorf("recent_episodes must be between 1 and %d, got %d", MaxRecentEpisodes, c.RecentEpisodes)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %g", c.RateLimit)
	}
	if c.UI.Port < 0 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port must be between 0 and 65535, got %d", c.UI.Port)
	}
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("output must be one of %v, got %q", OutputFormats, c.OutputFormat)
	}
	return nil
}
