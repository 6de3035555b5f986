package larousse

import (
	"log/slog"
	"time"
)

// DefaultBaseURL is the French monolingual dictionary root. The word is
// appended as the last path segment.
const DefaultBaseURL = "https://www.larousse.fr/dictionnaires/francais/"

// DefaultUserAgent is a desktop browser string; the site serves a reduced
// page to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/75.0.3770.142 Safari/537.36"

// Config configures the upstream client.
type Config struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`    // default 20s
	MaxBytes  int64         `yaml:"max_bytes"`  // default 5 MiB
	UserAgent string        `yaml:"user_agent"` // default DefaultUserAgent

	Browser BrowserConfig `yaml:"browser"`

	// URLValidator runs before every request and redirect, after the
	// check that the URL stays on the BaseURL host.
	// Default: ValidateURL.
	URLValidator func(string) error `yaml:"-"`

	Logger *slog.Logger `yaml:"-"`
}

// BrowserConfig controls escalation to a headless browser when the plain
// HTTP response is blocked or carries no definition block.
type BrowserConfig struct {
	Enabled bool `yaml:"enabled"`
	// RemoteURL is a DevTools websocket URL. Empty launches a local Chrome.
	RemoteURL  string        `yaml:"remote_url"`
	NavTimeout time.Duration `yaml:"nav_timeout"` // default 30s
}

func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 20 * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 5 << 20
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Browser.NavTimeout <= 0 {
		c.Browser.NavTimeout = 30 * time.Second
	}
	if c.URLValidator == nil {
		c.URLValidator = ValidateURL
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
