// Package config defines the configuration schema for edubridge.
//
// Configuration lives at ~/.edubridge/config.json and can be supplemented
// or replaced entirely by EDUPAGE_* environment variables, which is the
// usual setup when the server runs under an MCP client.
package config

import (
	"os"
	"path/filepath"
)

// SchoolConfig holds credentials for one school account.
type SchoolConfig struct {
	// Subdomain is the school's address prefix, e.g. "gymba" for
	// gymba.edupage.org. It doubles as the school name in tool arguments.
	Subdomain string `json:"subdomain"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// TimelineConfig tunes the default shape of timeline queries.
type TimelineConfig struct {
	// Limit is the default page size when a tool call does not pass one.
	Limit int `json:"limit"`
}

func defaultTimelineConfig() TimelineConfig {
	return TimelineConfig{Limit: 50}
}

// Config is the full configuration tree.
type Config struct {
	Schools  []SchoolConfig `json:"schools"`
	Timeline TimelineConfig `json:"timeline"`
	// Hints overrides or extends the per-error-kind hint strings shown
	// to the caller alongside failures.
	Hints map[string]string `json:"hints,omitempty"`
	// KeepAliveMinutes is the interval between background session pings.
	// Zero disables keep-alive.
	KeepAliveMinutes int `json:"keepAliveMinutes"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Timeline:         defaultTimelineConfig(),
		KeepAliveMinutes: 25,
	}
}

// School returns the configured entry for a subdomain, or nil.
func (c *Config) School(subdomain string) *SchoolConfig {
	for i := range c.Schools {
		if c.Schools[i].Subdomain == subdomain {
			return &c.Schools[i]
		}
	}
	return nil
}

// ConfigPath returns the default configuration file path: ~/.edubridge/config.json.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".edubridge/config.json"
	}
	return filepath.Join(home, ".edubridge", "config.json")
}

// DataDir returns the edubridge data directory: ~/.edubridge.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".edubridge"
	}
	return filepath.Join(home, ".edubridge")
}
