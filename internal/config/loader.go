package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edubridge/edubridge/internal/shared/stringutils"
)

// Load reads and parses the config file at path.
// If path is empty, ConfigPath() is used.
// A missing file yields DefaultConfig(); a malformed file prints a warning
// and also falls back to defaults rather than refusing to start.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to parse config %s: %v\n", path, err)
		fmt.Fprintln(os.Stderr, "Using default configuration.")
		cfg2 := DefaultConfig()
		return &cfg2, nil
	}

	return &cfg, nil
}

// Save writes cfg to path as indented JSON.
// If path is empty, ConfigPath() is used.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	// Credentials live in here.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// MergeEnv folds EDUPAGE_SUBDOMAIN, EDUPAGE_USERNAME and EDUPAGE_PASSWORD
// into the school list. EDUPAGE_SUBDOMAIN may name several schools
// comma-separated; the username and password then apply to each, which
// covers the common case of one parent account linked to several schools.
// Subdomains already present in the file keep their file credentials.
func (c *Config) MergeEnv() {
	subdomains := stringutils.SplitCSV(os.Getenv("EDUPAGE_SUBDOMAIN"))
	if len(subdomains) == 0 {
		return
	}
	username := os.Getenv("EDUPAGE_USERNAME")
	password := os.Getenv("EDUPAGE_PASSWORD")

	for _, sub := range subdomains {
		if c.School(sub) != nil {
			continue
		}
		c.Schools = append(c.Schools, SchoolConfig{
			Subdomain: sub,
			Username:  username,
			Password:  password,
		})
	}
}
