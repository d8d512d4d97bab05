package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds project-level defaults applied to requests made by the CLI.
// Boolean fields are pointers so a config file can be told apart from an
// unset value when merging.
type Config struct {
	UserAgent      string `yaml:"userAgent,omitempty"`
	Timeout        int    `yaml:"timeout,omitempty"`        // seconds
	ConnectTimeout int    `yaml:"connectTimeout,omitempty"` // seconds
	VerifySSL      *bool  `yaml:"verifySSL,omitempty"`
	CookieJar      string `yaml:"cookieJar,omitempty"`
	HistoryDB      string `yaml:"historyDB,omitempty"`
	NoColor        *bool  `yaml:"noColor,omitempty"`
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(b bool) *bool {
	return &b
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetVerifySSL returns the SSL verification setting, defaulting to false.
// Verification is opt-in, matching the request library.
func (c *Config) GetVerifySSL() bool {
	return getBool(c.VerifySSL, false)
}

// GetNoColor returns the no color setting, defaulting to false.
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".request.yaml",
	".request.yml",
	"request.yaml",
	"request.yml",
}

// Load loads configuration from the specified path, or searches the current
// directory when path is empty.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFromFile(path)
	}
	return FindAndLoad(".")
}

// FindAndLoad searches for a config file in the given directory, returning
// defaults when none exists.
func FindAndLoad(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadFromFile(configPath)
		}
	}
	return Default(), nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Merge merges another config into this one, with other taking precedence.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c

	if other.UserAgent != "" {
		result.UserAgent = other.UserAgent
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.ConnectTimeout > 0 {
		result.ConnectTimeout = other.ConnectTimeout
	}
	if other.CookieJar != "" {
		result.CookieJar = other.CookieJar
	}
	if other.HistoryDB != "" {
		result.HistoryDB = other.HistoryDB
	}

	// Boolean flags only override when explicitly set.
	if other.VerifySSL != nil {
		result.VerifySSL = other.VerifySSL
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
