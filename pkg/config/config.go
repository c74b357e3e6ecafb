package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Query    QueryConfig    `yaml:"query"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ProviderConfig struct {
	Type         string `yaml:"type"`          // "google" or "ical"
	Credentials  string `yaml:"credentials"`   // OAuth client secret file (read-only input)
	TokenFile    string `yaml:"token_file"`    // persisted OAuth credential
	FeedURL      string `yaml:"feed_url"`      // ICS feed URL, ical provider only
	CallbackPort int    `yaml:"callback_port"` // local port for the OAuth consent redirect
}

type QueryConfig struct {
	CalendarID string `yaml:"calendar_id"`
	MaxResults int64  `yaml:"max_results"`
	// UseLocalTime converts user-supplied dates from the local timezone
	// to UTC when building query windows. When false (the default), wall
	// clock dates are taken as UTC verbatim and a literal "Z" is appended
	// on serialization. That is an approximation, not a timezone
	// conversion, and is kept explicit here rather than hardcoded.
	UseLocalTime bool `yaml:"use_local_time"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the zero-configuration defaults: Google provider,
// credential files in the working directory, primary calendar.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Provider.Type == "" {
		c.Provider.Type = "google"
	}
	if c.Provider.Credentials == "" {
		c.Provider.Credentials = "credentials.json"
	}
	if c.Provider.TokenFile == "" {
		c.Provider.TokenFile = "token.json"
	}
	if c.Provider.CallbackPort == 0 {
		c.Provider.CallbackPort = 3000
	}
	if c.Query.CalendarID == "" {
		c.Query.CalendarID = "primary"
	}
	if c.Query.MaxResults == 0 {
		c.Query.MaxResults = 2500
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func (c *Config) validate() error {
	switch c.Provider.Type {
	case "google":
		if c.Provider.Credentials == "" {
			return fmt.Errorf("provider: credentials path is required")
		}
	case "ical":
		if c.Provider.FeedURL == "" {
			return fmt.Errorf("provider: feed_url is required for the ical provider")
		}
	default:
		return fmt.Errorf("provider: unsupported type %q", c.Provider.Type)
	}

	if c.Provider.CallbackPort < 0 || c.Provider.CallbackPort > 65535 {
		return fmt.Errorf("provider: callback_port %d out of range", c.Provider.CallbackPort)
	}
	if c.Query.MaxResults < 0 {
		return fmt.Errorf("query: max_results must be positive")
	}

	return nil
}
