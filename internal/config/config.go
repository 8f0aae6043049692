package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	applog "spese-client/internal/log"
)

// DefaultAPIURL is the mock API the mobile client shipped against.
const DefaultAPIURL = "https://67ac71475853dfff53dab929.mockapi.io/api/v1"

type Config struct {
	// Remote API
	APIURL      string        `env:"SPESE_API_URL" envDefault:"https://67ac71475853dfff53dab929.mockapi.io/api/v1"`
	HTTPTimeout time.Duration `env:"SPESE_HTTP_TIMEOUT" envDefault:"30s"`
	UserAgent   string        `env:"SPESE_USER_AGENT" envDefault:"spese-client/1.0"`

	// Logging
	LogLevel  string `env:"SPESE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SPESE_LOG_FORMAT" envDefault:"text"`

	// Presentation
	Locale string `env:"SPESE_LOCALE" envDefault:"en"`
}

// Load reads the configuration from the environment. Call cli.LoadEnvFile
// first to pick up a local .env file.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.APIURL == "" {
		errors = append(errors, "API URL cannot be empty")
	} else if u, err := url.Parse(c.APIURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", u.Scheme))
	} else if u.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': host is required", c.APIURL))
	}

	if c.HTTPTimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must not be negative", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	validFormats := []string{"text", "json"}
	isValidFormat := false
	for _, f := range validFormats {
		if strings.EqualFold(c.LogFormat, f) {
			isValidFormat = true
			break
		}
	}
	if !isValidFormat {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validFormats))
	}

	if _, err := language.Parse(c.Locale); err != nil {
		errors = append(errors, fmt.Sprintf("invalid locale '%s': %v", c.Locale, err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}
