package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// Config holds runtime settings for the edit client.
type Config struct {
	CatalogURL            string
	SnapshotFile          string
	RequestTimeout        time.Duration
	CSRFToken             string
	LogLevel              string
	AutocompleteMinLength int
	ReplaceSingle         bool
}

// LoadDefaults populates c with defaults suitable for a local catalog.
func (c *Config) LoadDefaults() {
	c.CatalogURL = "http://127.0.0.1:8000"
	c.SnapshotFile = "page.yaml"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.AutocompleteMinLength = 3
}

// LoadConfig applies defaults, then the JSON file (if any), then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var err error
	u, perr := url.Parse(c.CatalogURL)
	switch {
	case perr != nil:
		err = multierr.Append(err, fmt.Errorf("catalog url: %w", perr))
	case u.Scheme != "http" && u.Scheme != "https", u.Host == "":
		err = multierr.Append(err, fmt.Errorf("catalog url %q: want http(s)://host", c.CatalogURL))
	}
	if strings.TrimSpace(c.SnapshotFile) == "" {
		err = multierr.Append(err, errors.New("snapshot file is required"))
	}
	if c.RequestTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("request timeout %s is negative", c.RequestTimeout))
	}
	if c.AutocompleteMinLength < 0 {
		err = multierr.Append(err, fmt.Errorf("autocomplete min length %d is negative", c.AutocompleteMinLength))
	}
	return err
}
