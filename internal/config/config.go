package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/deadline-tracker/internal/event"
	"github.com/pfrederiksen/deadline-tracker/internal/storage"
)

const (
	DefaultPath    = "~/.config/deadline-tracker/config.yaml"
	DefaultDataDir = "~/.local/share/deadline-tracker"
)

// Fetch configures live page downloads.
type Fetch struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	// MaxBodyText caps the captured body text in runes; 0 means unlimited.
	MaxBodyText int `yaml:"max_body_text"`
}

// Config is the YAML configuration file.
type Config struct {
	DataDir     string           `yaml:"data_dir"`
	LogLevel    string           `yaml:"log_level"`
	DedupWindow time.Duration    `yaml:"dedup_window"`
	Urgency     event.Thresholds `yaml:"urgency"`
	Fetch       Fetch            `yaml:"fetch"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataDir:     DefaultDataDir,
		LogLevel:    "info",
		DedupWindow: 24 * time.Hour,
		Urgency:     event.DefaultThresholds(),
		Fetch: Fetch{
			Timeout: 30 * time.Second,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error unless mustExist is set.
func Load(path string, mustExist bool) (*Config, error) {
	c := Default()

	path, err := storage.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return c, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml %s: %w", filepath.Base(path), err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	if c.DedupWindow <= 0 {
		return fmt.Errorf("dedup_window must be positive, got %s", c.DedupWindow)
	}
	if c.Urgency.UrgentDays < 0 {
		return fmt.Errorf("urgency.urgent_days must not be negative, got %d", c.Urgency.UrgentDays)
	}
	if c.Urgency.WarningDays <= c.Urgency.UrgentDays {
		return fmt.Errorf("urgency.warning_days (%d) must be greater than urgency.urgent_days (%d)",
			c.Urgency.WarningDays, c.Urgency.UrgentDays)
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative, got %s", c.Fetch.Timeout)
	}
	if c.Fetch.MaxBodyText < 0 {
		return fmt.Errorf("fetch.max_body_text must not be negative, got %d", c.Fetch.MaxBodyText)
	}
	return nil
}
