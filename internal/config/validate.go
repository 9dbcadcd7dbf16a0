package config

import (
	"fmt"
	"net/url"

	"github.com/meur/unlockforge/internal/catalog"
	"github.com/meur/unlockforge/internal/unlock"
)

// Validate ensures the configuration is usable and parses the unlocked set.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("%w: source must be set", ErrInvalid)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output must be set", ErrInvalid)
	}
	if err := c.validateUnlocked(); err != nil {
		return err
	}
	if err := c.validateNormalize(); err != nil {
		return err
	}
	if err := c.validatePage(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateUnlocked() error {
	set, err := unlock.Parse(c.Unlocked)
	if err != nil {
		return fmt.Errorf("%w: unlocked: %w", ErrInvalid, err)
	}
	c.unlocked = set
	return nil
}

func (c *Config) validateNormalize() error {
	mode, err := catalog.ParseStripMode(c.Normalize.Strip)
	if err != nil {
		return fmt.Errorf("%w: normalize.strip: %v", ErrInvalid, err)
	}
	c.strip = mode
	return nil
}

func (c *Config) validatePage() error {
	if c.Page.ImageBaseURL == "" {
		return nil
	}
	u, err := url.Parse(c.Page.ImageBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: page.image_base_url must be an absolute URL, got %q", ErrInvalid, c.Page.ImageBaseURL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level: unsupported value %q", ErrInvalid, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("%w: logging.format: unsupported value %q", ErrInvalid, c.Logging.Format)
	}
	return nil
}
