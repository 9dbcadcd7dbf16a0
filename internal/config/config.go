package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/meur/unlockforge/internal/catalog"
	"github.com/meur/unlockforge/internal/page"
	"github.com/meur/unlockforge/internal/unlock"
)

//go:embed sample_config.toml
var sampleConfig string

// ErrInvalid marks a configuration that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Environment variables consulted during Load.
const (
	EnvConfig = "UNLOCKFORGE_CONFIG"
	EnvSource = "UNLOCKFORGE_SOURCE"
	EnvOutput = "UNLOCKFORGE_OUTPUT"
	EnvLevel  = "LOG_LEVEL"
)

// Normalize contains name normalization settings.
type Normalize struct {
	Strip string `toml:"strip" yaml:"strip"`
}

// Page contains settings for the rendered page.
type Page struct {
	Title        string   `toml:"title" yaml:"title"`
	ImageBaseURL string   `toml:"image_base_url" yaml:"image_base_url"`
	Intro        string   `toml:"intro" yaml:"intro"`
	Bonus        []string `toml:"bonus" yaml:"bonus"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Config encapsulates all configuration values for unlockforge.
type Config struct {
	Source    string    `toml:"source" yaml:"source"`
	Output    string    `toml:"output" yaml:"output"`
	Unlocked  []string  `toml:"unlocked" yaml:"unlocked"`
	Normalize Normalize `toml:"normalize" yaml:"normalize"`
	Page      Page      `toml:"page" yaml:"page"`
	Logging   Logging   `toml:"logging" yaml:"logging"`

	unlocked unlock.Set
	strip    catalog.StripMode
}

// Load locates, parses, and validates a configuration file. An explicit path
// that does not exist is an error; with no path, defaults apply when neither
// $UNLOCKFORGE_CONFIG nor ./unlockforge.toml is present.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		if err := decodeFile(resolvedPath, &cfg); err != nil {
			return nil, "", false, err
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	explicit := strings.TrimSpace(path)
	if explicit == "" {
		explicit = strings.TrimSpace(os.Getenv(EnvConfig))
	}
	if explicit != "" {
		absolute, err := filepath.Abs(explicit)
		if err != nil {
			return "", false, fmt.Errorf("resolve config path: %w", err)
		}
		info, err := os.Stat(absolute)
		if err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("%w: config path %s is a directory", ErrInvalid, absolute)
		}
		return absolute, true, nil
	}

	projectPath, err := filepath.Abs(defaultFileName)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(projectPath)
	switch {
	case err == nil && !info.IsDir():
		return projectPath, true, nil
	case err == nil, errors.Is(err, fs.ErrNotExist):
		return projectPath, false, nil
	default:
		return "", false, fmt.Errorf("stat config: %w", err)
	}
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := Decode(file, filepath.Ext(path), cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Decode reads configuration in the format named by ext (".toml", ".yaml",
// ".yml") over the values already in cfg.
func Decode(r io.Reader, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".toml", "":
		return toml.NewDecoder(r).Decode(cfg)
	default:
		return fmt.Errorf("%w: unsupported config format %q", ErrInvalid, ext)
	}
}

func (c *Config) normalize() {
	if v := strings.TrimSpace(os.Getenv(EnvSource)); v != "" {
		c.Source = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutput)); v != "" {
		c.Output = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLevel)); v != "" {
		c.Logging.Level = v
	}

	c.Source = strings.TrimSpace(c.Source)
	c.Output = strings.TrimSpace(c.Output)
	c.Normalize.Strip = strings.ToLower(strings.TrimSpace(c.Normalize.Strip))
	c.Page.Title = strings.TrimSpace(c.Page.Title)
	c.Page.ImageBaseURL = strings.TrimSpace(c.Page.ImageBaseURL)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

// UnlockedSet returns the parsed unlocked ids. Valid after Validate.
func (c *Config) UnlockedSet() unlock.Set {
	return c.unlocked
}

// StripMode returns the parsed name normalization mode. Valid after Validate.
func (c *Config) StripMode() catalog.StripMode {
	if c.strip == "" {
		return catalog.StripSubstring
	}
	return c.strip
}

// PageOptions converts the page section for the renderer.
func (c *Config) PageOptions() page.Options {
	bonus := make([]string, len(c.Page.Bonus))
	copy(bonus, c.Page.Bonus)
	return page.Options{
		Title:        c.Page.Title,
		ImageBaseURL: c.Page.ImageBaseURL,
		Intro:        c.Page.Intro,
		Bonus:        bonus,
	}
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}
