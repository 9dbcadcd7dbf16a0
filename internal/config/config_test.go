package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meur/unlockforge/internal/catalog"
	"github.com/meur/unlockforge/internal/config"
	"github.com/meur/unlockforge/internal/unlock"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvConfig, config.EnvSource, config.EnvOutput, config.EnvLevel} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	require.False(t, exists)
	require.Equal(t, "unlockforge.toml", filepath.Base(resolved))

	require.Equal(t, "data/items.json", cfg.Source)
	require.Equal(t, "index.html", cfg.Output)
	require.Equal(t, catalog.StripSubstring, cfg.StripMode())
	require.True(t, cfg.UnlockedSet().Contains(246))
	require.False(t, cfg.UnlockedSet().Contains(26))
	require.Equal(t, "auto", cfg.Logging.Format)
}

func TestLoadProjectFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unlockforge.toml"), []byte(`unlocked = ["2"]`), 0o644))

	cfg, _, exists, err := config.Load("")
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, []int{2}, cfg.UnlockedSet().Values())
}

func TestLoadTOML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "cfg.toml", `
source = "https://example.test/items.json"
output = "out/page.html"
unlocked = ["1-3", "5"]

[normalize]
strip = "Affix"

[page]
title = "Wave 3"
image_base_url = "https://images.example.test"
bonus = ['<div class="item"><p>Bonus</p></div>']

[logging]
level = "DEBUG"
format = "json"
`)

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, path, resolved)

	require.Equal(t, "https://example.test/items.json", cfg.Source)
	require.Equal(t, "out/page.html", cfg.Output)
	require.Equal(t, []int{1, 2, 3, 5}, cfg.UnlockedSet().Values())
	require.Equal(t, catalog.StripAffix, cfg.StripMode())
	require.Equal(t, "debug", cfg.Logging.Level)

	opts := cfg.PageOptions()
	require.Equal(t, "Wave 3", opts.Title)
	require.Equal(t, "https://images.example.test", opts.ImageBaseURL)
	require.Len(t, opts.Bonus, 1)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "cfg.yaml", `
source: catalog.db
unlocked:
  - "10-12"
page:
  intro: "Season **two**"
`)

	cfg, _, _, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "catalog.db", cfg.Source)
	require.Equal(t, []int{10, 11, 12}, cfg.UnlockedSet().Values())
	require.Equal(t, "Season **two**", cfg.Page.Intro)
	require.Equal(t, "index.html", cfg.Output)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "cfg.toml", `source = "file.json"`)
	t.Setenv(config.EnvConfig, path)
	t.Setenv(config.EnvSource, "https://override.test/items.json")
	t.Setenv(config.EnvOutput, "public/index.html")
	t.Setenv(config.EnvLevel, "warn")

	cfg, resolved, _, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, path, resolved)
	require.Equal(t, "https://override.test/items.json", cfg.Source)
	require.Equal(t, "public/index.html", cfg.Output)
	require.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadRejectsMalformedRange(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "cfg.toml", `unlocked = ["1-25", "30-20"]`)

	_, _, _, err := config.Load(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, config.ErrInvalid))
	require.True(t, errors.Is(err, unlock.ErrInvalidToken))
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string]string{
		"strip":      "[normalize]\nstrip = \"word\"",
		"level":      "[logging]\nlevel = \"loud\"",
		"format":     "[logging]\nformat = \"xml\"",
		"base url":   "[page]\nimage_base_url = \"images/\"",
		"source":     "source = \"  \"",
		"bad syntax": "unlocked = [",
	}
	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			_, _, _, err := config.Load(writeConfig(t, "cfg.toml", contents))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	clearEnv(t)

	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	err := config.Decode(strings.NewReader("{}"), ".json", &cfg)
	require.True(t, errors.Is(err, config.ErrInvalid))
}

func TestCreateSampleLoadsAsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "unlockforge.toml")
	require.NoError(t, config.CreateSample(path))

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	require.True(t, exists)

	defaults := config.Default()
	require.Equal(t, defaults.Source, cfg.Source)
	require.Equal(t, defaults.Output, cfg.Output)
	require.Equal(t, defaults.Unlocked, cfg.Unlocked)
	require.Equal(t, defaults.Page.Title, cfg.Page.Title)
	require.Empty(t, cfg.Page.Bonus)
}
