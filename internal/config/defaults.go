package config

import "github.com/meur/unlockforge/internal/page"

const (
	defaultSource    = "data/items.json"
	defaultOutput    = "index.html"
	defaultStripMode = "substring"
	defaultLogLevel  = "info"
	defaultLogFormat = "auto"
	defaultFileName  = "unlockforge.toml"
)

// defaultUnlocked is the unlocked list shipped before configuration existed.
var defaultUnlocked = []string{"1-25", "57-58", "61", "72", "76-77", "81", "83", "85-88", "90-94", "97", "119", "246"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	unlocked := make([]string, len(defaultUnlocked))
	copy(unlocked, defaultUnlocked)

	return Config{
		Source:   defaultSource,
		Output:   defaultOutput,
		Unlocked: unlocked,
		Normalize: Normalize{
			Strip: defaultStripMode,
		},
		Page: Page{
			Title: page.DefaultTitle,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
