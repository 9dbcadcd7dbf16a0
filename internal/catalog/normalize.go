package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// StripMode selects how the filler word "item" is removed from a name.
type StripMode string

const (
	// StripSubstring removes every occurrence of "item", wherever it appears.
	StripSubstring StripMode = "substring"
	// StripAffix removes "item" only when it leads or trails the name.
	StripAffix StripMode = "affix"
)

const filler = "item"

// ParseStripMode validates a configured strip mode. Empty selects StripSubstring.
func ParseStripMode(value string) (StripMode, error) {
	switch StripMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", StripSubstring:
		return StripSubstring, nil
	case StripAffix:
		return StripAffix, nil
	default:
		return "", fmt.Errorf("unknown strip mode %q", value)
	}
}

// Normalizer derives integer ids from display names.
type Normalizer struct {
	Strip StripMode
}

// Normalize returns the id encoded in name. ok is false when the name does
// not describe an item: no digits, leftover letters, or an id of zero.
func (n Normalizer) Normalize(name string) (id int, ok bool) {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(strings.TrimLeft(b.String(), "0"))

	if !strings.ContainsFunc(s, unicode.IsDigit) {
		return 0, false
	}

	switch n.Strip {
	case StripAffix:
		s = strings.TrimPrefix(s, filler)
		s = strings.TrimSuffix(s, filler)
	default:
		s = strings.ReplaceAll(s, filler, "")
	}

	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}
