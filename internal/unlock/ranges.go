// Package unlock parses the configured unlocked-item range tokens into a set of ids.
package unlock

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidToken marks a malformed range token in the configuration.
var ErrInvalidToken = errors.New("invalid range token")

const maxPrealloc = 1 << 16

// interval is an inclusive [lo, hi] span.
type interval struct {
	lo, hi int
}

// Set is an immutable set of ids stored as sorted, non-adjacent intervals.
type Set struct {
	spans []interval
}

// Parse converts tokens such as "1-25" or "61" into a Set.
func Parse(tokens []string) (Set, error) {
	spans := make([]interval, 0, len(tokens))
	for _, token := range tokens {
		span, err := parseToken(token)
		if err != nil {
			return Set{}, err
		}
		spans = append(spans, span)
	}
	return Set{spans: merge(spans)}, nil
}

// MustParse is like Parse but panics on error. Use only for compiled-in defaults.
func MustParse(tokens ...string) Set {
	set, err := Parse(tokens)
	if err != nil {
		panic(err)
	}
	return set
}

func parseToken(token string) (interval, error) {
	part := strings.TrimSpace(token)
	if part == "" {
		return interval{}, fmt.Errorf("%w %q: empty", ErrInvalidToken, token)
	}

	start, end, isRange := strings.Cut(part, "-")
	if !isRange {
		n, err := parseBound(part)
		if err != nil {
			return interval{}, fmt.Errorf("%w %q: %v", ErrInvalidToken, token, err)
		}
		return interval{lo: n, hi: n}, nil
	}

	lo, err := parseBound(start)
	if err != nil {
		return interval{}, fmt.Errorf("%w %q: start: %v", ErrInvalidToken, token, err)
	}
	hi, err := parseBound(end)
	if err != nil {
		return interval{}, fmt.Errorf("%w %q: end: %v", ErrInvalidToken, token, err)
	}
	if lo > hi {
		return interval{}, fmt.Errorf("%w %q: start %d is greater than end %d", ErrInvalidToken, token, lo, hi)
	}
	return interval{lo: lo, hi: hi}, nil
}

func parseBound(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing number")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric content %q", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("number %q out of range", s)
	}
	return n, nil
}

// merge sorts spans and collapses overlapping or adjacent ones.
func merge(spans []interval) []interval {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].lo < spans[j].lo
	})

	merged := []interval{spans[0]}
	for _, span := range spans[1:] {
		last := &merged[len(merged)-1]
		if span.lo <= last.hi || span.lo-1 == last.hi {
			if span.hi > last.hi {
				last.hi = span.hi
			}
			continue
		}
		merged = append(merged, span)
	}
	return merged
}

// Contains reports whether id is in the set.
func (s Set) Contains(id int) bool {
	i := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].hi >= id
	})
	return i < len(s.spans) && s.spans[i].lo <= id
}

// Len returns the number of ids in the set, saturating at math.MaxInt.
func (s Set) Len() int {
	total := 0
	for _, span := range s.spans {
		n := span.hi - span.lo
		if n > math.MaxInt-1-total {
			return math.MaxInt
		}
		total += n + 1
	}
	return total
}

// Empty reports whether the set holds no ids.
func (s Set) Empty() bool {
	return len(s.spans) == 0
}

// Values returns every id in ascending order. Only use it on small sets.
func (s Set) Values() []int {
	values := make([]int, 0, min(s.Len(), maxPrealloc))
	for _, span := range s.spans {
		for id := span.lo; ; id++ {
			values = append(values, id)
			if id == span.hi {
				break
			}
		}
	}
	return values
}

// Tokens returns the canonical token list, one per merged span.
func (s Set) Tokens() []string {
	tokens := make([]string, 0, len(s.spans))
	for _, span := range s.spans {
		if span.lo == span.hi {
			tokens = append(tokens, strconv.Itoa(span.lo))
			continue
		}
		tokens = append(tokens, strconv.Itoa(span.lo)+"-"+strconv.Itoa(span.hi))
	}
	return tokens
}

func (s Set) String() string {
	return strings.Join(s.Tokens(), ",")
}
