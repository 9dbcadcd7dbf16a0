package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Item represents a catalog entry keyed by the id derived from its name
type Item struct {
	ID        int    `json:"id"`
	Points    Points `json:"points"`
	Expansion string `json:"expansion"`
	Image     string `json:"image"`
	XWS       string `json:"xws"` // Card code
}

// RawItem is one record of the source catalog before normalization
type RawItem struct {
	Name      string `json:"name"`
	Points    Points `json:"points"`
	Expansion string `json:"expansion"`
	Image     string `json:"image"`
	XWS       string `json:"xws"`
}

// ItemList is a collection of items
type ItemList struct {
	Items      []Item `json:"items"`
	TotalCount int    `json:"total_count"`
}

// Points keeps the source value of the points field, which may be a number or a string.
type Points json.RawMessage

// PointsOf builds a Points value holding the given string.
func PointsOf(s string) Points {
	raw, _ := json.Marshal(s)
	return Points(raw)
}

// String renders numbers as their literal and strings unquoted.
func (p Points) String() string {
	trimmed := bytes.TrimSpace(p)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return strings.TrimSpace(string(trimmed))
}

// MarshalJSON implements json.Marshaler
func (p Points) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(p)) == 0 {
		return []byte("null"), nil
	}
	return []byte(p), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Points) UnmarshalJSON(data []byte) error {
	*p = append((*p)[:0], data...)
	return nil
}
