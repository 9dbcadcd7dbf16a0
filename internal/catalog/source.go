package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/meur/unlockforge/internal/models"
	"github.com/meur/unlockforge/internal/storage"
)

var (
	// ErrFetch marks a source that could not be read.
	ErrFetch = errors.New("catalog fetch failed")
	// ErrParse marks a source body that is not a JSON array of item records.
	ErrParse = errors.New("catalog parse failed")
)

// Source yields the raw catalog records.
type Source interface {
	Fetch(ctx context.Context) ([]models.RawItem, error)
	String() string
}

// FileSource reads the catalog from a local JSON file.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]models.RawItem, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer f.Close()
	return Decode(f)
}

func (s FileSource) String() string { return s.Path }

// HTTPSource fetches the catalog with a single GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) ([]models.RawItem, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: GET %s: unexpected status %s", ErrFetch, s.URL, resp.Status)
	}
	return Decode(resp.Body)
}

func (s HTTPSource) String() string { return s.URL }

// StoreSource reads the catalog from a SQLite catalog store.
type StoreSource struct {
	Store *storage.Store
	Path  string
}

func (s StoreSource) Fetch(ctx context.Context) ([]models.RawItem, error) {
	items, err := s.Store.GetRawItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read catalog store: %v", ErrFetch, err)
	}
	return items, nil
}

func (s StoreSource) String() string { return "sqlite:" + s.Path }

// OpenSource picks a source from its configured location. The returned
// close function releases any resources held by the source.
func OpenSource(location string, client *http.Client) (Source, func() error, error) {
	location = strings.TrimSpace(location)
	noop := func() error { return nil }

	switch {
	case location == "":
		return nil, noop, fmt.Errorf("%w: no source configured", ErrFetch)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return HTTPSource{URL: location, Client: client}, noop, nil
	case strings.HasPrefix(location, "sqlite:"), isDatabasePath(location):
		path := strings.TrimPrefix(location, "sqlite:")
		if _, err := os.Stat(path); err != nil {
			return nil, noop, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		store, err := storage.New(path)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		return StoreSource{Store: store, Path: path}, store.Close, nil
	default:
		return FileSource{Path: location}, noop, nil
	}
}

func isDatabasePath(location string) bool {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

var requiredKeys = []string{"name", "points", "expansion", "image", "xws"}

// Decode parses a JSON array of item records. Every record must carry the
// name, points, expansion, image and xws keys; their values are not type checked.
func Decode(r io.Reader) ([]models.RawItem, error) {
	var elements []json.RawMessage
	if err := json.NewDecoder(r).Decode(&elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if elements == nil {
		return nil, fmt.Errorf("%w: document is null, want an array", ErrParse)
	}

	items := make([]models.RawItem, 0, len(elements))
	for i, element := range elements {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(element, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrParse, i)
		}
		for _, key := range requiredKeys {
			if _, ok := fields[key]; !ok {
				return nil, fmt.Errorf("%w: record %d is missing %q", ErrParse, i, key)
			}
		}

		items = append(items, models.RawItem{
			Name:      nameText(fields["name"]),
			Points:    models.Points(append([]byte(nil), fields["points"]...)),
			Expansion: fieldText(fields["expansion"]),
			Image:     fieldText(fields["image"]),
			XWS:       fieldText(fields["xws"]),
		})
	}
	return items, nil
}

// fieldText renders a record value as text: strings unquoted, null as empty,
// anything else as its compact JSON literal.
func fieldText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
		return ""
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

// nameText returns the name only when it is a JSON string, so other values
// normalize to a miss.
func nameText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
