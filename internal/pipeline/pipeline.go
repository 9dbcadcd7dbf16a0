// Package pipeline runs the fetch, normalize, filter, render, and write steps
// that produce the unlocked-items page.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/meur/unlockforge/internal/catalog"
	"github.com/meur/unlockforge/internal/config"
	"github.com/meur/unlockforge/internal/models"
	"github.com/meur/unlockforge/internal/page"
	"github.com/meur/unlockforge/internal/unlock"
)

// Build is the in-memory result of loading and rendering.
type Build struct {
	Items    []models.Item
	Unlocked unlock.Set
	Shown    []int
	Stats    catalog.Stats
	Document []byte
}

// Result describes a completed run.
type Result struct {
	OutputPath string
	Build      Build
	Added      []int // Shown now but not on the previous page
	Removed    []int // On the previous page but no longer shown
	Bytes      int
}

// Runner holds what the pipeline needs between runs.
type Runner struct {
	Config *config.Config
	Client *http.Client
	Logger *zap.Logger
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Build loads the catalog and renders the page without writing it.
func (r *Runner) Build(ctx context.Context) (*Build, error) {
	cfg := r.Config
	if cfg == nil {
		return nil, fmt.Errorf("%w: no configuration", config.ErrInvalid)
	}
	unlocked := cfg.UnlockedSet()

	renderer, err := page.NewRenderer(cfg.PageOptions())
	if err != nil {
		return nil, err
	}

	source, closeSource, err := catalog.OpenSource(cfg.Source, r.Client)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	loader := &catalog.Loader{
		Source:     source,
		Normalizer: catalog.Normalizer{Strip: cfg.StripMode()},
		Logger:     r.logger(),
	}
	items, stats, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", source, err)
	}

	doc, err := renderer.Render(items, unlocked)
	if err != nil {
		return nil, err
	}

	return &Build{
		Items:    items,
		Unlocked: unlocked,
		Shown:    page.Shown(items, unlocked),
		Stats:    stats,
		Document: doc,
	}, nil
}

// Run builds the page and replaces the configured output file with it.
// Nothing is written unless the catalog loaded and rendered.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := r.logger()

	build, err := r.Build(ctx)
	if err != nil {
		return nil, err
	}

	output := r.Config.Output
	result := &Result{OutputPath: output, Build: *build, Bytes: len(build.Document)}

	previous, err := previousCaptions(output)
	switch {
	case err != nil:
		logger.Warn("could not read previous page", zap.String("path", output), zap.Error(err))
	case previous != nil:
		result.Added, result.Removed = page.Diff(previous, build.Shown)
	}

	if err := page.Write(output, build.Document); err != nil {
		return nil, err
	}

	logger.Info("page written",
		zap.String("path", output),
		zap.Int("shown", len(build.Shown)),
		zap.Ints("newly_unlocked", result.Added),
		zap.Ints("no_longer_shown", result.Removed),
		zap.String("size", humanize.Bytes(uint64(result.Bytes))),
	)
	return result, nil
}

// previousCaptions returns the ids on an existing page, or nil when there is none.
func previousCaptions(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ids, err := page.Captions(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}
