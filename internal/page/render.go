// Package page renders the unlocked-items HTML page and reads ids back from it.
package page

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/meur/unlockforge/internal/models"
	"github.com/meur/unlockforge/internal/unlock"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// DefaultTitle heads the page when no title is configured.
const DefaultTitle = "Current Unlocked Items"

// ErrWrite marks a failure to write the rendered page.
var ErrWrite = errors.New("write page")

// Options controls page content beyond the catalog items.
type Options struct {
	Title        string
	ImageBaseURL string   // Prefixed to relative image paths; empty keeps them as is
	Intro        string   // Markdown shown under the title
	Bonus        []string // Markup blocks appended verbatim after the catalog items
}

// Renderer produces the unlocked-items page.
type Renderer struct {
	opts   Options
	bonus  []template.HTML
	intro  template.HTML
	policy *bluemonday.Policy
}

type block struct {
	ID  int
	Src template.URL // Image paths are not validated; the template only encodes them
}

type pageData struct {
	Title string
	Intro template.HTML
	Items []block
	Bonus []template.HTML
}

// NewRenderer converts and sanitizes the configured intro once.
func NewRenderer(opts Options) (*Renderer, error) {
	if strings.TrimSpace(opts.Title) == "" {
		opts.Title = DefaultTitle
	}
	r := &Renderer{opts: opts, policy: newIntroPolicy()}

	if strings.TrimSpace(opts.Intro) != "" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(opts.Intro), &buf); err != nil {
			return nil, fmt.Errorf("render intro: %w", err)
		}
		r.intro = template.HTML(strings.TrimSpace(r.policy.Sanitize(buf.String())))
	}

	// Bonus blocks are operator markup and are emitted exactly as configured.
	for _, markup := range opts.Bonus {
		r.bonus = append(r.bonus, template.HTML(markup))
	}
	return r, nil
}

// newIntroPolicy allows the markup goldmark produces plus item-style classes.
func newIntroPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("div", "p", "span", "img", "a")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Render returns the page for items whose id is in unlocked, in item order,
// followed by the bonus blocks.
func (r *Renderer) Render(items []models.Item, unlocked unlock.Set) ([]byte, error) {
	data := pageData{
		Title: r.opts.Title,
		Intro: r.intro,
		Bonus: r.bonus,
	}
	for _, item := range items {
		if !unlocked.Contains(item.ID) {
			continue
		}
		data.Items = append(data.Items, block{ID: item.ID, Src: template.URL(r.imageURL(item.Image))})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// Shown returns the ids Render would display, in order.
func Shown(items []models.Item, unlocked unlock.Set) []int {
	ids := make([]int, 0, len(items))
	for _, item := range items {
		if unlocked.Contains(item.ID) {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

func (r *Renderer) imageURL(image string) string {
	base := strings.TrimSpace(r.opts.ImageBaseURL)
	if base == "" || image == "" {
		return image
	}
	if u, err := url.Parse(image); err == nil && u.IsAbs() {
		return image
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(image, "/")
}
