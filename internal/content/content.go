// Package content serves static storefront pages (about, shipping,
// returns, privacy, terms) from markdown files with YAML front matter.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// ErrNotFound indicates no page exists for the requested slug.
var ErrNotFound = errors.New("content: page not found")

// Page is a rendered static page.
type Page struct {
	Slug      string
	Title     string
	Summary   string
	Body      template.HTML
	UpdatedAt time.Time
	SEO       SEO
}

// SEO holds optional metadata overrides for static pages.
type SEO struct {
	Title       string
	Description string
	OGImage     string
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
	SEO       struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		OGImage     string `yaml:"og_image"`
	} `yaml:"seo"`
}

// Library loads and caches pages from a filesystem, typically an
// embedded content directory.
type Library struct {
	fsys   fs.FS
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu    sync.RWMutex
	ttl   time.Duration
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// NewLibrary builds a Library over fsys. Page files live at the root
// of fsys as <slug>.md.
func NewLibrary(fsys fs.FS) *Library {
	return &Library{
		fsys: fsys,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		policy: bluemonday.UGCPolicy(),
		ttl:    5 * time.Minute,
		cache:  map[string]cacheEntry{},
	}
}

// SetCacheTTL overrides the cache duration, primarily for tests.
func (l *Library) SetCacheTTL(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	l.mu.Lock()
	l.ttl = d
	l.mu.Unlock()
}

// Get returns the rendered page for slug.
func (l *Library) Get(slug string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}

	now := time.Now()
	l.mu.RLock()
	entry, ok := l.cache[slug]
	l.mu.RUnlock()
	if ok && now.Before(entry.expires) {
		return entry.page, nil
	}

	page, err := l.load(slug)
	if err != nil {
		return Page{}, err
	}

	l.mu.Lock()
	l.cache[slug] = cacheEntry{page: page, expires: now.Add(l.ttl)}
	l.mu.Unlock()
	return page, nil
}

func (l *Library) load(slug string) (Page, error) {
	data, err := fs.ReadFile(l.fsys, slug+".md")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s.md: %w", slug, err)
		}
	}

	var rendered bytes.Buffer
	if err := l.md.Convert([]byte(body), &rendered); err != nil {
		return Page{}, fmt.Errorf("content: render %s.md: %w", slug, err)
	}
	safe := l.policy.SanitizeBytes(rendered.Bytes())

	page := Page{
		Slug:      slug,
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		Body:      template.HTML(safe),
		UpdatedAt: parseDate(front.UpdatedAt),
		SEO: SEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimPrefix(input, "\uFEFF")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, "/\\") {
		return ""
	}
	return slug
}
