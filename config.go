package staticblog

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/staticblog/fetch"
	"github.com/eringen/staticblog/markdown"
	"github.com/eringen/staticblog/storage"
	"github.com/eringen/staticblog/views"
)

// SiteConfig holds all configuration for a site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "Blog")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS
	Author      string `mapstructure:"author"`

	Addr      string `mapstructure:"addr"`       // Listen address (default ":3000")
	SiteDir   string `mapstructure:"site_dir"`   // Static site root (default "public")
	IndexPath string `mapstructure:"index_path"` // Post index, relative to the site root (default "posts.json")
	PagesDir  string `mapstructure:"pages_dir"`  // Raw post documents (default "pages")

	StoragePath    string `mapstructure:"storage_path"`    // Local storage database (default "data/storage.db")
	HighlightStyle string `mapstructure:"highlight_style"` // chroma style (default "github")

	SearchDelay   time.Duration `mapstructure:"search_delay"`    // Idle time before a search runs (default 300ms)
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`   // HTTP fetch timeout (default 10s)
	IndexCacheTTL time.Duration `mapstructure:"index_cache_ttl"` // Server-side posts.json cache TTL (default 5min)

	Comments CommentsConfig `mapstructure:"comments"`
	Labels   views.Labels   `mapstructure:"-"`
}

// CommentsConfig configures the giscus comments widget. Comments are only
// attached when Repo is set.
type CommentsConfig struct {
	ScriptURL     string `mapstructure:"script_url"` // default "https://giscus.app/client.js"
	Repo          string `mapstructure:"repo"`
	RepoID        string `mapstructure:"repo_id"`
	Category      string `mapstructure:"category"`
	CategoryID    string `mapstructure:"category_id"`
	Mapping       string `mapstructure:"mapping"`        // default "pathname"
	Strict        bool   `mapstructure:"strict"`
	Reactions     *bool  `mapstructure:"reactions"`      // default true
	EmitMetadata  *bool  `mapstructure:"emit_metadata"`  // default true
	InputPosition string `mapstructure:"input_position"` // default "top"
	Lang          string `mapstructure:"lang"`           // default "en"
	Loading       string `mapstructure:"loading"`        // default "lazy"
}

// DefaultSearchDelay is the idle time after the last keystroke before the
// search input filters the list.
const DefaultSearchDelay = 300 * time.Millisecond

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.SiteDir == "" {
		c.SiteDir = "public"
	}
	if c.IndexPath == "" {
		c.IndexPath = "posts.json"
	}
	if c.PagesDir == "" {
		c.PagesDir = "pages"
	}
	if c.StoragePath == "" {
		c.StoragePath = "data/storage.db"
	}
	if c.HighlightStyle == "" {
		c.HighlightStyle = markdown.DefaultStyle
	}
	if c.SearchDelay == 0 {
		c.SearchDelay = DefaultSearchDelay
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.IndexCacheTTL == 0 {
		c.IndexCacheTTL = 5 * time.Minute
	}
	if c.Comments.ScriptURL == "" {
		c.Comments.ScriptURL = "https://giscus.app/client.js"
	}
	if c.Comments.Mapping == "" {
		c.Comments.Mapping = "pathname"
	}
	if c.Comments.InputPosition == "" {
		c.Comments.InputPosition = "top"
	}
	if c.Comments.Lang == "" {
		c.Comments.Lang = "en"
	}
	if c.Comments.Loading == "" {
		c.Comments.Loading = "lazy"
	}
	if c.Comments.Reactions == nil {
		c.Comments.Reactions = Bool(true)
	}
	if c.Comments.EmitMetadata == nil {
		c.Comments.EmitMetadata = Bool(true)
	}
	if c.Labels == (views.Labels{}) {
		c.Labels = views.DefaultLabels()
	}
}

// Bool returns a pointer to b, for the optional comment switches.
func Bool(b bool) *bool {
	return &b
}

// Option configures additional App behavior.
type Option func(*App)

// WithStorage sets the local storage backing the theme preference
// (default: in-memory).
func WithStorage(s storage.Storage) Option {
	return func(a *App) {
		a.Storage = s
	}
}

// WithMarkdown replaces the markdown renderer. A nil renderer makes post
// pages fall back to preformatted text.
func WithMarkdown(r MarkdownRenderer) Option {
	return func(a *App) {
		a.Markdown = r
	}
}

// WithHighlighter replaces the code highlighter. nil disables highlighting.
func WithHighlighter(h CodeHighlighter) Option {
	return func(a *App) {
		a.Highlighter = h
	}
}

// WithLogger sets the logger shared with the server.
func WithLogger(l echo.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithFetcher replaces the fetcher the pages load resources from.
func WithFetcher(f fetch.Fetcher) Option {
	return func(a *App) {
		a.Fetcher = f
	}
}
