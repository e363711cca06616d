// Package staticblog runs the client-side behavior of a static blog against a
// modeled browser page: the post listing with search and tag filters, the
// single-post page, and the theme switch shared by both. It also serves the
// site with Echo, adding an RSS feed and a sitemap built from posts.json.
package staticblog

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/staticblog/dom"
	"github.com/eringen/staticblog/fetch"
	"github.com/eringen/staticblog/markdown"
	"github.com/eringen/staticblog/storage"
	"github.com/eringen/staticblog/theme"
)

// MarkdownRenderer converts a post body to HTML.
type MarkdownRenderer interface {
	Render(src string) (string, error)
}

// CodeHighlighter colors the code blocks under root and reports how many it
// changed.
type CodeHighlighter interface {
	HighlightAll(root *dom.Element) int
}

// App holds what every page of a site shares: where resources come from,
// the local storage, the content renderers and the logger.
type App struct {
	Config      SiteConfig
	Fetcher     fetch.Fetcher
	Storage     storage.Storage
	Markdown    MarkdownRenderer
	Highlighter CodeHighlighter
	Logger      echo.Logger
}

// New creates an App. Without WithFetcher, resources are read from
// cfg.SiteDir on disk.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	lg := log.New("staticblog")
	lg.SetLevel(log.INFO)
	lg.SetHeader("${time_rfc3339} ${level} ${prefix}")

	a := &App{
		Config:      cfg,
		Fetcher:     fetch.NewFS(os.DirFS(cfg.SiteDir)),
		Storage:     storage.NewMemory(nil),
		Markdown:    markdown.New(markdown.DefaultOptions()),
		Highlighter: markdown.NewHighlighter(cfg.HighlightStyle),
		Logger:      lg,
	}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewHTTPFetcher returns a fetcher for a site published at baseURL, using
// the configured timeout.
func (a *App) NewHTTPFetcher(baseURL string) (*fetch.HTTP, error) {
	return fetch.NewHTTP(baseURL, nil, a.Config.FetchTimeout)
}

// newTheme returns the theme controller of a page. Pages call Init and Bind
// from inside the window before anything else.
func (a *App) newTheme(win *dom.Window) *theme.Controller {
	c := theme.New(win, a.Storage)
	c.OnError = func(err error) {
		a.Logger.Errorf("save theme: %v", err)
	}
	return c
}

func (a *App) setLoading(doc *dom.Document, on bool) {
	el := doc.GetElementByID(idLoading)
	if el == nil {
		return
	}
	if on {
		el.SetDisplay("flex")
	} else {
		el.SetDisplay("none")
	}
}
