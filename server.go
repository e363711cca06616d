package staticblog

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/staticblog/fetch"
	"github.com/eringen/staticblog/views"
)

// MsgPageNotFound is the body of the server's 404 page.
const MsgPageNotFound = "Page not found."

// Server serves a site directory with the feed and sitemap generated from
// its post index.
type Server struct {
	App   *App
	Echo  *echo.Echo
	Cache *IndexCache
}

// NewServer builds the Echo instance for the site in a.Config.SiteDir. The
// index is always read from disk, whatever fetcher the pages use.
func (a *App) NewServer() *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger = a.Logger

	s := &Server{
		App:   a,
		Echo:  e,
		Cache: NewIndexCache(fetch.NewFS(os.DirFS(a.Config.SiteDir)), a.Config.IndexPath, a.Config.IndexCacheTTL),
	}
	a.setupMiddleware(e)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	e := s.Echo
	e.GET("/sitemap.xml", s.handleSitemap)
	e.GET("/feed.xml", s.handleFeed)
	e.GET("/robots.txt", s.handleRobots)

	// Page shells missing from the site directory fall back to the
	// embedded defaults.
	e.GET("/", s.handleShell(views.IndexPage))
	e.GET("/"+views.IndexPage, s.handleShell(views.IndexPage))
	e.GET("/"+views.PostPage, s.handleShell(views.PostPage))
}

// Start listens on the configured address until ctx is done, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.Echo.Start(s.App.Config.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Echo.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleSitemap(c echo.Context) error {
	posts, err := s.Cache.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	return s.App.renderSitemap(c, posts)
}

func (s *Server) handleFeed(c echo.Context) error {
	posts, err := s.Cache.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	return s.App.renderRSS(c, posts)
}

func (s *Server) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\nSitemap: "+BuildURL(s.App.Config.URL, "sitemap.xml")+"\n")
}

func (s *Server) handleShell(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := fs.ReadFile(EmbeddedAssets, "embedded/"+name)
		if err != nil {
			return err
		}
		return c.HTMLBlob(http.StatusOK, data)
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.ErrorPanel(a.Config.Labels, MsgPageNotFound))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = c.String(code, http.StatusText(code))
		return
	}
	c.Echo().DefaultHTTPErrorHandler(err, c)
}
