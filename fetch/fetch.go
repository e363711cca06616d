// Package fetch retrieves site resources such as posts.json and pages/<file>,
// either over HTTP or from a filesystem.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// Fetcher returns the body of a site-relative resource.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// StatusError reports a non-success response.
type StatusError struct {
	Name string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.Name, e.Code)
}

// IsNotFound reports whether err is a 404 StatusError or a missing file.
func IsNotFound(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusNotFound
	}
	return errors.Is(err, fs.ErrNotExist)
}

// maxBody caps responses; posts are small text documents.
const maxBody = 8 << 20

// ErrTooLarge is returned for a response body over the size cap.
var ErrTooLarge = errors.New("fetch: response body too large")

// HTTP fetches resources relative to a base URL.
type HTTP struct {
	base   *url.URL
	client *http.Client
}

// NewHTTP returns a fetcher rooted at baseURL. A nil client gets one with
// timeout as its overall deadline.
func NewHTTP(baseURL string, client *http.Client, timeout time.Duration) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("fetch: unsupported scheme %q", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTP{base: u, client: client}, nil
}

// Fetch GETs name resolved against the base URL.
func (h *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	ref, err := url.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	target := h.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, &StatusError{Name: name, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", name, err)
	}
	if len(body) > maxBody {
		return nil, fmt.Errorf("fetch %s: %w", name, ErrTooLarge)
	}
	return body, nil
}

// FS reads resources from a filesystem, typically os.DirFS of a site
// directory.
type FS struct {
	fsys fs.FS
}

// NewFS returns a fetcher over fsys.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Fetch reads name, which may carry a query string or leading slash the
// way a URL would.
func (f *FS) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := name
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	if unescaped, err := url.PathUnescape(clean); err == nil {
		clean = unescaped
	}
	clean = strings.TrimPrefix(path.Clean("/"+clean), "/")
	if clean == "" || !fs.ValidPath(clean) {
		return nil, fmt.Errorf("fetch %s: %w", name, fs.ErrInvalid)
	}
	body, err := fs.ReadFile(f.fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return body, nil
}
