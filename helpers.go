package staticblog

import (
	"net/url"
	"path"
	"strings"

	"github.com/eringen/staticblog/views"
)

// BuildURL joins a base URL with path segments. The result always ends in a
// slash when no segments are given, so it can serve as a site root.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	if len(pathSegments) == 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PostLink returns the absolute URL of the post page for file.
func PostLink(base, file string) string {
	return BuildURL(base) + views.PostURL(file)
}
