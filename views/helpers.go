package views

import (
	"net/url"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ParseDate parses a post date in any of the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a post date as YYYY.MM.DD. Dates in an unknown layout
// are returned unchanged.
func FormatDate(s string) string {
	if t, ok := ParseDate(s); ok {
		return t.Format("2006.01.02")
	}
	return strings.TrimSpace(s)
}

// PostURL links to the single-post page for file.
func PostURL(file string) string {
	return PostPage + "?p=" + url.QueryEscape(file)
}

// TagURL links to the listing filtered by tag.
func TagURL(tag string) string {
	return IndexPage + "?tag=" + url.QueryEscape(tag)
}

// TagClass returns the CSS classes of a tag button.
func TagClass(active bool) string {
	if active {
		return "tag-button active"
	}
	return "tag-button"
}
