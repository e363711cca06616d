// Package postindex loads the post index (posts.json) and filters it by
// free-text query and tag.
package postindex

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/eringen/staticblog/fetch"
)

// DefaultPath is where the index lives relative to the site root.
const DefaultPath = "posts.json"

// Summary is one entry of the post index.
type Summary struct {
	File        string   `json:"file"`
	Title       string   `json:"title"`
	Date        string   `json:"date,omitempty"`
	Category    string   `json:"category,omitempty"`
	Excerpt     string   `json:"excerpt,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// HasTag reports whether tag is one of the post's tags, compared exactly.
func (s Summary) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Decode parses an index document.
func Decode(data []byte) ([]Summary, error) {
	var posts []Summary
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("postindex: decode: %w", err)
	}
	return posts, nil
}

// Load fetches and decodes the index at path.
func Load(ctx context.Context, f fetch.Fetcher, path string) ([]Summary, error) {
	if path == "" {
		path = DefaultPath
	}
	data, err := f.Fetch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("postindex: load: %w", err)
	}
	return Decode(data)
}

// Filter holds the loaded posts and the active tag of one page view. It is
// not safe for concurrent use; page code runs it from the window's single
// execution context.
type Filter struct {
	posts     []Summary
	activeTag string
}

// NewFilter returns a filter over posts with activeTag preselected, usually
// taken from the page's tag query parameter.
func NewFilter(posts []Summary, activeTag string) *Filter {
	if posts == nil {
		posts = []Summary{}
	}
	return &Filter{posts: posts, activeTag: activeTag}
}

// Posts returns the full set in index order. Like every filter result it is
// a fresh slice the caller may reorder.
func (f *Filter) Posts() []Summary {
	return slices.Clone(f.posts)
}

// ActiveTag returns the current tag constraint, or "".
func (f *Filter) ActiveTag() string {
	return f.activeTag
}

// FilterBySearch matches query case-insensitively against title, excerpt,
// description, category and tags, then applies the active tag. An empty
// query returns the tag-filtered set.
func (f *Filter) FilterBySearch(query string) []Summary {
	if strings.TrimSpace(query) == "" {
		if f.activeTag != "" {
			return f.FilterByTag(f.activeTag)
		}
		return f.Posts()
	}

	q := strings.TrimSpace(strings.ToLower(query))
	out := []Summary{}
	for _, p := range f.posts {
		if !matches(p, q) {
			continue
		}
		if f.activeTag != "" && !p.HasTag(f.activeTag) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p Summary, q string) bool {
	if contains(p.Title, q) || contains(p.Excerpt, q) || contains(p.Description, q) || contains(p.Category, q) {
		return true
	}
	for _, t := range p.Tags {
		if contains(t, q) {
			return true
		}
	}
	return false
}

func contains(field, lowerQuery string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), lowerQuery)
}

// FilterByTag sets the active tag and returns the posts carrying it. An
// empty tag clears the constraint and returns every post. Matching is
// case-sensitive, unlike FilterBySearch.
func (f *Filter) FilterByTag(tag string) []Summary {
	if tag == "" {
		f.activeTag = ""
		return f.Posts()
	}
	f.activeTag = tag
	out := []Summary{}
	for _, p := range f.posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// AllTags returns the distinct tags across all posts, sorted.
func (f *Filter) AllTags() []string {
	set := make(map[string]struct{})
	for _, p := range f.posts {
		for _, t := range p.Tags {
			set[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
