package staticblog

import (
	"errors"

	"github.com/eringen/staticblog/dom"
	"github.com/eringen/staticblog/frontmatter"
	"github.com/eringen/staticblog/postindex"
	"github.com/eringen/staticblog/theme"
)

// Element ids the page shells provide.
const (
	idPostsList     = "posts-list"
	idNoPosts       = "no-posts"
	idLoading       = "loading"
	idSearchInput   = "search-input"
	idTagsContainer = "tags-container"
	idTagsSection   = "tags-section"

	idPostTitle   = "post-title"
	idPostMeta    = "post-meta"
	idPostContent = "post-content"
	idPostTags    = "post-tags"
	idComments    = "giscus-container"
)

// User-facing post page messages.
const (
	MsgPostNotFound = "Post not found."
	MsgLoadFailed   = "Could not load the post."
	errorTitle      = "Error"
)

// ErrNoPostParam is recorded on a post page opened without a p parameter.
var ErrNoPostParam = errors.New("staticblog: no post specified")

// ResultHandler receives the posts selected by a search or tag change.
type ResultHandler func(posts []postindex.Summary)

// IndexPage is a running listing page.
type IndexPage struct {
	app    *App
	win    *dom.Window
	Filter *postindex.Filter
	Theme  *theme.Controller

	searchTimer *dom.Timer
}

// PostState tracks a post page through its load.
type PostState int

const (
	PostIdle PostState = iota
	PostLoading
	PostLoaded
	PostFailed
)

func (s PostState) String() string {
	switch s {
	case PostIdle:
		return "idle"
	case PostLoading:
		return "loading"
	case PostLoaded:
		return "loaded"
	case PostFailed:
		return "failed"
	}
	return "unknown"
}

// PostPage is a loaded (or failed) single-post page.
type PostPage struct {
	State    PostState
	File     string
	Title    string
	Metadata frontmatter.Metadata
	Err      error
	Theme    *theme.Controller
}
