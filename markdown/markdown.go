// Package markdown converts post bodies to HTML with goldmark and highlights
// the fenced code blocks of a rendered page with chroma.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Options selects renderer features.
type Options struct {
	GFM        bool // tables, strikethrough, autolinks, task lists
	HardWraps  bool // single newlines become <br>
	HeadingIDs bool // id attributes on headings
	Unsafe     bool // pass raw HTML through
}

// DefaultOptions preserves line breaks, enables GitHub-flavoured syntax and
// heading ids, and lets inline HTML through the way post authors expect.
func DefaultOptions() Options {
	return Options{GFM: true, HardWraps: true, HeadingIDs: true, Unsafe: true}
}

// Renderer turns markdown into HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a renderer for opts.
func New(opts Options) *Renderer {
	var engineOptions []goldmark.Option

	if opts.GFM {
		engineOptions = append(engineOptions, goldmark.WithExtensions(extension.GFM))
	}
	if opts.HeadingIDs {
		engineOptions = append(engineOptions, goldmark.WithParserOptions(parser.WithAutoHeadingID()))
	}

	var rendererOptions []renderer.Option
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	return &Renderer{md: goldmark.New(engineOptions...)}
}

// Render converts src to HTML.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return buf.String(), nil
}
