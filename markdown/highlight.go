package markdown

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/eringen/staticblog/dom"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

const (
	langPrefix      = "language-"
	highlightedAttr = "data-highlighted"
)

// Highlighter colours <pre><code class="language-x"> blocks in place.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter returns a highlighter using the named chroma style. Unknown
// names fall back to chroma's default style.
func NewHighlighter(styleName string) *Highlighter {
	if styleName == "" {
		styleName = DefaultStyle
	}
	return &Highlighter{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.PreventSurroundingPre(true)),
	}
}

// Highlight returns highlighted HTML for code in lang. ok is false when no
// lexer knows lang.
func (h *Highlighter) Highlight(lang, code string) (out string, ok bool, err error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false, nil
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false, err
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", false, err
	}
	return buf.String(), true, nil
}

// HighlightAll highlights every fenced code block under root that names a
// known language and has not been highlighted yet. Blocks without a
// language, or with an unknown one, are left as they are. It returns the
// number of blocks changed.
func (h *Highlighter) HighlightAll(root *dom.Element) int {
	if root == nil {
		return 0
	}
	n := 0
	for _, code := range root.QueryAllTag("code") {
		pre := code.Parent()
		if pre == nil || pre.Tag() != "pre" {
			continue
		}
		if _, done := code.Attribute(highlightedAttr); done {
			continue
		}
		lang := language(code)
		if lang == "" {
			continue
		}
		out, ok, err := h.Highlight(lang, code.TextContent())
		if err != nil || !ok {
			continue
		}
		if err := code.SetInnerHTML(out); err != nil {
			continue
		}
		code.SetAttribute(highlightedAttr, "true")
		pre.AddClass("chroma")
		n++
	}
	return n
}

func language(code *dom.Element) string {
	class, _ := code.Attribute("class")
	for _, c := range strings.Fields(class) {
		if strings.HasPrefix(c, langPrefix) {
			return strings.TrimPrefix(c, langPrefix)
		}
	}
	return ""
}
