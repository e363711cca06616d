package staticblog

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/staticblog/dom"
	"github.com/eringen/staticblog/frontmatter"
	"github.com/eringen/staticblog/views"
)

// OpenPost runs the single-post page in win for the document named by the p
// query parameter. Failures never escape: the page shows an error panel
// and the returned PostPage records the cause.
func (a *App) OpenPost(ctx context.Context, win *dom.Window) *PostPage {
	doc := win.Document
	page := &PostPage{Theme: a.newTheme(win)}

	win.Do(func() {
		page.Theme.Init()
		page.Theme.Bind()
		a.setLoading(doc, true)
		page.State = PostLoading
	})
	defer win.Do(func() { a.setLoading(doc, false) })

	page.File = win.QueryParam("p")
	if page.File == "" {
		page.Err = ErrNoPostParam
		win.Do(func() { a.failPost(ctx, doc, page, MsgPostNotFound) })
		return page
	}

	raw, err := a.Fetcher.Fetch(ctx, a.pagePath(page.File))
	if err != nil {
		a.Logger.Errorf("load post %q: %v", page.File, err)
		page.Err = err
		win.Do(func() { a.failPost(ctx, doc, page, MsgLoadFailed) })
		return page
	}

	win.Do(func() { a.showPost(ctx, doc, page, string(raw)) })
	return page
}

// pagePath maps a post file to its site path, escaping each segment.
func (a *App) pagePath(file string) string {
	segs := strings.Split(file, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return path.Join(a.Config.PagesDir, strings.Join(segs, "/"))
}

func (a *App) showPost(ctx context.Context, doc *dom.Document, page *PostPage, raw string) {
	parsed := frontmatter.Parse(raw)
	meta := parsed.Metadata
	page.Metadata = meta

	page.Title = meta.String("title")
	if page.Title == "" {
		page.Title = strings.Replace(page.File, ".md", "", 1)
	}
	a.setPostTitle(doc, page.Title)

	a.render(ctx, doc.GetElementByID(idPostMeta),
		views.PostMeta(a.Config.Labels, meta.String("date"), meta.String("category")))

	content := doc.GetElementByID(idPostContent)
	a.renderContent(ctx, content, parsed.Content)

	if tagsEl := doc.GetElementByID(idPostTags); tagsEl != nil {
		if tags, ok := meta.Strings(frontmatter.TagsKey); ok && len(tags) > 0 {
			a.render(ctx, tagsEl, views.PostTags(tags))
		} else {
			tagsEl.SetDisplay("none")
		}
	}

	if a.Highlighter != nil && content != nil {
		a.Highlighter.HighlightAll(content)
	}
	a.attachComments(doc, page.Theme.Current())
	page.State = PostLoaded
}

func (a *App) renderContent(ctx context.Context, el *dom.Element, body string) {
	if el == nil {
		return
	}
	if a.Markdown == nil {
		a.render(ctx, el, views.Preformatted(body))
		return
	}
	out, err := a.Markdown.Render(body)
	if err != nil {
		a.Logger.Warnf("render markdown: %v", err)
		a.render(ctx, el, views.Preformatted(body))
		return
	}
	if err := el.SetInnerHTML(out); err != nil {
		a.Logger.Errorf("set post content: %v", err)
	}
}

func (a *App) failPost(ctx context.Context, doc *dom.Document, page *PostPage, message string) {
	a.render(ctx, doc.GetElementByID(idPostContent), views.ErrorPanel(a.Config.Labels, message))
	a.setPostTitle(doc, errorTitle)
	page.State = PostFailed
}

func (a *App) setPostTitle(doc *dom.Document, title string) {
	doc.SetTitle(title + " - " + a.Config.Name)
	if el := doc.GetElementByID(idPostTitle); el != nil {
		el.SetTextContent(title)
	}
}
