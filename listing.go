package staticblog

import (
	"context"

	"github.com/eringen/staticblog/dom"
	"github.com/eringen/staticblog/postindex"
	"github.com/eringen/staticblog/views"
)

// OpenIndex runs the listing page in win: it applies the theme, loads the
// post index, renders the tag buttons, wires the search input and shows the
// posts selected by the tag query parameter. A failed load is logged and
// rendered as an empty list.
func (a *App) OpenIndex(ctx context.Context, win *dom.Window) *IndexPage {
	page := &IndexPage{app: a, win: win}
	page.Theme = a.newTheme(win)

	win.Do(func() {
		page.Theme.Init()
		page.Theme.Bind()
		a.setLoading(win.Document, true)
	})
	defer win.Do(func() { a.setLoading(win.Document, false) })

	posts, err := postindex.Load(ctx, a.Fetcher, a.Config.IndexPath)
	if err != nil {
		a.Logger.Errorf("load post index: %v", err)
	}

	win.Do(func() {
		page.Filter = postindex.NewFilter(posts, win.QueryParam("tag"))
		page.RenderTags(page.RenderPosts)
		page.SetupSearchInput(page.RenderPosts)

		if tag := page.Filter.ActiveTag(); tag != "" {
			page.RenderPosts(page.Filter.FilterByTag(tag))
		} else {
			page.RenderPosts(page.Filter.Posts())
		}
	})
	return page
}

// Window returns the page's window.
func (p *IndexPage) Window() *dom.Window {
	return p.win
}

// RenderPosts writes one card per post into the list, or shows the empty
// state when posts is empty.
func (p *IndexPage) RenderPosts(posts []postindex.Summary) {
	doc := p.win.Document
	list := doc.GetElementByID(idPostsList)
	empty := doc.GetElementByID(idNoPosts)
	if list == nil {
		return
	}

	if len(posts) == 0 {
		list.SetTextContent("")
		if empty != nil {
			empty.SetDisplay("block")
		}
		return
	}
	if empty != nil {
		empty.SetDisplay("none")
	}
	p.app.render(context.Background(), list, views.PostList(p.app.Config.Labels, posts))
}

// RenderTags writes the tag buttons. A click marks the button active,
// rewrites the tag query parameter without adding history and passes the
// newly selected posts to onTagClick.
func (p *IndexPage) RenderTags(onTagClick ResultHandler) {
	doc := p.win.Document
	container := doc.GetElementByID(idTagsContainer)
	if container == nil {
		return
	}

	tags := p.Filter.AllTags()
	if len(tags) == 0 {
		if section := doc.GetElementByID(idTagsSection); section != nil {
			section.SetDisplay("none")
		}
		return
	}

	p.app.render(context.Background(), container, views.TagButtons(p.app.Config.Labels, tags, p.Filter.ActiveTag()))

	buttons := container.QueryAllClass("tag-button")
	for _, btn := range buttons {
		btn.AddEventListener("click", func(ev dom.Event) {
			for _, b := range buttons {
				b.RemoveClass("active")
			}
			ev.Target.AddClass("active")

			tag, _ := ev.Target.Attribute("data-tag")
			p.win.SetQueryParam("tag", tag)
			if onTagClick != nil {
				onTagClick(p.Filter.FilterByTag(tag))
			}
		})
	}
}

// SetupSearchInput filters the list once typing pauses for the configured
// delay, or at once on Enter.
func (p *IndexPage) SetupSearchInput(onSearch ResultHandler) {
	input := p.win.Document.GetElementByID(idSearchInput)
	if input == nil {
		return
	}

	search := func() {
		if onSearch != nil {
			onSearch(p.Filter.FilterBySearch(input.Value()))
		}
	}

	input.AddEventListener("input", func(dom.Event) {
		p.searchTimer.Clear()
		p.searchTimer = p.win.SetTimeout(p.app.Config.SearchDelay, search)
	})
	input.AddEventListener("keypress", func(ev dom.Event) {
		if ev.Key != "Enter" {
			return
		}
		p.searchTimer.Clear()
		p.searchTimer = nil
		search()
	})
}
