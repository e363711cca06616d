// Package views holds the templ components that produce the markup written
// into the page: post cards, tag buttons, post metadata and error panels.
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/staticblog/postindex"
)

func write(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// PostCard renders one listing entry. Date, category, excerpt and tags are
// optional.
func PostCard(l Labels, post postindex.Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w,
			`<article class="post-card">`,
			`<h2 class="post-card-title"><a href="`, esc(PostURL(post.File)), `">`, esc(post.Title), `</a></h2>`,
			`<div class="post-card-meta">`,
		); err != nil {
			return err
		}
		if post.Date != "" {
			if err := write(w, `<span>`, l.DateIcon, ` `, esc(FormatDate(post.Date)), `</span>`); err != nil {
				return err
			}
		}
		if post.Category != "" {
			if err := write(w, `<span>`, l.CategoryIcon, ` `, esc(post.Category), `</span>`); err != nil {
				return err
			}
		}
		if err := write(w, `</div>`); err != nil {
			return err
		}
		if post.Excerpt != "" {
			if err := write(w, `<p class="post-card-excerpt">`, esc(post.Excerpt), `</p>`); err != nil {
				return err
			}
		}
		if len(post.Tags) > 0 {
			var b strings.Builder
			for _, tag := range post.Tags {
				b.WriteString(`<span class="post-card-tag">#` + esc(tag) + `</span>`)
			}
			if err := write(w, `<div class="post-card-tags">`, b.String(), `</div>`); err != nil {
				return err
			}
		}
		return write(w, `</article>`)
	})
}

// PostList renders a card for every post, in order.
func PostList(l Labels, posts []postindex.Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range posts {
			if err := PostCard(l, p).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// TagButtons renders the "all" button followed by one button per tag. The
// button matching active carries the active class; an empty active marks
// the "all" button.
func TagButtons(l Labels, tags []string, active string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<button class="`, TagClass(active == ""), `" data-tag="">`, esc(l.AllTags), `</button>`); err != nil {
			return err
		}
		for _, tag := range tags {
			if err := write(w,
				`<button class="`, TagClass(active == tag), `" data-tag="`, esc(tag), `">#`, esc(tag), `</button>`,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// PostMeta renders the date and category items of a post page. The date is
// shown as written in the front matter.
func PostMeta(l Labels, date, category string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if date != "" {
			if err := write(w, `<span class="post-meta-item">`, l.DateIcon, ` `, esc(date), `</span>`); err != nil {
				return err
			}
		}
		if category != "" {
			return write(w, `<span class="post-meta-item">`, l.CategoryIcon, ` `, esc(category), `</span>`)
		}
		return nil
	})
}

// PostTags renders tag links back to the filtered listing.
func PostTags(tags []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, tag := range tags {
			if err := write(w, `<a href="`, esc(TagURL(tag)), `" class="post-tag">#`, esc(tag), `</a>`); err != nil {
				return err
			}
		}
		return nil
	})
}

// ErrorPanel replaces post content when loading fails.
func ErrorPanel(l Labels, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(w,
			`<div class="error-message"><p>`, l.ErrorIcon, ` `, esc(message), `</p>`,
			`<a href="`, IndexPage, `">`, esc(l.BackToList), `</a></div>`,
		)
	})
}

// Preformatted shows raw post text when no markdown renderer is available.
func Preformatted(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(w, `<pre>`, esc(content), `</pre>`)
	})
}

// Render renders cmp to a string for insertion with SetInnerHTML.
func Render(ctx context.Context, cmp templ.Component) (string, error) {
	var b strings.Builder
	if err := cmp.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
