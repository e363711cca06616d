package views

import (
	"context"
	"strings"
	"testing"

	"github.com/eringen/staticblog/postindex"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-01-15", "2024.01.15"},
		{"2024-01-05T10:00:00Z", "2024.01.05"},
		{"2024-01-05T10:00:00", "2024.01.05"},
		{"2024-12-31 23:59:59", "2024.12.31"},
		{"2024/03/09", "2024.03.09"},
		{"", ""},
		{"yesterday", "yesterday"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.input); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPostCardFull(t *testing.T) {
	post := postindex.Summary{
		File:     "my post&more.md",
		Title:    "Rust <Basics>",
		Date:     "2024-01-15",
		Category: "dev",
		Excerpt:  "Intro",
		Tags:     []string{"rust", "systems"},
	}
	got, err := Render(context.Background(), PostCard(DefaultLabels(), post))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		`<a href="post.html?p=my+post%26more.md">Rust &lt;Basics&gt;</a>`,
		`<span>📅 2024.01.15</span>`,
		`<span>📁 dev</span>`,
		`<p class="post-card-excerpt">Intro</p>`,
		`<span class="post-card-tag">#rust</span><span class="post-card-tag">#systems</span>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("card missing %q:\n%s", want, got)
		}
	}
}

func TestPostCardMinimal(t *testing.T) {
	got, err := Render(context.Background(), PostCard(DefaultLabels(), postindex.Summary{File: "a.md", Title: "A"}))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, absent := range []string{"post-card-excerpt", "post-card-tags", "<span>"} {
		if strings.Contains(got, absent) {
			t.Errorf("minimal card should not contain %q: %s", absent, got)
		}
	}
}

func TestPostList(t *testing.T) {
	posts := []postindex.Summary{{File: "a.md", Title: "A"}, {File: "b.md", Title: "B"}}
	got, err := Render(context.Background(), PostList(DefaultLabels(), posts))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Count(got, `<article class="post-card">`) != 2 {
		t.Fatalf("expected two cards: %s", got)
	}
	if strings.Index(got, ">A<") > strings.Index(got, ">B<") {
		t.Fatalf("cards out of order: %s", got)
	}
}

func TestTagButtons(t *testing.T) {
	got, err := Render(context.Background(), TagButtons(DefaultLabels(), []string{"food", "rust"}, "rust"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `<button class="tag-button" data-tag="">All</button>` +
		`<button class="tag-button" data-tag="food">#food</button>` +
		`<button class="tag-button active" data-tag="rust">#rust</button>`
	if got != want {
		t.Fatalf("TagButtons =\n%s\nwant\n%s", got, want)
	}

	got, err = Render(context.Background(), TagButtons(DefaultLabels(), nil, ""))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != `<button class="tag-button active" data-tag="">All</button>` {
		t.Fatalf("TagButtons with no active tag = %s", got)
	}
}

func TestPostMetaAndTags(t *testing.T) {
	got, err := Render(context.Background(), PostMeta(DefaultLabels(), "2024-01-15", ""))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != `<span class="post-meta-item">📅 2024-01-15</span>` {
		t.Fatalf("PostMeta = %s", got)
	}

	got, err = Render(context.Background(), PostTags([]string{"c++"}))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != `<a href="index.html?tag=c%2B%2B" class="post-tag">#c++</a>` {
		t.Fatalf("PostTags = %s", got)
	}
}

func TestErrorPanelAndPreformatted(t *testing.T) {
	got, err := Render(context.Background(), ErrorPanel(DefaultLabels(), "Could not load <post>"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "Could not load &lt;post&gt;") || !strings.Contains(got, `<a href="index.html">`) {
		t.Fatalf("ErrorPanel = %s", got)
	}

	got, err = Render(context.Background(), Preformatted("<b>raw</b>"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "<pre>&lt;b&gt;raw&lt;/b&gt;</pre>" {
		t.Fatalf("Preformatted = %s", got)
	}
}
