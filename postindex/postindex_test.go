package postindex

import (
	"context"
	"errors"
	"io/fs"
	"reflect"
	"sort"
	"testing"
	"testing/fstest"

	"github.com/eringen/staticblog/fetch"
)

func samplePosts() []Summary {
	return []Summary{
		{File: "rust.md", Title: "Rust Basics", Tags: []string{"rust", "systems"}},
		{File: "cooking.md", Title: "Cooking", Tags: []string{"food"}},
	}
}

func files(posts []Summary) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.File)
	}
	return out
}

func TestExampleFromIndex(t *testing.T) {
	f := NewFilter(samplePosts(), "")

	if got := files(f.FilterBySearch("rust")); !reflect.DeepEqual(got, []string{"rust.md"}) {
		t.Errorf("FilterBySearch(rust) = %v", got)
	}
	if got := files(f.FilterByTag("food")); !reflect.DeepEqual(got, []string{"cooking.md"}) {
		t.Errorf("FilterByTag(food) = %v", got)
	}
	if got := f.AllTags(); !reflect.DeepEqual(got, []string{"food", "rust", "systems"}) {
		t.Errorf("AllTags = %v", got)
	}
}

func TestFilterByTagEmptyIsIdentityAndClears(t *testing.T) {
	posts := samplePosts()
	f := NewFilter(posts, "food")

	got := f.FilterByTag("")
	if !reflect.DeepEqual(got, posts) {
		t.Fatalf("FilterByTag(\"\") = %v, want full set", got)
	}
	if f.ActiveTag() != "" {
		t.Fatalf("ActiveTag = %q, want cleared", f.ActiveTag())
	}
}

func TestResultsDoNotAliasFilter(t *testing.T) {
	f := NewFilter(samplePosts(), "")
	first := f.Posts()[0].File

	for _, got := range [][]Summary{f.Posts(), f.FilterByTag(""), f.FilterBySearch("")} {
		sort.Slice(got, func(i, j int) bool { return got[i].File > got[j].File })
		got[0] = Summary{File: "changed.md"}
	}

	if f.Posts()[0].File != first {
		t.Fatalf("filter state changed through a result: first = %q, want %q", f.Posts()[0].File, first)
	}
}

func TestFilterBySearchEmpty(t *testing.T) {
	posts := samplePosts()
	f := NewFilter(posts, "")

	for _, q := range []string{"", "   ", "\t\n"} {
		if got := f.FilterBySearch(q); !reflect.DeepEqual(got, posts) {
			t.Errorf("FilterBySearch(%q) = %v, want full set in order", q, got)
		}
	}

	f.FilterByTag("systems")
	if got := files(f.FilterBySearch(" ")); !reflect.DeepEqual(got, []string{"rust.md"}) {
		t.Errorf("empty search with active tag = %v", got)
	}
}

func TestFilterBySearchFields(t *testing.T) {
	posts := []Summary{
		{File: "a", Title: "Alpha"},
		{File: "b", Title: "b", Excerpt: "an EXCERPT hit"},
		{File: "c", Title: "c", Description: "described here"},
		{File: "d", Title: "d", Category: "Networking"},
		{File: "e", Title: "e", Tags: []string{"GoLang"}},
	}
	f := NewFilter(posts, "")
	tests := []struct {
		query string
		want  []string
	}{
		{"alpha", []string{"a"}},
		{"excerpt", []string{"b"}},
		{"DESCRIBED", []string{"c"}},
		{"network", []string{"d"}},
		{"golang", []string{"e"}},
		{"  golang  ", []string{"e"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		if got := files(f.FilterBySearch(tt.query)); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FilterBySearch(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestFilterBySearchAndsActiveTag(t *testing.T) {
	posts := []Summary{
		{File: "1", Title: "Go tips", Tags: []string{"go"}},
		{File: "2", Title: "Go history", Tags: []string{"history"}},
		{File: "3", Title: "Rust tips", Tags: []string{"go"}},
	}
	f := NewFilter(posts, "go")

	if got := files(f.FilterBySearch("tips")); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Fatalf("FilterBySearch(tips) = %v", got)
	}
	if got := files(f.FilterBySearch("history")); !reflect.DeepEqual(got, []string{}) {
		t.Fatalf("FilterBySearch(history) = %v, want none", got)
	}
}

func TestTagMatchingIsCaseSensitive(t *testing.T) {
	f := NewFilter([]Summary{{File: "x", Title: "x", Tags: []string{"Go"}}}, "")

	if got := f.FilterByTag("go"); len(got) != 0 {
		t.Fatalf("FilterByTag(go) = %v, want none", got)
	}
	if got := f.FilterByTag("Go"); len(got) != 1 {
		t.Fatalf("FilterByTag(Go) = %v, want one", got)
	}
	if got := f.FilterBySearch("go"); len(got) != 1 {
		t.Fatalf("search should be case-insensitive, got %v", got)
	}
}

func TestAllTagsCaseSensitiveSorted(t *testing.T) {
	f := NewFilter([]Summary{
		{Title: "1", Tags: []string{"b", "B", "a"}},
		{Title: "2", Tags: []string{"a", "c"}},
		{Title: "3"},
	}, "")
	if got := f.AllTags(); !reflect.DeepEqual(got, []string{"B", "a", "b", "c"}) {
		t.Fatalf("AllTags = %v", got)
	}
	if got := NewFilter(nil, "").AllTags(); len(got) != 0 {
		t.Fatalf("AllTags on empty = %v", got)
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"posts.json": {Data: []byte(`[
			{"file":"rust.md","title":"Rust Basics","date":"2024-01-15","tags":["rust","systems"]},
			{"file":"cooking.md","title":"Cooking","category":"life","excerpt":"Pasta"}
		]`)},
		"broken.json": {Data: []byte(`{"file":`)},
	}
	f := fetch.NewFS(fsys)

	posts, err := Load(context.Background(), f, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(posts) != 2 || posts[0].Date != "2024-01-15" || posts[1].Category != "life" {
		t.Fatalf("posts = %+v", posts)
	}

	if _, err := Load(context.Background(), f, "broken.json"); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := Load(context.Background(), f, "missing.json"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}
