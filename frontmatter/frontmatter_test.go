package frontmatter

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseWithoutHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "# Title\n\nbody", "# Title\n\nbody"},
		{"empty", "", ""},
		{"bom stripped", "\ufeff# Title", "# Title"},
		{"unclosed header", "---\ntitle: x\nbody", "---\ntitle: x\nbody"},
		{"no newline after close", "---\ntitle: x\n---", "---\ntitle: x\n---"},
		{"indented opener", " ---\ntitle: x\n---\nbody", " ---\ntitle: x\n---\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.input)
			if len(doc.Metadata) != 0 {
				t.Errorf("Metadata = %v, want empty", doc.Metadata)
			}
			if doc.Metadata == nil {
				t.Error("Metadata should not be nil")
			}
			if doc.Content != tt.want {
				t.Errorf("Content = %q, want %q", doc.Content, tt.want)
			}
		})
	}
}

func TestParseHeader(t *testing.T) {
	input := "\ufeff---\r\n" +
		"title: \"Rust: the basics\"\r\n" +
		"date: 2024-01-15\r\n" +
		"category: 'systems'\r\n" +
		"no colon here\r\n" +
		": orphan value\r\n" +
		"  spaced key  :   spaced value  \r\n" +
		"---\r\n" +
		"# Heading\n\nBody text.\n"

	doc := Parse(input)

	want := map[string]string{
		"title":      "Rust: the basics",
		"date":       "2024-01-15",
		"category":   "systems",
		"spaced key": "spaced value",
	}
	if len(doc.Metadata) != len(want) {
		t.Fatalf("Metadata has %d keys, want %d: %v", len(doc.Metadata), len(want), doc.Metadata)
	}
	for k, v := range want {
		if got := doc.Metadata.String(k); got != v {
			t.Errorf("Metadata[%q] = %q, want %q", k, got, v)
		}
	}
	if doc.Content != "# Heading\n\nBody text.\n" {
		t.Errorf("Content = %q", doc.Content)
	}
}

func TestParseFirstClosingDelimiterWins(t *testing.T) {
	doc := Parse("---\ntitle: a\n---\nintro\n---\nmore\n")
	if doc.Metadata.String("title") != "a" {
		t.Fatalf("title = %q", doc.Metadata.String("title"))
	}
	if doc.Content != "intro\n---\nmore\n" {
		t.Fatalf("Content = %q", doc.Content)
	}
}

func TestParseQuotes(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{`"double"`, "double"},
		{`'single'`, "single"},
		{`"mismatched'`, `"mismatched'`},
		{`"`, ""},
		{`""`, ""},
		{`"a "quoted" word"`, `a "quoted" word`},
		{`plain`, "plain"},
	}
	for _, tt := range tests {
		doc := Parse("---\nk: " + tt.value + "\n---\n")
		if got := doc.Metadata.String("k"); got != tt.want {
			t.Errorf("value %s: got %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		want  []string
		isSet bool
	}{
		{"json array", `tags: ["rust", "systems"]`, []string{"rust", "systems"}, true},
		{"empty json array", `tags: []`, []string{}, true},
		{"json numbers", `tags: [1, 2.5]`, []string{"1", "2.5"}, true},
		{"unquoted fallback", `tags: [rust, systems]`, []string{"rust", "systems"}, true},
		{"single quoted fallback", `tags: ['rust', 'go']`, []string{"rust", "go"}, true},
		{"quoted whole array", `tags: "[rust, go]"`, []string{"rust", "go"}, true},
		{"trailing comma", `tags: [a, b,]`, []string{"a", "b", ""}, true},
		{"scalar", `tags: rust`, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse("---\n" + tt.line + "\n---\nbody")
			got, ok := doc.Metadata.Strings(TagsKey)
			if ok != tt.isSet {
				t.Fatalf("Strings ok = %v, want %v (meta %v)", ok, tt.isSet, doc.Metadata)
			}
			if tt.isSet && !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("tags = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseArrayOnlyForTagsKey(t *testing.T) {
	doc := Parse("---\nkeywords: [a, b]\n---\n")
	if doc.Metadata["keywords"].IsList() {
		t.Fatal("only the tags key should be parsed as a list")
	}
	if doc.Metadata.String("keywords") != "[a, b]" {
		t.Fatalf("keywords = %q", doc.Metadata.String("keywords"))
	}
}

func TestFormatRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		meta    Metadata
		content string
	}{
		{"empty", Metadata{}, "body only\n"},
		{"scalars", Metadata{
			"title":    String("Hello: World"),
			"date":     String("2024-01-15"),
			"quoted":   String(`"already quoted"`),
			"padded":   String("  padded  "),
			"empty":    String(""),
			"category": String("it's"),
		}, "# Hello\n"},
		{"tags", Metadata{
			"title": String("Tags"),
			"tags":  List("rust", "a, b", `say "hi"`),
		}, "text"},
		{"no tags", Metadata{"tags": List()}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Format(tt.meta, tt.content)
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			doc := Parse(raw)
			if doc.Content != tt.content {
				t.Errorf("Content = %q, want %q", doc.Content, tt.content)
			}
			if !reflect.DeepEqual(normalize(doc.Metadata), normalize(tt.meta)) {
				t.Errorf("Metadata = %v, want %v", doc.Metadata, tt.meta)
			}
		})
	}
}

func normalize(m Metadata) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v.IsList() {
			out[k] = append([]string{}, v.Items()...)
			continue
		}
		out[k] = v.Text()
	}
	return out
}

func TestFormatRejectsUnrepresentable(t *testing.T) {
	tests := []Metadata{
		{"a:b": String("x")},
		{" key": String("x")},
		{"k": String("line\nbreak")},
		{"keywords": List("a")},
		{"tags": String("[a]")},
	}
	for _, meta := range tests {
		if _, err := Format(meta, ""); !errors.Is(err, ErrUnrepresentable) {
			t.Errorf("Format(%v) err = %v, want ErrUnrepresentable", meta, err)
		}
	}
}
