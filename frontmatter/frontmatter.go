// Package frontmatter splits a markdown document into its "---" delimited
// metadata header and the body.
//
// The header is a flat list of "key: value" lines, not YAML. Values lose one
// pair of surrounding quotes, and the tags key accepts an array literal.
// Malformed input never fails: a document without a valid header is all
// body, and an unparsable tags array falls back to comma splitting.
package frontmatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// TagsKey is the one key whose value may be a list.
const TagsKey = "tags"

const bom = "\ufeff"

var (
	reDocument = regexp.MustCompile(`^---\r?\n([\s\S]*?)\r?\n---\r?\n([\s\S]*)$`)
	reLine     = regexp.MustCompile(`\r?\n`)
)

// Value is a metadata value: a string, or for the tags key possibly a list.
type Value struct {
	text   string
	items  []string
	isList bool
}

// String returns a scalar Value.
func String(s string) Value {
	return Value{text: s}
}

// List returns a list Value.
func List(items ...string) Value {
	return Value{items: append([]string{}, items...), isList: true}
}

// IsList reports whether v holds a list.
func (v Value) IsList() bool { return v.isList }

// Text returns the scalar value, or "" for a list.
func (v Value) Text() string { return v.text }

// Items returns a copy of the list, or nil for a scalar.
func (v Value) Items() []string {
	if !v.isList {
		return nil
	}
	return append([]string{}, v.items...)
}

// Metadata maps header keys to values.
type Metadata map[string]Value

// String returns the scalar value of key, or "" when absent or a list.
func (m Metadata) String(key string) string {
	return m[key].Text()
}

// Strings returns the list value of key. The second result is false when the
// key is absent or holds a scalar.
func (m Metadata) Strings(key string) ([]string, bool) {
	v, ok := m[key]
	if !ok || !v.isList {
		return nil, false
	}
	return v.Items(), true
}

// Document is the result of Parse.
type Document struct {
	Metadata Metadata
	Content  string
}

// Parse splits raw into metadata and content. Metadata is never nil.
func Parse(raw string) Document {
	raw = strings.TrimPrefix(raw, bom)

	m := reDocument.FindStringSubmatch(raw)
	if m == nil {
		return Document{Metadata: Metadata{}, Content: raw}
	}

	meta := Metadata{}
	for _, line := range reLine.Split(m[1], -1) {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := unquote(strings.TrimSpace(line[idx+1:]))

		if key == TagsKey && strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
			meta[key] = List(parseArray(value)...)
			continue
		}
		meta[key] = String(value)
	}
	return Document{Metadata: meta, Content: m[2]}
}

// unquote strips one pair of matching surrounding quotes.
func unquote(v string) string {
	for _, q := range []string{`"`, `'`} {
		if strings.HasPrefix(v, q) && strings.HasSuffix(v, q) {
			if len(v) < 2 {
				return ""
			}
			return v[1 : len(v)-1]
		}
	}
	return v
}

func parseArray(v string) []string {
	var decoded []any
	if err := json.Unmarshal([]byte(v), &decoded); err == nil {
		out := make([]string, 0, len(decoded))
		for _, item := range decoded {
			switch x := item.(type) {
			case string:
				out = append(out, x)
			case nil:
				out = append(out, "null")
			default:
				out = append(out, fmt.Sprint(x))
			}
		}
		return out
	}

	inner := v[1 : len(v)-1]
	parts := strings.Split(inner, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(p, `"`) || strings.HasPrefix(p, `'`) {
			p = p[1:]
		}
		if strings.HasSuffix(p, `"`) || strings.HasSuffix(p, `'`) {
			p = p[:len(p)-1]
		}
		parts[i] = p
	}
	return parts
}

// ErrUnrepresentable is returned by Format for metadata Parse could not
// read back.
var ErrUnrepresentable = errors.New("frontmatter: value cannot be represented")

// Format serialises meta and content into a document Parse reads back to
// the same metadata and content. Keys are written in sorted order, scalars
// double-quoted and lists as JSON arrays.
func Format(meta Metadata, content string) (string, error) {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("---\n")
	if len(keys) == 0 {
		b.WriteString("\n")
	}
	for _, k := range keys {
		if k == "" || k != strings.TrimSpace(k) || strings.ContainsAny(k, ":\r\n") {
			return "", fmt.Errorf("%w: key %q", ErrUnrepresentable, k)
		}
		v := meta[k]
		var line string
		switch {
		case v.isList:
			if k != TagsKey {
				return "", fmt.Errorf("%w: list under %q", ErrUnrepresentable, k)
			}
			items := v.items
			if items == nil {
				items = []string{}
			}
			enc, err := json.Marshal(items)
			if err != nil {
				return "", err
			}
			line = string(enc)
		default:
			if strings.ContainsAny(v.text, "\r\n") {
				return "", fmt.Errorf("%w: multi-line value under %q", ErrUnrepresentable, k)
			}
			if k == TagsKey && strings.HasPrefix(v.text, "[") && strings.HasSuffix(v.text, "]") {
				return "", fmt.Errorf("%w: bracketed scalar under %q", ErrUnrepresentable, k)
			}
			line = `"` + v.text + `"`
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("---\n")
	b.WriteString(content)
	return b.String(), nil
}
