package staticblog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/eringen/staticblog/dom"
)

// EmbeddedAssets contains the default page shells: index.html and
// post.html, carrying every element id the pages write to.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// LoadShell parses the page shell name from dir, falling back to the
// embedded default when dir has none.
func LoadShell(dir, name string) (*dom.Document, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("staticblog: read shell %s: %w", name, err)
		}
		data, err = fs.ReadFile(EmbeddedAssets, "embedded/"+name)
		if err != nil {
			return nil, fmt.Errorf("staticblog: no shell %s: %w", name, err)
		}
	}
	doc, err := dom.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("staticblog: parse shell %s: %w", name, err)
	}
	return doc, nil
}
