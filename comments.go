package staticblog

import (
	"github.com/eringen/staticblog/dom"
	"github.com/eringen/staticblog/theme"
)

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// flagOn is flag for an optional switch that is on unless set false.
func flagOn(b *bool) string {
	return flag(b == nil || *b)
}

// attachComments appends the giscus loader script to the comments container
// with t as the widget theme. The theme is read once; later toggles do not
// reach the widget.
func (a *App) attachComments(doc *dom.Document, t theme.Theme) *dom.Element {
	cfg := a.Config.Comments
	container := doc.GetElementByID(idComments)
	if container == nil {
		return nil
	}
	if cfg.Repo == "" {
		a.Logger.Debug("comments: no repository configured")
		return nil
	}

	script := doc.CreateElement("script")
	for _, kv := range [][2]string{
		{"src", cfg.ScriptURL},
		{"data-repo", cfg.Repo},
		{"data-repo-id", cfg.RepoID},
		{"data-category", cfg.Category},
		{"data-category-id", cfg.CategoryID},
		{"data-mapping", cfg.Mapping},
		{"data-strict", flag(cfg.Strict)},
		{"data-reactions-enabled", flagOn(cfg.Reactions)},
		{"data-emit-metadata", flagOn(cfg.EmitMetadata)},
		{"data-input-position", cfg.InputPosition},
		{"data-theme", string(t)},
		{"data-lang", cfg.Lang},
		{"data-loading", cfg.Loading},
		{"crossorigin", "anonymous"},
		{"async", ""},
	} {
		script.SetAttribute(kv[0], kv[1])
	}
	container.AppendChild(script)
	return script
}
