// Package theme keeps the light/dark preference of a page in sync with
// local storage, the operating system preference and the document.
package theme

import (
	"errors"

	"github.com/eringen/staticblog/dom"
	"github.com/eringen/staticblog/storage"
)

// Theme is a resolved colour scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

const (
	// StorageKey is the local storage key holding an explicit preference.
	StorageKey = "blog-theme"
	// DarkQuery is the media query reporting the OS preference.
	DarkQuery = "(prefers-color-scheme: dark)"

	attrName   = "data-theme"
	toggleID   = "theme-toggle"
	iconClass  = "theme-icon"
	iconToDark = "🌙"
	iconToLite = "☀️"
)

// Parse maps a stored string to a Theme.
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Controller owns the theme of one window.
type Controller struct {
	win   *dom.Window
	store storage.Storage
	media *dom.MediaQuery

	// OnError receives storage failures from the toggle button, which has
	// no caller to return them to. Nil drops them.
	OnError func(error)
}

// New returns a controller for win. Call Init to apply the initial theme
// and Bind to attach the toggle and OS listeners.
func New(win *dom.Window, store storage.Storage) *Controller {
	return &Controller{
		win:   win,
		store: store,
		media: win.MatchMedia(DarkQuery),
	}
}

// Init applies the stored preference, or the OS preference when nothing
// is stored. The OS-derived value is not persisted.
func (c *Controller) Init() Theme {
	t, ok := c.Saved()
	if !ok {
		t = c.System()
	}
	c.apply(t)
	return t
}

// Bind wires the toggle button and the OS preference listener.
func (c *Controller) Bind() {
	if btn := c.win.Document.GetElementByID(toggleID); btn != nil {
		btn.AddEventListener("click", func(dom.Event) {
			if _, err := c.Toggle(); err != nil && c.OnError != nil {
				c.OnError(err)
			}
		})
	}
	c.media.OnChange(func(matches bool) {
		if _, ok := c.Saved(); ok {
			return
		}
		if matches {
			c.apply(Dark)
		} else {
			c.apply(Light)
		}
	})
}

// Saved returns the explicitly persisted preference, if any.
func (c *Controller) Saved() (Theme, bool) {
	v, err := c.store.GetItem(StorageKey)
	if err != nil {
		return "", false
	}
	return Parse(v)
}

// System returns the OS preference.
func (c *Controller) System() Theme {
	if c.media.Matches() {
		return Dark
	}
	return Light
}

// Current returns the theme reflected on the document, defaulting to light.
func (c *Controller) Current() Theme {
	root := c.win.Document.DocumentElement()
	if root == nil {
		return Light
	}
	v, _ := root.Attribute(attrName)
	if t, ok := Parse(v); ok {
		return t
	}
	return Light
}

// Toggle flips the theme and pins it.
func (c *Controller) Toggle() (Theme, error) {
	t := c.Current().Opposite()
	return t, c.Set(t)
}

// Set applies t and pins it in storage.
func (c *Controller) Set(t Theme) error {
	if _, ok := Parse(string(t)); !ok {
		return errors.New("theme: unknown theme " + string(t))
	}
	c.apply(t)
	return c.store.SetItem(StorageKey, string(t))
}

// Reset forgets the pinned preference and follows the OS again.
func (c *Controller) Reset() (Theme, error) {
	if err := c.store.RemoveItem(StorageKey); err != nil {
		return c.Current(), err
	}
	t := c.System()
	c.apply(t)
	return t, nil
}

func (c *Controller) apply(t Theme) {
	if root := c.win.Document.DocumentElement(); root != nil {
		root.SetAttribute(attrName, string(t))
	}
	if icon := c.win.Document.QuerySelectorClass(iconClass); icon != nil {
		if t == Dark {
			icon.SetTextContent(iconToLite)
		} else {
			icon.SetTextContent(iconToDark)
		}
	}
}
