package staticblog

import (
	"context"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/staticblog/dom"
	"github.com/eringen/staticblog/views"
)

// Render replaces the children of el with the output of cmp. A nil el is a
// no-op, matching a page script that finds no target element.
func Render(ctx context.Context, el *dom.Element, cmp templ.Component) error {
	if el == nil {
		return nil
	}
	markup, err := views.Render(ctx, cmp)
	if err != nil {
		return err
	}
	return el.SetInnerHTML(markup)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func (a *App) render(ctx context.Context, el *dom.Element, cmp templ.Component) {
	if err := Render(ctx, el, cmp); err != nil {
		a.Logger.Errorf("render #%s: %v", el.ID(), err)
	}
}
