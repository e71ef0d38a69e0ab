package ecdocs

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/edjchapman/ecdocs/theme"
	"github.com/edjchapman/ecdocs/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// pageData assembles the layout input for page. The page context carries the
// request route and the page's own front-matter, nothing else.
func (a *App) pageData(c echo.Context, page Page, prev, next *Page) views.PageData {
	return views.PageData{
		Theme: a.Theme,
		Context: theme.PageContext{
			Route:       page.Route,
			FrontMatter: page.FrontMatter,
		},
		Title:      page.Title,
		Body:       templ.Raw(page.HTML),
		File:       page.File,
		Prev:       navLink(prev),
		Next:       navLink(next),
		Year:       a.now().Year(),
		Appearance: Appearance(c),
		CSRFToken:  CsrfToken(c),
	}
}

func navLink(p *Page) *views.NavLink {
	if p == nil {
		return nil
	}
	return &views.NavLink{Route: p.Route, Title: p.Title}
}
