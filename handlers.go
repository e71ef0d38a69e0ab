package ecdocs

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/edjchapman/ecdocs/theme"
	"github.com/edjchapman/ecdocs/views"
)

const (
	defaultSearchResults = 10
	maxSearchResults     = 50
)

func (a *App) handlePage(c echo.Context) error {
	route := NormalizeRoute(c.Request().URL.Path)
	page, err := a.Cache.GetPage(route)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	prev, next, err := a.Cache.Neighbours(route)
	if err != nil {
		return err
	}
	return Render(c, views.Layout(a.pageData(c, page, prev, next)))
}

func (a *App) handleSearch(c echo.Context) error {
	if !a.searchLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many searches, try again shortly")
	}
	limit := defaultSearchResults
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(n, maxSearchResults)
	}
	results, err := a.Store.Search(c.QueryParam("q"), limit)
	if err != nil {
		return err
	}
	if results == nil {
		results = []SearchResult{}
	}
	return c.JSON(http.StatusOK, results)
}

func (a *App) handleAppearance(c echo.Context) error {
	value := c.FormValue("appearance")
	if !views.ValidAppearance(value) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown appearance")
	}
	if err := setAppearance(c, value); err != nil {
		return err
	}
	back := c.Request().Referer()
	if back == "" {
		back = "/"
	}
	return c.Redirect(http.StatusSeeOther, back)
}

func (a *App) handleSitemap(c echo.Context) error {
	pages, err := a.Cache.ListPages()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, pages)
}

func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.staticDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	body := "User-agent: *\nAllow: /\nSitemap: " + a.Theme.PageURL("/sitemap.xml") + "\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	base := views.PageData{
		Theme:      a.Theme,
		Context:    theme.PageContext{Route: c.Request().URL.Path},
		Year:       a.now().Year(),
		Appearance: Appearance(c),
		CSRFToken:  CsrfToken(c),
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(base))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(base, code))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
