// Package ecdocs serves the EC Docs documentation site built with Go, Echo,
// and templ. Pages are Markdown files with front-matter; the theme package
// supplies branding, navigation and per-page head metadata.
package ecdocs

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edjchapman/ecdocs/theme"
)

// App is the central ecdocs application. It wires together the page index,
// cache, handlers, middleware, and theme.
type App struct {
	Config SiteConfig
	Theme  theme.Settings
	Echo   *echo.Echo
	Store  *Store
	Cache  *PageCache

	searchLimiter *SearchLimiter
	customRoutes  []func(*App)
	staticDir     string
	content       fs.FS
	now           func() time.Time
}

// New creates a new App. Theme settings default to theme.Default().
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Theme:     theme.Default(),
		Echo:      echo.New(),
		staticDir: "public",
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}
	if a.content == nil {
		a.content = os.DirFS(cfg.ContentDir)
	}

	return a
}

// Setup opens the page index, loads the content tree, and registers
// middleware and routes. Start calls it; tests call it directly.
func (a *App) Setup() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("ecdocs: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("ecdocs: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPageCache(a.Store, a.Config.PageCacheTTL)

	if err := a.Reload(); err != nil {
		return err
	}

	a.searchLimiter = NewSearchLimiter(a.Config.SearchLimit, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Reload re-reads the content tree into the page index.
func (a *App) Reload() error {
	pages, err := LoadContent(a.content)
	if err != nil {
		return fmt.Errorf("ecdocs: load content: %w", err)
	}
	if err := a.Store.ReplacePages(pages); err != nil {
		return fmt.Errorf("ecdocs: index pages: %w", err)
	}
	a.Cache.Invalidate()
	a.Echo.Logger.Infof("indexed %d pages", len(pages))
	return nil
}

// Start sets up the app and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	return a.Serve()
}

// Serve listens on Config.Addr until the server is shut down. Setup must
// have returned first. A clean shutdown returns nil.
func (a *App) Serve() error {
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded theme stylesheet, then the user's static assets.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/theme.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)
	e.Static("/images", a.staticDir+"/images")
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	e.GET("/search", a.handleSearch)
	e.POST("/appearance", a.handleAppearance)

	e.GET("/", a.handlePage)
	e.GET("/*", a.handlePage)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.searchLimiter != nil {
		a.searchLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
