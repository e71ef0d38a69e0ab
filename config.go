package ecdocs

import (
	"io/fs"
	"time"

	"github.com/edjchapman/ecdocs/theme"
)

// SiteConfig holds all runtime configuration for an ecdocs server.
type SiteConfig struct {
	Addr         string // Listen address (default ":3000")
	ContentDir   string // Markdown pages root (default "pages")
	DatabasePath string // SQLite page index (default "data/pages.db")

	SessionSecret string // Required: signs the preferences cookie
	CookieSecure  bool   // Set true for HTTPS

	PageCacheTTL time.Duration // Page cache TTL (default 5min)
	SearchLimit  int           // Searches per IP per minute (default 30)
}

func (c *SiteConfig) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "pages"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/pages.db"
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = 5 * time.Minute
	}
	if c.SearchLimit == 0 {
		c.SearchLimit = 30
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes, before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets such as images and the
// favicon (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithTheme replaces the default theme settings.
func WithTheme(s theme.Settings) Option {
	return func(a *App) {
		a.Theme = s
	}
}

// WithClock overrides the time source used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithContentFS reads pages from fsys instead of SiteConfig.ContentDir.
func WithContentFS(fsys fs.FS) Option {
	return func(a *App) {
		a.content = fsys
	}
}
