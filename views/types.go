package views

import (
	"github.com/a-h/templ"

	"github.com/edjchapman/ecdocs/theme"
)

// NavLink is a previous/next page reference under the article.
type NavLink struct {
	Route string
	Title string
}

// PageData is everything the layout needs to render one documentation page.
type PageData struct {
	Theme      theme.Settings
	Context    theme.PageContext
	Title      string          // page title before any title template is applied
	Body       templ.Component // article content, rendered inside <article>
	File       string          // content file relative to the pages root, for the edit link
	Prev       *NavLink
	Next       *NavLink
	Year       int
	Appearance string // "light", "dark" or "system"
	CSRFToken  string
}

// Appearances lists the accepted appearance values in display order.
var Appearances = []string{"system", "light", "dark"}

// ValidAppearance reports whether v is one of Appearances.
func ValidAppearance(v string) bool {
	for _, a := range Appearances {
		if a == v {
			return true
		}
	}
	return false
}
