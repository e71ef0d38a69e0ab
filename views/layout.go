// Package views renders the EC Docs page chrome around article content.
package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/edjchapman/ecdocs/theme"
)

// htmlWriter remembers the first write error so components can write
// straight through and check once at the end.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// HeadTags renders the theme's head metadata for ctx.
func HeadTags(s theme.Settings, ctx theme.PageContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s.Head(ctx).HTML()+"\n")
		return err
	})
}

// Layout renders a full documentation page.
func Layout(p PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		s := p.Theme

		h.raw("<!DOCTYPE html>\n<html lang=\"en\"")
		h.attr("class", appearanceClass(p.Appearance))
		h.raw(">\n<head>\n<meta charset=\"utf-8\"/>\n")
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`, "\n")
		h.raw("<title>")
		h.text(s.DocumentTitle(p.Context.Route, p.Title))
		h.raw("</title>\n")
		if h.err != nil {
			return h.err
		}
		if err := HeadTags(s, p.Context).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`<link rel="stylesheet" href="/public/theme.css"/>`, "\n</head>\n<body>\n")

		navbar(h, s)

		h.raw("<main class=\"content\">\n<article>\n")
		if p.Body != nil && h.err == nil {
			if err := p.Body.Render(ctx, w); err != nil {
				return err
			}
		}
		h.raw("\n</article>\n")
		pageActions(h, s, p.File)
		pageNav(h, s, p.Prev, p.Next)
		h.raw("</main>\n")

		h.raw("<footer class=\"footer\">\n", s.FooterHTML(p.Year), "\n")
		appearanceForm(h, p.Appearance, p.CSRFToken)
		h.raw("</footer>\n</body>\n</html>\n")
		return h.err
	})
}

func navbar(h *htmlWriter, s theme.Settings) {
	h.raw("<header class=\"navbar\">\n<a class=\"logo\" href=\"/\">", s.Logo.Icon)
	h.raw(`<span style="margin-left: .4em; font-weight: 800">`)
	h.text(s.Logo.Text)
	h.raw("</span></a>\n<nav class=\"links\">")
	if s.Project.Link != "" {
		h.raw("<a")
		h.attr("href", s.Project.Link)
		h.raw(` target="_blank" rel="noreferrer" aria-label="Project">`)
		if s.Project.Icon != "" {
			h.raw(s.Project.Icon)
		} else {
			h.raw("GitHub")
		}
		h.raw("</a>")
	}
	if s.Chat.Link != "" {
		h.raw("<a")
		h.attr("href", s.Chat.Link)
		h.raw(` target="_blank" rel="noreferrer" aria-label="Chat">`, s.Chat.Icon, "</a>")
	}
	h.raw("</nav>\n</header>\n")
}

// pageActions writes the edit and feedback links. Empty labels suppress them.
func pageActions(h *htmlWriter, s theme.Settings, file string) {
	editURL := s.EditURL(file)
	if editURL == "" && s.Feedback.Content == "" {
		return
	}
	h.raw("<div class=\"page-actions\">")
	if editURL != "" {
		h.raw("<a class=\"edit-link\"")
		h.attr("href", editURL)
		h.raw(` target="_blank" rel="noreferrer">`)
		h.text(s.EditLink.Text)
		h.raw("</a>")
	}
	if s.Feedback.Content != "" && s.Project.Link != "" {
		h.raw("<a class=\"feedback-link\"")
		h.attr("href", s.Project.Link)
		h.raw(` target="_blank" rel="noreferrer">`)
		h.text(s.Feedback.Content)
		h.raw("</a>")
	}
	h.raw("</div>\n")
}

func pageNav(h *htmlWriter, s theme.Settings, prev, next *NavLink) {
	if !s.Navigation.Prev {
		prev = nil
	}
	if !s.Navigation.Next {
		next = nil
	}
	if prev == nil && next == nil {
		return
	}
	h.raw("<nav class=\"page-nav\">")
	if prev != nil {
		h.raw("<a class=\"prev\" rel=\"prev\"")
		h.attr("href", prev.Route)
		h.raw(">← ")
		h.text(prev.Title)
		h.raw("</a>")
	}
	if next != nil {
		h.raw("<a class=\"next\" rel=\"next\"")
		h.attr("href", next.Route)
		h.raw(">")
		h.text(next.Title)
		h.raw(" →</a>")
	}
	h.raw("</nav>\n")
}

func appearanceForm(h *htmlWriter, current, csrfToken string) {
	h.raw(`<form class="appearance" method="post" action="/appearance">`)
	h.raw(`<input type="hidden" name="_csrf"`)
	h.attr("value", csrfToken)
	h.raw(`/><select name="appearance" onchange="this.form.submit()">`)
	for _, a := range Appearances {
		h.raw("<option")
		h.attr("value", a)
		if a == current {
			h.raw(" selected")
		}
		h.raw(">")
		h.text(a)
		h.raw("</option>")
	}
	h.raw("</select><noscript><button type=\"submit\">Apply</button></noscript></form>\n")
}

func appearanceClass(a string) string {
	if !ValidAppearance(a) {
		a = "system"
	}
	return "appearance-" + a
}

// NotFound renders the themed 404 page. base supplies the request-scoped
// fields (theme, route, year, appearance, CSRF token); the rest is filled in.
func NotFound(base PageData) templ.Component {
	p := base
	p.Context.FrontMatter = map[string]any{"title": "Page not found"}
	p.Title = "404"
	p.Body = templ.Raw("<h1>404</h1>\n<p>This page could not be found.</p>")
	p.File, p.Prev, p.Next = "", nil, nil
	return Layout(p)
}

// ServerError renders the themed error page for code.
func ServerError(base PageData, code int) templ.Component {
	status := strconv.Itoa(code)
	p := base
	p.Context.FrontMatter = nil
	p.Title = status
	p.Body = templ.Raw("<h1>" + status + "</h1>\n<p>Something went wrong.</p>")
	p.File, p.Prev, p.Next = "", nil, nil
	return Layout(p)
}
