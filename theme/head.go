package theme

import (
	"html"
	"strings"
)

// PageContext is what the host knows about the page being rendered.
type PageContext struct {
	Route       string         // request path, e.g. "/guides/setup"
	FrontMatter map[string]any // may be nil
}

// StringField returns the front-matter value for key when it is a non-empty
// string. Any other value, including a missing key, reports false.
func (p PageContext) StringField(key string) (string, bool) {
	v, ok := p.FrontMatter[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Attr is a single attribute on a head tag.
type Attr struct {
	Key   string
	Value string
}

// Tag describes one element in the document head.
type Tag struct {
	Name  string // "meta" or "link"
	Attrs []Attr
}

// Get returns the value of the named attribute.
func (t Tag) Get(key string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// HTML renders the tag as a void element with escaped attribute values.
func (t Tag) HTML() string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(t.Name)
	for _, a := range t.Attrs {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(escape(a.Value))
		b.WriteString(`"`)
	}
	b.WriteString("/>")
	return b.String()
}

// TagSet is an ordered list of head tags.
type TagSet []Tag

// Property returns the content of the <meta property=...> tag, if any.
func (ts TagSet) Property(property string) (string, bool) {
	for _, t := range ts {
		if p, _ := t.Get("property"); t.Name == "meta" && p == property {
			return t.Get("content")
		}
	}
	return "", false
}

// HTML renders every tag, one per line.
func (ts TagSet) HTML() string {
	lines := make([]string, len(ts))
	for i, t := range ts {
		lines[i] = t.HTML()
	}
	return strings.Join(lines, "\n")
}

// Head builds the Open Graph and SEO tags for a page. It never fails: the
// title and description fall back to the site defaults when the page does not
// set them.
func (s Settings) Head(ctx PageContext) TagSet {
	title, ok := ctx.StringField("title")
	if !ok {
		title = s.DefaultTitle
	}
	description, ok := ctx.StringField("description")
	if !ok {
		description = s.DefaultDescription
	}
	return TagSet{
		meta("property", "og:url", s.PageURL(ctx.Route)),
		meta("property", "og:title", title),
		meta("property", "og:description", description),
		meta("name", "description", s.Description),
		{Name: "link", Attrs: []Attr{
			{Key: "rel", Value: "icon"},
			{Key: "href", Value: s.Favicon.Href},
			{Key: "type", Value: s.Favicon.Type},
		}},
	}
}

// PageURL joins SiteURL and route with exactly one slash between them.
func (s Settings) PageURL(route string) string {
	base := strings.TrimRight(s.SiteURL, "/")
	return base + "/" + strings.TrimLeft(route, "/")
}

func meta(kind, key, content string) Tag {
	return Tag{Name: "meta", Attrs: []Attr{
		{Key: kind, Value: key},
		{Key: "content", Value: content},
	}}
}

func escape(s string) string {
	return html.EscapeString(s)
}
