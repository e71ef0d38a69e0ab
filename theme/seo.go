package theme

import "strings"

// titlePlaceholder is replaced by the page title in a title template.
const titlePlaceholder = "%s"

// SEOProps overrides how the document <title> is built.
type SEOProps struct {
	TitleTemplate string
}

// Apply substitutes title into the template.
func (p SEOProps) Apply(title string) string {
	return strings.Replace(p.TitleTemplate, titlePlaceholder, title, 1)
}

// TitleTemplate reports the title template for route. The home page keeps its
// own title, so "/" returns false; every other route gets the site template.
func (s Settings) TitleTemplate(route string) (SEOProps, bool) {
	if route == "/" {
		return SEOProps{}, false
	}
	return SEOProps{TitleTemplate: s.TitleTemplateFormat}, true
}

// DocumentTitle is the final <title> text for a page titled title.
func (s Settings) DocumentTitle(route, title string) string {
	if props, ok := s.TitleTemplate(route); ok {
		return props.Apply(title)
	}
	return title
}
