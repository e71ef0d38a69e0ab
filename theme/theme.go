// Package theme holds the EC Docs branding, navigation toggles and the
// per-page head metadata rules consumed by the ecdocs host.
//
// A Settings value is built once at startup and only read afterwards, so it
// is safe to share between request goroutines without locking.
package theme

import (
	"fmt"
	"strings"
)

const (
	logoIcon = `<svg width="24" height="24" viewBox="0 0 24 24"><path fill="currentColor" d="M14.683 14.828a4.055 4.055 0 0 1-1.272.858a4.002 4.002 0 0 1-4.875-1.45l-1.658 1.119a6.063 6.063 0 0 0 1.621 1.62a5.963 5.963 0 0 0 2.148.903a6.035 6.035 0 0 0 3.542-.35a6.048 6.048 0 0 0 1.907-1.284c.272-.271.52-.571.734-.889l-1.658-1.119a4.147 4.147 0 0 1-.489.592z M12 2C6.486 2 2 6.486 2 12s4.486 10 10 10s10-4.486 10-10S17.514 2 12 2zm0 2c2.953 0 5.531 1.613 6.918 4H5.082C6.469 5.613 9.047 4 12 4zm0 16c-4.411 0-8-3.589-8-8c0-.691.098-1.359.264-2H5v1a2 2 0 0 0 2 2h2a2 2 0 0 0 2-2h2a2 2 0 0 0 2 2h2a2 2 0 0 0 2-2v-1h.736c.166.641.264 1.309.264 2c0 4.411-3.589 8-8 8z"/></svg>`

	linkedInIcon = `<svg xmlns="http://www.w3.org/2000/svg" width="21" height="21" fill="currentColor" class="bi bi-linkedin" viewBox="0 0 16 16"><path d="M0 1.146C0 .513.526 0 1.175 0h13.65C15.474 0 16 .513 16 1.146v13.708c0 .633-.526 1.146-1.175 1.146H1.175C.526 16 0 15.487 0 14.854V1.146zm4.943 12.248V6.169H2.542v7.225h2.401zm-1.2-8.212c.837 0 1.358-.554 1.358-1.248-.015-.709-.52-1.248-1.342-1.248-.822 0-1.359.54-1.359 1.248 0 .694.521 1.248 1.327 1.248h.016zm4.908 8.212V9.359c0-.216.016-.432.08-.586.173-.431.568-.878 1.232-.878.869 0 1.216.662 1.216 1.634v3.865h2.401V9.25c0-2.22-1.184-3.252-2.764-3.252-1.274 0-1.845.7-2.165 1.193v.025h-.016a5.54 5.54 0 0 1 .016-.025V6.169h-2.4c.03.678 0 7.225 0 7.225h2.4z"/></svg>`
)

// Logo is the navbar brand: an inline SVG followed by a bold label.
type Logo struct {
	Icon string `yaml:"icon"` // raw SVG markup
	Text string `yaml:"text"`
}

// Link points at an external profile. Icon is raw SVG markup and may be empty.
type Link struct {
	Link string `yaml:"link"`
	Icon string `yaml:"icon"`
}

// EditLink controls the "edit this page" link. An empty Text hides it.
type EditLink struct {
	Text string `yaml:"text"`
}

// Feedback controls the "give feedback" link. An empty Content hides it.
type Feedback struct {
	Content string `yaml:"content"`
}

// Navigation toggles the previous/next page links under each article.
type Navigation struct {
	Prev bool `yaml:"prev"`
	Next bool `yaml:"next"`
}

// Favicon is emitted as a <link rel="icon"> on every page.
type Favicon struct {
	Href string `yaml:"href"`
	Type string `yaml:"type"`
}

// Footer describes the copyright line and the "built with" credit.
type Footer struct {
	Owner     string `yaml:"owner"`
	OwnerURL  string `yaml:"ownerURL"`
	Credit    string `yaml:"credit"`
	CreditURL string `yaml:"creditURL"`
}

// Settings is the complete theme configuration.
type Settings struct {
	SiteURL             string `yaml:"siteURL"` // og:url prefix
	DefaultTitle        string `yaml:"defaultTitle"`
	DefaultDescription  string `yaml:"defaultDescription"`
	Description         string `yaml:"description"` // <meta name="description">
	TitleTemplateFormat string `yaml:"titleTemplate"`

	Logo               Logo       `yaml:"logo"`
	Project            Link       `yaml:"project"`
	Chat               Link       `yaml:"chat"`
	DocsRepositoryBase string     `yaml:"docsRepositoryBase"`
	EditLink           EditLink   `yaml:"editLink"`
	Feedback           Feedback   `yaml:"feedback"`
	Navigation         Navigation `yaml:"navigation"`
	Favicon            Favicon    `yaml:"favicon"`
	Footer             Footer     `yaml:"footer"`
}

// Default returns the EC Docs settings.
func Default() Settings {
	return Settings{
		SiteURL:             "https://edchapman.co.uk",
		DefaultTitle:        "EC Docs",
		DefaultDescription:  "Ed Chapman Documentation",
		Description:         "Ed Chapman documentation and notes",
		TitleTemplateFormat: "EC Docs - %s",
		Logo: Logo{
			Icon: logoIcon,
			Text: "EC Docs",
		},
		Project: Link{
			Link: "https://github.com/edjchapman",
		},
		Chat: Link{
			Link: "https://www.linkedin.com/in/edjchapman/",
			Icon: linkedInIcon,
		},
		DocsRepositoryBase: "https://github.com/edjchapman/documentation/tree/main/pages",
		EditLink:           EditLink{Text: ""},
		Feedback:           Feedback{Content: ""},
		Navigation:         Navigation{Prev: true, Next: true},
		Favicon: Favicon{
			Href: "/images/favicon/favicon.ico",
			Type: "image/ico",
		},
		Footer: Footer{
			Owner:     "Ed Chapman",
			OwnerURL:  "https://edchapman.co.uk",
			Credit:    "Site built with Nextra",
			CreditURL: "https://nextra.site",
		},
	}
}

// EditURL returns the repository URL for a content file relative to the
// pages root, or "" when the edit link is disabled.
func (s Settings) EditURL(file string) string {
	if s.EditLink.Text == "" || s.DocsRepositoryBase == "" || file == "" {
		return ""
	}
	return strings.TrimRight(s.DocsRepositoryBase, "/") + "/" + strings.TrimLeft(file, "/")
}

// FooterHTML renders the footer markup for the given year. Owner and credit
// values are escaped.
func (s Settings) FooterHTML(year int) string {
	f := s.Footer
	var b strings.Builder
	b.WriteString("<span>")
	fmt.Fprintf(&b, "%d © ", year)
	b.WriteString(externalLink(f.OwnerURL, f.Owner))
	b.WriteString(".")
	if f.Credit != "" {
		b.WriteString("<br/><sub>")
		b.WriteString(externalLink(f.CreditURL, f.Credit))
		b.WriteString("</sub>")
	}
	b.WriteString("</span>")
	return b.String()
}

func externalLink(href, text string) string {
	if href == "" {
		return escape(text)
	}
	return `<a href="` + escape(href) + `" target="_blank" rel="noreferrer">` + escape(text) + `</a>`
}
