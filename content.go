package ecdocs

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/edjchapman/ecdocs/markdown"
)

// LoadContent walks fsys for .md and .mdx pages and returns them in sidebar
// order. Files and directories starting with "_" or "." are skipped.
//
// Pages are ordered by an integer "order" front-matter key first; pages
// without one follow, by route.
func LoadContent(fsys fs.FS) ([]Page, error) {
	var pages []Page
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != "." && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isPageFile(name) {
			return nil
		}
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		doc, err := markdown.Parse(src)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		pages = append(pages, newPage(p, doc))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(pages, func(i, j int) bool {
		oi, iok := order(pages[i].FrontMatter)
		oj, jok := order(pages[j].FrontMatter)
		switch {
		case iok && jok && oi != oj:
			return oi < oj
		case iok != jok:
			return iok
		}
		return pages[i].Route < pages[j].Route
	})
	for i := range pages {
		pages[i].Position = i
	}
	return pages, nil
}

func newPage(file string, doc markdown.Document) Page {
	title, _ := doc.FrontMatter["title"].(string)
	if title == "" {
		title = doc.Heading
	}
	if title == "" {
		title = titleFromFile(file)
	}
	description, _ := doc.FrontMatter["description"].(string)
	return Page{
		Route:       RouteFor(file),
		File:        file,
		Title:       title,
		Description: description,
		FrontMatter: doc.FrontMatter,
		HTML:        doc.HTML,
		Text:        doc.Text,
	}
}

// RouteFor maps a content file to its URL path: "index.md" serves its
// directory, other files drop their extension.
func RouteFor(file string) string {
	p := strings.TrimSuffix(file, path.Ext(file))
	if path.Base(p) == "index" {
		p = path.Dir(p)
	}
	if p == "." {
		return "/"
	}
	return "/" + strings.Trim(p, "/")
}

// NormalizeRoute strips a trailing slash from every route except "/".
func NormalizeRoute(route string) string {
	if route == "" {
		return "/"
	}
	if len(route) > 1 {
		route = strings.TrimRight(route, "/")
		if route == "" {
			return "/"
		}
	}
	return route
}

func isPageFile(name string) bool {
	switch path.Ext(name) {
	case ".md", ".mdx":
		return true
	}
	return false
}

func titleFromFile(file string) string {
	route := RouteFor(file)
	if route == "/" {
		return "Introduction"
	}
	name := strings.NewReplacer("-", " ", "_", " ").Replace(path.Base(route))
	return cases.Title(language.English).String(name)
}

func order(fm map[string]any) (int, bool) {
	switch v := fm["order"].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
