package ecdocs

// Page is a documentation page loaded from the content directory and stored
// in the page index.
type Page struct {
	Route       string         // "/", "/guides/setup"
	File        string         // path relative to the content root, e.g. "guides/setup.md"
	Title       string         // front-matter title, first heading, or derived from File
	Description string         // front-matter description, may be empty
	FrontMatter map[string]any // never nil
	HTML        string         // sanitized body
	Text        string         // plain body text for search
	Position    int            // sidebar order, 0-based
}

// SearchResult is a single hit returned by /search.
type SearchResult struct {
	Route   string `json:"route"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
