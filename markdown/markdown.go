// Package markdown turns documentation pages into sanitized HTML and exposes
// their front-matter to the theme.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var (
	renderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote, meta.Meta),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	sanitizer = bluemonday.UGCPolicy()
	stripper  = bluemonday.StrictPolicy()
)

// Document is a parsed page.
type Document struct {
	FrontMatter map[string]any
	Heading     string // text of the first level-1 heading, if any
	HTML        string // sanitized body markup
	Text        string // body with all markup removed, for search
}

// Parse splits src into front-matter and body and renders the body.
func Parse(src []byte) (Document, error) {
	ctx := parser.NewContext()
	doc := renderer.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))
	fm, err := meta.TryGet(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("markdown: front-matter: %w", err)
	}

	var buf bytes.Buffer
	if err := renderer.Renderer().Render(&buf, src, doc); err != nil {
		return Document{}, fmt.Errorf("markdown: render: %w", err)
	}
	body := sanitizer.SanitizeBytes(buf.Bytes())

	return Document{
		FrontMatter: normalize(fm),
		Heading:     firstHeading(doc, src),
		HTML:        string(body),
		Text:        strings.Join(strings.Fields(stripper.Sanitize(string(body))), " "),
	}, nil
}

func firstHeading(doc ast.Node, src []byte) string {
	var heading string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			heading = strings.TrimSpace(string(h.Text(src)))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return heading
}

// normalize rewrites the YAML decoder's map[interface{}]interface{} values
// into map[string]any so front-matter can be JSON encoded.
func normalize(m map[string]interface{}) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	case map[string]interface{}:
		return normalize(t)
	case []interface{}:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}
