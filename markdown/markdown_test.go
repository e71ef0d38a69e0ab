package markdown

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFrontMatter(t *testing.T) {
	src := "---\ntitle: Setup\ndescription: Getting started\norder: 2\n---\n# Setup guide\n\nInstall it.\n"
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := map[string]any{"title": "Setup", "description": "Getting started", "order": 2}
	if diff := cmp.Diff(want, doc.FrontMatter); diff != "" {
		t.Errorf("FrontMatter mismatch (-want +got):\n%s", diff)
	}
	if doc.Heading != "Setup guide" {
		t.Errorf("Heading = %q, want %q", doc.Heading, "Setup guide")
	}
	if strings.Contains(doc.HTML, "title: Setup") {
		t.Errorf("front-matter leaked into HTML: %q", doc.HTML)
	}
}

func TestParseWithoutFrontMatter(t *testing.T) {
	doc, err := Parse([]byte("Just text.\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.FrontMatter) != 0 {
		t.Errorf("FrontMatter = %v, want empty", doc.FrontMatter)
	}
	if doc.Heading != "" {
		t.Errorf("Heading = %q, want empty", doc.Heading)
	}
	if !strings.Contains(doc.HTML, "<p>Just text.</p>") {
		t.Errorf("HTML = %q", doc.HTML)
	}
}

func TestParseNestedFrontMatterIsJSONEncodable(t *testing.T) {
	src := "---\ntitle: Nested\nseo:\n  keywords: [go, docs]\n---\nBody\n"
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := json.Marshal(doc.FrontMatter); err != nil {
		t.Fatalf("json.Marshal(FrontMatter) failed: %v", err)
	}
}

func TestParseSanitizes(t *testing.T) {
	doc, err := Parse([]byte("Hello <script>alert(1)</script> world\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if strings.Contains(doc.HTML, "<script>") {
		t.Errorf("HTML not sanitized: %q", doc.HTML)
	}
}

func TestParseText(t *testing.T) {
	doc, err := Parse([]byte("# Title\n\nSome **bold**\ntext.\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Text != "Title Some bold text." {
		t.Errorf("Text = %q", doc.Text)
	}
}

func TestParseGFMTable(t *testing.T) {
	doc, err := Parse([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !strings.Contains(doc.HTML, "<table>") {
		t.Errorf("expected table in %q", doc.HTML)
	}
}
