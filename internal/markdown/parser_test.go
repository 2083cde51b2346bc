package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-delivery/pkg/interfaces"
)

func TestGoldmarkParserRendersGFM(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := parser.Parse([]byte("# Title\n\n~~gone~~ and https://example.com"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `<h1 id="title">Title</h1>`) {
		t.Fatalf("expected heading with id, got %s", html)
	}
	if !strings.Contains(html, "<del>gone</del>") {
		t.Fatalf("expected strikethrough, got %s", html)
	}
	if !strings.Contains(html, `<a href="https://example.com">`) {
		t.Fatalf("expected linkified url, got %s", html)
	}
}

func TestGoldmarkParserOmitsRawHTMLByDefault(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := parser.Parse([]byte("<script>alert(1)</script>\n\ntext"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("expected raw html to be omitted, got %s", out)
	}
}

func TestGoldmarkParserSanitizesRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{Sanitize: true})

	out, err := parser.Parse([]byte("<p onclick=\"x()\">hi</p>\n\n<script>alert(1)</script>"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "onclick") || strings.Contains(html, "<script>") {
		t.Fatalf("expected sanitized output, got %s", html)
	}
	if !strings.Contains(html, "hi") {
		t.Fatalf("expected text to survive, got %s", html)
	}
}

func TestCollectExtensionsIgnoresUnknownAndDuplicates(t *testing.T) {
	got := collectExtensions([]string{"GFM", "gfm", "emoji", " footnote "})
	if len(got) != 2 {
		t.Fatalf("expected 2 extenders, got %d", len(got))
	}
}

func TestParseFrontMatter(t *testing.T) {
	source := []byte("---\ntitle: Hello\nslug: hello\ncategory: engineering\ntags: [go, cloud]\nstaff_pick: true\nseries: intro\n---\nBody text\n")

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter returned error: %v", err)
	}
	if meta.Title != "Hello" || meta.Category != "engineering" || !meta.StaffPick {
		t.Fatalf("unexpected front matter %+v", meta)
	}
	if len(meta.Tags) != 2 || meta.Tags[1] != "cloud" {
		t.Fatalf("unexpected tags %v", meta.Tags)
	}
	if meta.Custom["series"] != "intro" {
		t.Fatalf("expected custom keys to be kept, got %v", meta.Custom)
	}
	if strings.TrimSpace(string(body)) != "Body text" {
		t.Fatalf("unexpected body %q", body)
	}
}
