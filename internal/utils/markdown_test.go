package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	html := RenderMarkdown("**bold** and [a link](https://example.com)")
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("Expected bold markup, got %s", html)
	}
	if !strings.Contains(html, `href="https://example.com"`) {
		t.Errorf("Expected link, got %s", html)
	}
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	html := RenderMarkdown(`hello <script>alert("x")</script>`)
	if strings.Contains(html, "<script>") {
		t.Errorf("Script tag survived sanitization: %s", html)
	}
}
