package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBasicMarkdown(t *testing.T) {
	out := string(Render("# Heading\n\nSome *emphasis* and **strong** text.\n\n- one\n- two"))

	assert.Contains(t, out, "<h1>Heading</h1>")
	assert.Contains(t, out, "<em>emphasis</em>")
	assert.Contains(t, out, "<strong>strong</strong>")
	assert.Contains(t, out, "<li>one</li>")
}

func TestRenderStripsLinks(t *testing.T) {
	out := string(Render("[click me](https://example.com)"))

	assert.NotContains(t, out, "<a")
	assert.NotContains(t, out, "href")
	assert.Contains(t, out, "click me")
}

func TestRenderStripsRawHTML(t *testing.T) {
	out := string(Render(`<script>alert(1)</script> <img src=x onerror=alert(1)> hello`))

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "onerror")
	assert.Contains(t, out, "hello")
}

func TestRenderKeepsNoAttributes(t *testing.T) {
	out := string(Render(`text with <p style="color:red">styled html</p>`))

	assert.NotContains(t, out, "style=")
	assert.Contains(t, out, "styled html")
}
