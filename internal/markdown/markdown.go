// Package markdown renders trusted-subset markdown from post bodies into a
// restricted HTML tag allowlist for display.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// displayPolicy allows only structural and emphasis tags. No links, images,
// scripts, styles, or attributes of any kind survive.
var displayPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"strong", "b", "em", "i",
		"h1", "h2", "h3", "h4", "h5", "h6",
	)
	return p
}()

var renderer = goldmark.New()

// Render converts markdown to HTML and strips everything outside the
// allowlist. The result is safe to embed unescaped in a template.
func Render(source string) template.HTML {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(source), &buf); err != nil {
		// Conversion only fails on writer errors, which bytes.Buffer
		// never produces. Fall back to nothing rather than raw input.
		return ""
	}
	return template.HTML(displayPolicy.SanitizeBytes(buf.Bytes()))
}
