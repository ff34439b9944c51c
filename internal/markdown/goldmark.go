package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Goldmark renders full CommonMark with GFM extensions. It is the
// alternative to the pipeline for content that needs nested structures.
type Goldmark struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewGoldmark builds the engine. Raw HTML passes through unless a policy
// is given.
func NewGoldmark(policy *bluemonday.Policy) *Goldmark {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
	return &Goldmark{md: md, policy: policy}
}

func (g *Goldmark) Render(content string) string {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(content), &buf); err != nil {
		return template.HTMLEscapeString(content)
	}
	if g.policy != nil {
		return g.policy.Sanitize(buf.String())
	}
	return buf.String()
}
