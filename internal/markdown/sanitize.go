package markdown

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// SanitizePolicy is the UGC policy widened to keep the styling, link
// attributes and code copy buttons the pipeline emits. Inline handlers are
// still stripped; pages wire copy buttons through their data-copy attribute.
func SanitizePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^[\w\s:./#+-]+$`)).Globally()
	policy.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	policy.AllowAttrs("loading").Matching(regexp.MustCompile(`^(lazy|eager)$`)).OnElements("img")
	policy.AllowElements("button")
	policy.AllowAttrs("type").Matching(regexp.MustCompile(`^button$`)).OnElements("button")
	policy.AllowAttrs("data-copy").Matching(regexp.MustCompile(`^code$`)).OnElements("button")
	return policy
}
