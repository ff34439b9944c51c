package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

type headingRule struct {
	pattern *regexp.Regexp
	replace string
}

// Longest marker first so "##" never consumes part of "###".
var headingRules = []headingRule{
	{regexp.MustCompile(`(?m)^##### (.*)$`), `<h5 class="text-xl font-bold mt-8 mb-3 text-gray-800">$1</h5>`},
	{regexp.MustCompile(`(?m)^#### (.*)$`), `<h4 class="text-2xl font-bold mt-8 mb-4 text-gray-800">$1</h4>`},
	{regexp.MustCompile(`(?m)^### (.*)$`), `<h3 class="text-3xl font-bold mt-10 mb-4 text-gray-800">$1</h3>`},
	{regexp.MustCompile(`(?m)^## (.*)$`), `<h2 class="text-4xl font-bold mt-10 mb-5 text-gray-800">$1</h2>`},
	{regexp.MustCompile(`(?m)^# (.*)$`), `<h1 class="text-5xl font-bold mt-12 mb-6 text-gray-800">$1</h1>`},
}

var (
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern     = regexp.MustCompile(`\*([^*\n]+)\*`)
	inlineCodePattern = regexp.MustCompile("`([^`\n]+)`")
	imagePattern      = regexp.MustCompile(`!\[([^\]\n]*)\]\(([^)\n]+)\)`)
	linkPattern       = regexp.MustCompile(`\[([^\[\]\n]+)\]\(([^)\n]+)\)`)
	blockquotePattern = regexp.MustCompile(`(?m)^> (.*)$`)
	rulePattern       = regexp.MustCompile(`(?m)^-{3,}[ \t]*$`)
)

const defaultImageAlt = "Post image"

func renderHeadings(s string) string {
	for _, rule := range headingRules {
		s = rule.pattern.ReplaceAllString(s, rule.replace)
	}
	return s
}

func renderEmphasis(s string) string {
	s = boldPattern.ReplaceAllString(s, `<strong class="font-bold text-gray-800">$1</strong>`)
	return italicPattern.ReplaceAllString(s, `<em class="italic">$1</em>`)
}

func renderInlineCode(s string) string {
	return inlineCodePattern.ReplaceAllString(s, `<code class="bg-gray-100 px-2 py-1 rounded text-sm font-mono">$1</code>`)
}

// renderImages emits a figure-like container. The caption is omitted when
// the alt text is empty, and the output holds no bracket syntax for the link
// stage to pick up.
func renderImages(s string) string {
	return imagePattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := imagePattern.FindStringSubmatch(match)
		if len(groups) < 3 {
			return match
		}

		alt := strings.TrimSpace(groups[1])
		src := strings.TrimSpace(groups[2])

		label := alt
		if label == "" {
			label = defaultImageAlt
		}

		var b strings.Builder
		b.WriteString(`<div class="my-8">`)
		fmt.Fprintf(&b, `<img src="%s" alt="%s" class="w-full h-auto rounded-lg shadow-md" loading="lazy" />`, src, label)
		if alt != "" {
			fmt.Fprintf(&b, `<p class="text-center text-gray-500 text-sm mt-2">%s</p>`, alt)
		}
		b.WriteString(`</div>`)
		return b.String()
	})
}

func renderLinks(s string) string {
	return linkPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := linkPattern.FindStringSubmatch(match)
		if len(groups) < 3 {
			return match
		}
		return fmt.Sprintf(`<a href="%s" class="text-orange-500 hover:text-orange-600 underline font-medium" target="_blank" rel="noopener noreferrer">%s</a>`,
			strings.TrimSpace(groups[2]), groups[1])
	})
}

func renderBlockquotes(s string) string {
	return blockquotePattern.ReplaceAllString(s, `<blockquote class="border-l-4 border-orange-500 pl-6 italic text-gray-600 bg-orange-50 py-4 pr-4 my-6 rounded-r">$1</blockquote>`)
}

func renderRules(s string) string {
	return rulePattern.ReplaceAllString(s, `<hr class="my-8 border-gray-300" />`)
}
