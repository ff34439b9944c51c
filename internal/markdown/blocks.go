package markdown

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// Backticks cannot appear in raw string literals.
var (
	fencePattern     = regexp.MustCompile("(?ms)^```([\\w+#.-]*)[ \\t]*\\n(.*?)^```[ \\t]*$")
	fenceToken       = regexp.MustCompile(fenceOpen + `([^` + fenceLang + `]*)` + fenceLang + `([A-Za-z0-9+/=]*)` + fenceClose)
	bodyToken        = regexp.MustCompile(bodyOpen + `([A-Za-z0-9+/=]*)` + bodyClose)
	separatorCell    = regexp.MustCompile(`^:?-+:?$`)
	dashItemPattern  = regexp.MustCompile(`^- (.*)$`)
	plusItemPattern  = regexp.MustCompile(`^\+ (.*)$`)
	numberedItemExpr = regexp.MustCompile(`^\d+\. (.*)$`)
)

// protectFences swaps every closed fence for a single-line token carrying
// the language tag and the base64 encoded body.
func protectFences(s string) string {
	return fencePattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := fencePattern.FindStringSubmatch(match)
		if len(groups) < 3 {
			return match
		}
		return fenceOpen + groups[1] + fenceLang + base64.StdEncoding.EncodeToString([]byte(groups[2])) + fenceClose
	})
}

func renderCodeBlocks(s string) string {
	return fenceToken.ReplaceAllStringFunc(s, func(match string) string {
		groups := fenceToken.FindStringSubmatch(match)
		if len(groups) < 3 {
			return match
		}

		lang := groups[1]
		label := lang
		codeOpen := "<code>"
		if lang == "" {
			label = "code"
		} else {
			codeOpen = fmt.Sprintf(`<code class="language-%s">`, lang)
		}

		var b strings.Builder
		b.WriteString(`<div class="my-6 rounded-lg overflow-hidden">`)
		b.WriteString(`<div class="bg-gray-800 text-gray-100 px-4 py-2 text-sm font-mono flex justify-between items-center">`)
		fmt.Fprintf(&b, `<span>%s</span>`, label)
		b.WriteString(`<button type="button" class="text-orange-300 hover:text-orange-100 text-xs" data-copy="code">Copy</button>`)
		b.WriteString(`</div>`)
		b.WriteString(`<pre class="bg-gray-900 text-gray-100 p-4 overflow-x-auto">`)
		b.WriteString(codeOpen)
		b.WriteString(bodyOpen + groups[2] + bodyClose)
		b.WriteString(`</code></pre></div>`)
		return b.String()
	})
}

// restoreCode decodes protected bodies back in place, verbatim apart from
// leading and trailing blank lines.
func restoreCode(s string) string {
	return bodyToken.ReplaceAllStringFunc(s, func(match string) string {
		groups := bodyToken.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		raw, err := base64.StdEncoding.DecodeString(groups[1])
		if err != nil {
			return ""
		}
		return trimBlankLines(string(raw))
	})
}

func trimBlankLines(code string) string {
	lines := strings.Split(code, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// renderTables turns a pipe row, a separator row and any following pipe rows
// into one table. A pipe row without a separator below it is left alone.
func renderTables(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		if i+1 >= len(lines) || !isPipeRow(lines[i]) || !isSeparatorRow(lines[i+1]) {
			out = append(out, lines[i])
			continue
		}

		header := splitCells(lines[i])
		var rows [][]string
		j := i + 2
		for ; j < len(lines) && isPipeRow(lines[j]); j++ {
			rows = append(rows, splitCells(lines[j]))
		}

		out = append(out, buildTable(header, rows))
		i = j - 1
	}
	return strings.Join(out, "\n")
}

func isPipeRow(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) >= 2 && strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|")
}

func isSeparatorRow(line string) bool {
	if !isPipeRow(line) {
		return false
	}
	for _, cell := range splitCells(line) {
		if !separatorCell.MatchString(cell) {
			return false
		}
	}
	return true
}

// splitCells drops the outer pipes and trims each cell. Empty cells between
// two pipes are kept so columns stay aligned.
func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	cells := strings.Split(line, "|")
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
	return cells
}

func buildTable(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(`<div class="overflow-x-auto my-8 rounded-lg shadow-sm border">`)
	b.WriteString(`<table class="min-w-full bg-white"><thead><tr>`)
	for _, cell := range header {
		fmt.Fprintf(&b, `<th class="px-4 py-3 bg-gray-100 text-left font-semibold text-gray-700 border-b">%s</th>`, cell)
	}
	b.WriteString(`</tr></thead><tbody>`)
	for _, row := range rows {
		b.WriteString(`<tr>`)
		for _, cell := range row {
			fmt.Fprintf(&b, `<td class="px-4 py-3 border-b">%s</td>`, cell)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table></div>`)
	return b.String()
}

const listItemOpen = `<li class="ml-6 mb-2">`

type listRule struct {
	item  *regexp.Regexp
	open  string
	close string
}

var (
	dashList     = listRule{item: dashItemPattern, open: `<ul class="list-disc my-6 pl-6">`, close: `</ul>`}
	plusList     = listRule{item: plusItemPattern, open: `<ul class="list-plus my-6 pl-6">`, close: `</ul>`}
	numberedList = listRule{item: numberedItemExpr, open: `<ol class="list-decimal my-6 pl-6">`, close: `</ol>`}
)

// render wraps each run of consecutive marker lines in one list container.
// Each marker style only groups its own lines.
func (r listRule) render(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		if !r.item.MatchString(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}

		var b strings.Builder
		b.WriteString(r.open)
		for ; i < len(lines) && r.item.MatchString(lines[i]); i++ {
			groups := r.item.FindStringSubmatch(lines[i])
			b.WriteString(listItemOpen)
			b.WriteString(groups[1])
			b.WriteString(`</li>`)
		}
		b.WriteString(r.close)
		out = append(out, b.String())
	}
	return strings.Join(out, "\n")
}

// renderParagraphs wraps plain text blocks. Blocks already starting with a
// tag, or holding list items, pass through untouched.
func renderParagraphs(s string) string {
	blocks := strings.Split(s, "\n\n")
	out := make([]string, 0, len(blocks))
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if strings.HasPrefix(block, "<") || strings.Contains(block, "<li") {
			out = append(out, block)
			continue
		}
		block = strings.ReplaceAll(block, "\n", "<br />")
		out = append(out, `<p class="mb-6 leading-8 text-gray-700">`+block+`</p>`)
	}
	return strings.Join(out, "\n")
}
