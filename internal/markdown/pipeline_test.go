package markdown

import (
	"errors"
	"strings"
	"testing"
)

const paragraphOpen = `<p class="mb-6 leading-8 text-gray-700">`

func TestRenderPlainText(t *testing.T) {
	got := Render("hello world")
	want := paragraphOpen + "hello world</p>"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderEmptyInput(t *testing.T) {
	if got := Render(""); strings.TrimSpace(got) != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := Render("\n\n\n"); strings.Contains(got, "<p") {
		t.Fatalf("expected no paragraph for blank input, got %q", got)
	}
}

func TestRenderHeadingsLongestFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"### Title", `<h3 class="text-3xl font-bold mt-10 mb-4 text-gray-800">Title</h3>`},
		{"## Title", `<h2 class="text-4xl font-bold mt-10 mb-5 text-gray-800">Title</h2>`},
		{"# Title", `<h1 class="text-5xl font-bold mt-12 mb-6 text-gray-800">Title</h1>`},
		{"##### Title", `<h5 class="text-xl font-bold mt-8 mb-3 text-gray-800">Title</h5>`},
	}
	for _, tt := range tests {
		if got := Render(tt.input); got != tt.want {
			t.Fatalf("Render(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderImageIsNeverALink(t *testing.T) {
	got := Render("![alt](img.png)")
	if !strings.Contains(got, `<img src="img.png" alt="alt"`) {
		t.Fatalf("expected image element, got %q", got)
	}
	if !strings.Contains(got, `loading="lazy"`) {
		t.Fatalf("expected lazy loading, got %q", got)
	}
	if strings.Contains(got, "<a ") {
		t.Fatalf("image must not become a link, got %q", got)
	}
	if !strings.Contains(got, `<p class="text-center text-gray-500 text-sm mt-2">alt</p>`) {
		t.Fatalf("expected caption, got %q", got)
	}
}

func TestRenderImageWithoutAltHasNoCaption(t *testing.T) {
	got := Render("![](pic.jpg)")
	if strings.Contains(got, "text-center") {
		t.Fatalf("expected no caption, got %q", got)
	}
	if !strings.Contains(got, `alt="Post image"`) {
		t.Fatalf("expected fallback alt text, got %q", got)
	}
}

func TestRenderLinks(t *testing.T) {
	got := Render("read [the story](https://example.com/story) now")
	for _, want := range []string{`href="https://example.com/story"`, `target="_blank"`, `rel="noopener noreferrer"`, ">the story</a>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestRenderEmphasisBoldBeforeItalic(t *testing.T) {
	got := Render("**strong** and *soft*")
	if !strings.Contains(got, `<strong class="font-bold text-gray-800">strong</strong>`) {
		t.Fatalf("expected strong element, got %q", got)
	}
	if !strings.Contains(got, `<em class="italic">soft</em>`) {
		t.Fatalf("expected em element, got %q", got)
	}
	if strings.Count(got, "<em") != 1 {
		t.Fatalf("bold span must not be split into italics, got %q", got)
	}
}

func TestRenderInlineCode(t *testing.T) {
	got := Render("use `go test` here")
	if !strings.Contains(got, `<code class="bg-gray-100 px-2 py-1 rounded text-sm font-mono">go test</code>`) {
		t.Fatalf("expected inline code, got %q", got)
	}
}

func TestRenderUnclosedDelimitersStayLiteral(t *testing.T) {
	input := "**bold and `code and [link(url"
	got := Render(input)
	if got != paragraphOpen+input+"</p>" {
		t.Fatalf("expected literal text, got %q", got)
	}
}

func TestRenderBlockquoteAndRule(t *testing.T) {
	got := Render("> quoted\n\n---")
	if !strings.Contains(got, `rounded-r">quoted</blockquote>`) {
		t.Fatalf("expected blockquote, got %q", got)
	}
	if !strings.Contains(got, `<hr class="my-8 border-gray-300" />`) {
		t.Fatalf("expected horizontal rule, got %q", got)
	}
	if strings.Contains(got, "<p") {
		t.Fatalf("block elements must not be wrapped, got %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	got := Render("| Name | Role |\n|------|:----:|\n| Ada | Host |")
	if !strings.Contains(got, "<table") {
		t.Fatalf("expected table, got %q", got)
	}
	if n := strings.Count(got, "<th "); n != 2 {
		t.Fatalf("expected 2 header cells, got %d in %q", n, got)
	}
	if n := strings.Count(got, "<td "); n != 2 {
		t.Fatalf("expected 2 body cells, got %d in %q", n, got)
	}
	if n := strings.Count(got, "<tr>"); n != 2 {
		t.Fatalf("expected header row and one body row, got %d", n)
	}
	if strings.Contains(got, "<hr") {
		t.Fatalf("separator row must not become a rule, got %q", got)
	}
	if !strings.Contains(got, ">Ada</td>") {
		t.Fatalf("expected trimmed cell text, got %q", got)
	}
}

func TestRenderTableKeepsEmptyCells(t *testing.T) {
	got := Render("| a | | c |\n|---|---|---|\n| 1 | | 3 |")
	if strings.Count(got, "<th ") != 3 || strings.Count(got, "<td ") != 3 {
		t.Fatalf("expected three columns, got %q", got)
	}
}

func TestRenderPipeRowWithoutSeparator(t *testing.T) {
	got := Render("| a |\nplain")
	if strings.Contains(got, "<table") {
		t.Fatalf("expected no table, got %q", got)
	}
}

func TestRenderFencedCodeIsVerbatim(t *testing.T) {
	input := "```go\n\nfunc main() {\n\t# not a heading\n\t**x** - [a](b)\n\n}\n\n```"
	got := Render(input)

	if !strings.Contains(got, "<span>go</span>") {
		t.Fatalf("expected language label, got %q", got)
	}
	if !strings.Contains(got, `<button type="button" class="text-orange-300 hover:text-orange-100 text-xs" data-copy="code">Copy</button>`) {
		t.Fatalf("expected copy button, got %q", got)
	}
	want := "<code class=\"language-go\">func main() {\n\t# not a heading\n\t**x** - [a](b)\n\n}</code>"
	if !strings.Contains(got, want) {
		t.Fatalf("expected verbatim body %q in %q", want, got)
	}
	if strings.Contains(got, "<h1") || strings.Contains(got, "<strong") || strings.Contains(got, "<p class") {
		t.Fatalf("code body must not be processed, got %q", got)
	}
}

func TestRenderFenceWithoutLanguage(t *testing.T) {
	got := Render("```\nplain\n```")
	if !strings.Contains(got, "<span>code</span>") || !strings.Contains(got, "<code>plain</code>") {
		t.Fatalf("expected unlabelled code block, got %q", got)
	}
}

func TestRenderUnclosedFence(t *testing.T) {
	got := Render("```go\nx := 1")
	if strings.Contains(got, "<pre") {
		t.Fatalf("unclosed fence must stay literal, got %q", got)
	}
}

func TestRenderListStyles(t *testing.T) {
	got := Render("- a\n- b\n\n+ c\n\n1. d\n2. e")

	wants := []string{
		`<ul class="list-disc my-6 pl-6"><li class="ml-6 mb-2">a</li><li class="ml-6 mb-2">b</li></ul>`,
		`<ul class="list-plus my-6 pl-6"><li class="ml-6 mb-2">c</li></ul>`,
		`<ol class="list-decimal my-6 pl-6"><li class="ml-6 mb-2">d</li><li class="ml-6 mb-2">e</li></ol>`,
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, "<p class") {
		t.Fatalf("lists must not be wrapped in paragraphs, got %q", got)
	}
}

func TestRenderListAfterTextIsNotWrapped(t *testing.T) {
	got := Render("Shopping:\n- milk")
	if strings.Contains(got, "<p") {
		t.Fatalf("block containing list items must pass through, got %q", got)
	}
}

func TestRenderParagraphLineBreaks(t *testing.T) {
	got := Render("line one\nline two\n\nnext")
	want := paragraphOpen + "line one<br />line two</p>\n" + paragraphOpen + "next</p>"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderPassesRawHTMLThrough(t *testing.T) {
	if got := Render("<div>raw</div>"); got != "<div>raw</div>" {
		t.Fatalf("expected raw HTML to pass through, got %q", got)
	}
}

func TestRenderIgnoresForgedTokens(t *testing.T) {
	got := Render(bodyOpen + "aGk=" + bodyClose)
	if got != paragraphOpen+"aGk=</p>" {
		t.Fatalf("expected token runes to be stripped, got %q", got)
	}
}

func TestRenderNormalizesCarriageReturns(t *testing.T) {
	got := Render("a\r\n\r\nb")
	if strings.Count(got, "<p") != 2 {
		t.Fatalf("expected two paragraphs, got %q", got)
	}
}

func TestDefaultStageOrder(t *testing.T) {
	want := []string{
		"normalize", "protect-code", "headings", "emphasis", "inline-code",
		"images", "links", "blockquotes", "horizontal-rules", "tables",
		"code-blocks", "dash-lists", "plus-lists", "numbered-lists",
		"paragraphs", "restore-code",
	}
	got := Default().Stages()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected stage order: %v", got)
	}

	sanitized := Default(WithSanitizer(SanitizePolicy())).Stages()
	if sanitized[len(sanitized)-1] != "sanitize" {
		t.Fatalf("expected sanitize to run last, got %v", sanitized)
	}
}

func TestSanitizerStripsScripts(t *testing.T) {
	p := Default(WithSanitizer(SanitizePolicy()))
	got := p.Render("hello <script>alert(1)</script>")
	if strings.Contains(got, "<script") {
		t.Fatalf("expected script to be removed, got %q", got)
	}
	if !strings.Contains(got, `class="mb-6 leading-8 text-gray-700"`) {
		t.Fatalf("expected pipeline classes to survive, got %q", got)
	}
}

func TestSanitizerKeepsCodeCopyButton(t *testing.T) {
	p := Default(WithSanitizer(SanitizePolicy()))
	got := p.Render("```c++\nint main() { return 0; }\n```\n\n<button onclick=\"steal()\">x</button>")

	if !strings.Contains(got, `data-copy="code">Copy</button>`) {
		t.Fatalf("expected copy button to survive sanitizing, got %q", got)
	}
	if strings.Contains(got, "onclick") {
		t.Fatalf("expected inline handlers to be removed, got %q", got)
	}
	if !strings.Contains(got, `<code class="language-c++">`) {
		t.Fatalf("expected language class to survive, got %q", got)
	}
	if !strings.Contains(got, "int main() { return 0; }") {
		t.Fatalf("expected code body to survive, got %q", got)
	}
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer("", false)
	if err != nil {
		t.Fatalf("expected default engine: %v", err)
	}
	if _, ok := r.(*Pipeline); !ok {
		t.Fatalf("expected *Pipeline, got %T", r)
	}

	r, err = NewRenderer("Goldmark", true)
	if err != nil {
		t.Fatalf("expected goldmark engine: %v", err)
	}
	if _, ok := r.(*Goldmark); !ok {
		t.Fatalf("expected *Goldmark, got %T", r)
	}

	if _, err := NewRenderer("textile", false); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("expected ErrUnknownEngine, got %v", err)
	}
}

func TestGoldmarkRender(t *testing.T) {
	got := NewGoldmark(nil).Render("# Hi\n\nsee https://example.com")
	if !strings.Contains(got, `<h1 id="hi">Hi</h1>`) {
		t.Fatalf("expected heading with id, got %q", got)
	}
	if !strings.Contains(got, `<a href="https://example.com">`) {
		t.Fatalf("expected autolinked URL, got %q", got)
	}
}

func TestRenderHTML(t *testing.T) {
	got := RenderHTML(nil, "hi")
	if string(got) != paragraphOpen+"hi</p>" {
		t.Fatalf("unexpected html: %q", got)
	}
}
