package markdown

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Stage is one named rewrite step. Apply must be pure.
type Stage struct {
	Name  string
	Apply func(string) string
}

// Pipeline runs its stages in order over the accumulated markup. Later
// stages see the output of earlier ones, so the order is part of the
// rendering rules.
type Pipeline struct {
	stages []Stage
}

// NewPipeline builds a pipeline from an explicit stage list.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: append([]Stage(nil), stages...)}
}

// Option customises the default pipeline.
type Option func(*options)

type options struct {
	policy *bluemonday.Policy
}

// WithSanitizer appends a final stage that filters the markup through policy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// Default returns the pipeline used for post bodies:
//
//	normalize, protect-code, headings, emphasis, inline-code, images, links,
//	blockquotes, horizontal-rules, tables, code-blocks, dash-lists,
//	plus-lists, numbered-lists, paragraphs, restore-code
//
// Images run before links because image syntax contains link syntax. Fenced
// code is swapped for an opaque token up front and only decoded after
// paragraphs, so no other stage ever sees a code body.
func Default(opts ...Option) *Pipeline {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	stages := []Stage{
		{Name: "normalize", Apply: normalizeInput},
		{Name: "protect-code", Apply: protectFences},
		{Name: "headings", Apply: renderHeadings},
		{Name: "emphasis", Apply: renderEmphasis},
		{Name: "inline-code", Apply: renderInlineCode},
		{Name: "images", Apply: renderImages},
		{Name: "links", Apply: renderLinks},
		{Name: "blockquotes", Apply: renderBlockquotes},
		{Name: "horizontal-rules", Apply: renderRules},
		{Name: "tables", Apply: renderTables},
		{Name: "code-blocks", Apply: renderCodeBlocks},
		{Name: "dash-lists", Apply: dashList.render},
		{Name: "plus-lists", Apply: plusList.render},
		{Name: "numbered-lists", Apply: numberedList.render},
		{Name: "paragraphs", Apply: renderParagraphs},
		{Name: "restore-code", Apply: restoreCode},
	}
	if o.policy != nil {
		policy := o.policy
		stages = append(stages, Stage{Name: "sanitize", Apply: policy.Sanitize})
	}
	return NewPipeline(stages...)
}

// Render runs every stage over content. It is total: any input, including
// the empty string, produces markup.
func (p *Pipeline) Render(content string) string {
	out := content
	for _, stage := range p.stages {
		out = stage.Apply(out)
	}
	return out
}

// Stages lists the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, stage := range p.stages {
		names[i] = stage.Name
	}
	return names
}

// Private-use runes delimit protected code. They are stripped from input so
// authored text can never forge a token.
const (
	fenceOpen  = "\uE000"
	fenceLang  = "\uE001"
	fenceClose = "\uE002"
	bodyOpen   = "\uE003"
	bodyClose  = "\uE004"
)

var inputCleaner = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	fenceOpen, "",
	fenceLang, "",
	fenceClose, "",
	bodyOpen, "",
	bodyClose, "",
)

func normalizeInput(s string) string {
	return inputCleaner.Replace(s)
}
