package markdown

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
)

const (
	EnginePipeline = "pipeline"
	EngineGoldmark = "goldmark"
)

var ErrUnknownEngine = errors.New("unknown markdown engine")

// Renderer turns a post body into an HTML fragment.
type Renderer interface {
	Render(content string) string
}

var defaultPipeline = Default()

// Render converts content with the default pipeline.
func Render(content string) string {
	return defaultPipeline.Render(content)
}

// RenderHTML renders content for direct embedding in a template. A nil
// renderer uses the default pipeline.
func RenderHTML(r Renderer, content string) template.HTML {
	if r == nil {
		r = defaultPipeline
	}
	return template.HTML(r.Render(content))
}

// NewRenderer picks an engine by name. Sanitize adds a bluemonday pass
// after rendering.
func NewRenderer(engine string, sanitize bool) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EnginePipeline:
		if sanitize {
			return Default(WithSanitizer(SanitizePolicy())), nil
		}
		return Default(), nil
	case EngineGoldmark:
		if sanitize {
			return NewGoldmark(SanitizePolicy()), nil
		}
		return NewGoldmark(nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}
