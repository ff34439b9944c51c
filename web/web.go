// Package web holds the embedded HTML templates.
package web

import "embed"

//go:embed template/*.html
var Templates embed.FS

// TemplatePattern matches every page and partial in Templates.
const TemplatePattern = "template/*.html"
