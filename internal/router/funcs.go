package router

import (
	"html/template"
	"strings"

	"github.com/thescoop/internal/content"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const displayDateLayout = "January 2, 2006"

// FuncMap returns the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatDate":    formatDate,
		"categoryLabel": categoryLabel,
		"join":          join,
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	}
}

// formatDate prints a front matter date for readers. Dates that cannot be
// parsed are shown as written.
func formatDate(raw string) string {
	t, ok := content.ParseDate(raw)
	if !ok {
		return raw
	}
	return t.Format(displayDateLayout)
}

func categoryLabel(category string) string {
	category = strings.TrimSpace(strings.ReplaceAll(category, "-", " "))
	if category == "" {
		return content.DefaultCategory
	}
	return cases.Title(language.English).String(category)
}

func join(items []string, sep string) string {
	return strings.Join(items, sep)
}
