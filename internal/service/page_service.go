package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/thescoop/internal/content"
)

var ErrPageNotFound = errors.New("page not found")

const defaultAboutTitle = "About Us"

// Page is a standalone Markdown page such as About.
type Page struct {
	Slug    string
	Title   string
	Summary string
	Content string
}

// PageService provides access to static pages stored as <slug>.md files.
type PageService struct {
	fsys fs.FS
}

// NewPageService returns a new PageService reading from dir.
func NewPageService(dir string) *PageService {
	return &PageService{fsys: os.DirFS(dir)}
}

// NewPageServiceFS reads pages from fsys.
func NewPageServiceFS(fsys fs.FS) *PageService {
	return &PageService{fsys: fsys}
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*Page, error) {
	slug = strings.TrimSpace(slug)
	name := slug + content.Extension
	if slug == "" || strings.Contains(slug, "/") || !fs.ValidPath(name) {
		return nil, ErrPageNotFound
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("read page %s: %w", slug, err)
	}

	doc, err := content.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", slug, err)
	}

	body := strings.TrimSpace(doc.Body)
	title, _ := doc.Meta["title"].(string)
	title = strings.TrimSpace(title)
	if title == "" && slug == "about" {
		title = defaultAboutTitle
	}

	return &Page{
		Slug:    slug,
		Title:   title,
		Summary: summarizeContent(body),
		Content: body,
	}, nil
}

// About returns the about page.
func (s *PageService) About() (*Page, error) {
	return s.GetBySlug("about")
}

// Summarize flattens Markdown into a single plain line of at most limit
// runes, for meta descriptions.
func Summarize(markdown string, limit int) string {
	replacer := strings.NewReplacer(
		"#", " ",
		"*", " ",
		"`", " ",
		"_", " ",
		">", " ",
		"[", " ",
		"]", " ",
		"(", " ",
		")", " ",
		"|", " ",
	)
	plain := strings.Join(strings.Fields(replacer.Replace(markdown)), " ")
	if plain == "" || limit <= 0 {
		return plain
	}

	if utf8.RuneCountInString(plain) <= limit {
		return plain
	}

	runes := []rune(plain)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

func summarizeContent(markdown string) string {
	return Summarize(markdown, 120)
}
