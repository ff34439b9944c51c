package service

import (
	"cmp"
	"context"
	"fmt"
	"html/template"
	"slices"
	"strings"

	"github.com/thescoop/internal/content"
	"github.com/thescoop/internal/markdown"
)

var ErrPostNotFound = content.ErrPostNotFound

// PostService answers read queries over the current post collection.
type PostService struct {
	source   content.Source
	renderer markdown.Renderer
}

// PostFilter describes filters for listing posts. Empty fields match
// everything.
type PostFilter struct {
	Category     string
	Tag          string
	Search       string
	FeaturedOnly bool
	Page         int
	PerPage      int
}

// PostListResult aggregates one page of posts and the paging counters.
type PostListResult struct {
	Posts      []content.Post
	Total      int
	TotalPages int
	Page       int
	PerPage    int
}

// TermCount is a category or tag with the number of posts using it.
type TermCount struct {
	Name  string
	Count int
}

// NewPostService returns a new PostService. A nil renderer uses the default
// markdown pipeline.
func NewPostService(source content.Source, renderer markdown.Renderer) *PostService {
	if renderer == nil {
		renderer = markdown.Default()
	}
	return &PostService{source: source, renderer: renderer}
}

func (s *PostService) load(ctx context.Context) ([]content.Post, error) {
	posts, err := s.source.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	return posts, nil
}

// Filter returns every post matching filter, newest first, ignoring the
// paging fields.
func (s *PostService) Filter(ctx context.Context, filter PostFilter) ([]content.Post, error) {
	posts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(filter.Category)
	tag := strings.TrimSpace(filter.Tag)
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	matched := make([]content.Post, 0, len(posts))
	for _, post := range posts {
		fm := post.Frontmatter
		if category != "" && !strings.EqualFold(fm.Category, category) {
			continue
		}
		if tag != "" && !post.HasTag(tag) {
			continue
		}
		if filter.FeaturedOnly && !fm.Featured {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(fm.Title), search) &&
			!strings.Contains(strings.ToLower(fm.Description), search) {
			continue
		}
		matched = append(matched, post)
	}
	return matched, nil
}

// List returns one page of matching posts.
func (s *PostService) List(ctx context.Context, filter PostFilter) (*PostListResult, error) {
	result := &PostListResult{Page: filter.Page, PerPage: filter.PerPage}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.PerPage <= 0 {
		result.PerPage = 10
	}

	matched, err := s.Filter(ctx, filter)
	if err != nil {
		return nil, err
	}

	result.Total = len(matched)
	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = (result.Total + result.PerPage - 1) / result.PerPage
	}

	start := min((result.Page-1)*result.PerPage, result.Total)
	end := min(start+result.PerPage, result.Total)
	result.Posts = matched[start:end]
	return result, nil
}

// Get fetches a post by slug.
func (s *PostService) Get(ctx context.Context, slug string) (*content.Post, error) {
	posts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	post, ok := content.Find(posts, strings.TrimSpace(slug))
	if !ok {
		return nil, ErrPostNotFound
	}
	return &post, nil
}

// Featured returns up to limit featured posts. A non-positive limit returns
// all of them.
func (s *PostService) Featured(ctx context.Context, limit int) ([]content.Post, error) {
	posts, err := s.Filter(ctx, PostFilter{FeaturedOnly: true})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// Render converts the post body to HTML for embedding in a page.
func (s *PostService) Render(post content.Post) template.HTML {
	return s.RenderMarkdown(post.Content)
}

// RenderMarkdown converts any markdown text with the configured engine.
func (s *PostService) RenderMarkdown(text string) template.HTML {
	return markdown.RenderHTML(s.renderer, text)
}

// Categories counts posts per category.
func (s *PostService) Categories(ctx context.Context) ([]TermCount, error) {
	posts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, post := range posts {
		counts[post.Frontmatter.Category]++
	}
	return sortedTerms(counts), nil
}

// Tags counts posts per tag.
func (s *PostService) Tags(ctx context.Context) ([]TermCount, error) {
	posts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, post := range posts {
		for _, tag := range post.Frontmatter.Tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				counts[tag]++
			}
		}
	}
	return sortedTerms(counts), nil
}

func sortedTerms(counts map[string]int) []TermCount {
	terms := make([]TermCount, 0, len(counts))
	for name, count := range counts {
		terms = append(terms, TermCount{Name: name, Count: count})
	}
	slices.SortFunc(terms, func(a, b TermCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return terms
}
