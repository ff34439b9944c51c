package content

import (
	"errors"
	"strings"
	"time"
)

// Extension is the suffix a file needs to be picked up as a post.
const Extension = ".md"

// Frontmatter defaults applied by Normalize.
const (
	DefaultTitle    = "Untitled"
	DefaultAuthor   = "Unknown Author"
	DefaultCategory = "Uncategorized"
	DefaultReadTime = "Unknown"
)

var ErrPostNotFound = errors.New("post not found")

// Frontmatter is the fixed-shape metadata record every post carries. All
// fields are always populated; Tags is never nil.
type Frontmatter struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Date        string   `json:"date"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
	ReadTime    string   `json:"readTime"`
}

// Post is one content file after ingestion. Content holds the raw body text.
type Post struct {
	Slug        string      `json:"slug"`
	Frontmatter Frontmatter `json:"frontmatter"`
	Content     string      `json:"content"`
}

// PublishedAt parses the frontmatter date. Unparseable dates yield the zero time.
func (p Post) PublishedAt() time.Time {
	t, _ := ParseDate(p.Frontmatter.Date)
	return t
}

// HasTag reports whether the post carries tag, ignoring case.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Frontmatter.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Find returns the post with the given slug.
func Find(posts []Post, slug string) (Post, bool) {
	for _, post := range posts {
		if post.Slug == slug {
			return post, true
		}
	}
	return Post{}, false
}
