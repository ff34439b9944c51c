package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"
)

// Loader scans a flat directory of Markdown files and turns each into a Post.
// It holds no state between calls; every Load re-reads the directory.
type Loader struct {
	dir    string
	fsys   fs.FS
	logger *slog.Logger
	now    func() time.Time
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock overrides the clock used for the default post date.
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

// WithFS reads posts from fsys instead of the operating system. The
// directory passed to NewLoader is then only used in log output.
func WithFS(fsys fs.FS) LoaderOption {
	return func(l *Loader) {
		if fsys != nil {
			l.fsys = fsys
		}
	}
}

// NewLoader returns a Loader for dir.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	l := &Loader{
		dir:    dir,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fsys == nil {
		l.fsys = os.DirFS(dir)
	}
	return l
}

// Dir returns the directory the loader scans.
func (l *Loader) Dir() string {
	return l.dir
}

// LoadPosts scans dir with a default Loader.
func LoadPosts(dir string) []Post {
	return NewLoader(dir).Load(context.Background())
}

type loadedPost struct {
	post Post
	file string
	when time.Time
}

// Load returns every parseable post in the directory, newest first. A missing
// directory yields an empty slice, and files that fail to read or parse are
// logged and left out. Load never fails.
func (l *Loader) Load(ctx context.Context) []Post {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("content directory not found", "dir", l.dir)
		} else {
			l.logger.Error("read content directory", "dir", l.dir, "error", err)
		}
		return []Post{}
	}

	now := l.now()
	loaded := make([]loadedPost, 0, len(entries))
	for _, entry := range entries {
		if ctx.Err() != nil {
			l.logger.Warn("content scan interrupted", "dir", l.dir, "error", ctx.Err())
			break
		}
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) {
			continue
		}
		if strings.TrimSuffix(name, Extension) == "" {
			l.logger.Warn("skipping content file without a name", "file", name)
			continue
		}

		post, err := l.loadFile(name, now)
		if err != nil {
			l.logger.Warn("skipping content file", "file", name, "error", err)
			continue
		}
		when, _ := ParseDate(post.Frontmatter.Date)
		loaded = append(loaded, loadedPost{post: post, file: name, when: when})
	}

	slices.SortStableFunc(loaded, func(a, b loadedPost) int {
		return b.when.Compare(a.when)
	})

	posts := make([]Post, 0, len(loaded))
	seen := make(map[string]string, len(loaded))
	for _, item := range loaded {
		if first, dup := seen[item.post.Slug]; dup {
			l.logger.Warn("duplicate slug, keeping newest", "slug", item.post.Slug, "file", item.file, "kept", first)
			continue
		}
		seen[item.post.Slug] = item.file
		posts = append(posts, item.post)
	}
	return posts
}

func (l *Loader) loadFile(name string, now time.Time) (Post, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Post{}, fmt.Errorf("read %s: %w", name, err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return Post{}, err
	}

	slug, fm := Normalize(doc.Meta, strings.TrimSuffix(name, Extension), now)
	return Post{Slug: slug, Frontmatter: fm, Content: doc.Body}, nil
}
