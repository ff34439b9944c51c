package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thescoop/internal/log"
	"gopkg.in/yaml.v3"
)

type samplePost struct {
	File        string   `yaml:"-"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Author      string   `yaml:"author"`
	Date        string   `yaml:"date"`
	Image       string   `yaml:"image,omitempty"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Featured    bool     `yaml:"featured,omitempty"`
	ReadTime    string   `yaml:"readTime"`
	Body        string   `yaml:"-"`
}

var samplePosts = []samplePost{
	{
		File:        "red-carpet-recap.md",
		Title:       "Red Carpet Recap",
		Description: "Every look worth talking about from Saturday night.",
		Author:      "Wanjiru K.",
		Date:        "2025-03-01",
		Image:       "/images/red-carpet.jpg",
		Category:    "fashion",
		Tags:        []string{"awards", "style"},
		Featured:    true,
		ReadTime:    "4 min read",
		Body: "## The Winners\n\nThe night belonged to **bold colour** and *bolder* entrances.\n\n" +
			"- Sequins everywhere\n- Capes are back\n- Nobody wore beige\n\n" +
			"![Arrivals](/images/arrivals.jpg)\n\n> \"I dressed for the headlines,\" one guest told us.\n",
	},
	{
		File:        "chart-shakeup.md",
		Title:       "This Week's Chart Shakeup",
		Description: "Three newcomers crash the top ten.",
		Author:      "Otieno M.",
		Date:        "2025-02-20",
		Category:    "music",
		Tags:        []string{"charts"},
		ReadTime:    "3 min read",
		Body: "| Position | Artist | Change |\n|---|---|---|\n| 1 | Sauti Sol | +2 |\n| 2 | Nviiri | new |\n\n" +
			"Read the full list on the [official site](https://example.com/charts).\n",
	},
	{
		File:        "behind-the-scenes.md",
		Title:       "Behind the Scenes",
		Description: "How we put the weekly roundup together.",
		Author:      "The Scoop Team",
		Date:        "2025-01-15",
		Category:    "celebrity-news",
		Tags:        []string{"meta"},
		ReadTime:    "2 min read",
		Body: "Our newsroom runs on markdown files.\n\n```yaml\ntitle: Example\nfeatured: true\n```\n\n" +
			"1. Draft the story\n2. Add front matter\n3. Publish\n",
	},
}

const aboutPage = `---
title: About Us
---
The Scoop EA is your go-to source for the latest gossip and entertainment news.

We bring you the juiciest stories from around the globe.
`

func main() {
	dir := flag.String("dir", "content", "content root to seed")
	force := flag.Bool("force", false, "overwrite existing files")
	flag.Parse()

	logger := log.New("seed_posts", "info", "text")
	written, err := seed(*dir, *force, logger)
	if err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seeding finished", "dir", *dir, "written", written)
}

// seed writes the sample posts under dir/posts and the about page under
// dir/pages, leaving existing files alone unless force is set.
func seed(root string, force bool, logger *slog.Logger) (int, error) {
	written := 0
	for _, post := range samplePosts {
		data, err := renderPost(post)
		if err != nil {
			return written, fmt.Errorf("render %s: %w", post.File, err)
		}
		ok, err := writeFile(filepath.Join(root, "posts", post.File), data, force)
		if err != nil {
			return written, err
		}
		if ok {
			written++
		} else {
			logger.Info("post exists, skipping", "file", post.File)
		}
	}

	ok, err := writeFile(filepath.Join(root, "pages", "about.md"), []byte(aboutPage), force)
	if err != nil {
		return written, err
	}
	if ok {
		written++
	}
	return written, nil
}

func renderPost(post samplePost) ([]byte, error) {
	header, err := yaml.Marshal(post)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n")
	b.WriteString(post.Body)
	return []byte(b.String()), nil
}

func writeFile(path string, data []byte, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
