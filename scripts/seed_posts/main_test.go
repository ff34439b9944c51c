package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/thescoop/internal/content"
	"github.com/thescoop/internal/log"
	"github.com/thescoop/internal/service"
)

func TestSeedProducesLoadablePosts(t *testing.T) {
	root := t.TempDir()

	written, err := seed(root, false, log.Discard())
	if err != nil {
		t.Fatalf("seed returned error: %v", err)
	}
	if written != len(samplePosts)+1 {
		t.Fatalf("expected %d files written, got %d", len(samplePosts)+1, written)
	}

	posts := content.NewLoader(filepath.Join(root, "posts"), content.WithLogger(log.Discard())).Load(context.Background())
	if len(posts) != len(samplePosts) {
		t.Fatalf("expected %d posts, got %d", len(samplePosts), len(posts))
	}
	if posts[0].Slug != "red-carpet-recap" {
		t.Fatalf("expected newest post first, got %q", posts[0].Slug)
	}
	if !posts[0].Frontmatter.Featured || len(posts[0].Frontmatter.Tags) != 2 {
		t.Fatalf("front matter not preserved: %#v", posts[0].Frontmatter)
	}
	if posts[1].Frontmatter.Image != "" {
		t.Fatalf("expected empty image for post without one, got %q", posts[1].Frontmatter.Image)
	}

	page, err := service.NewPageService(filepath.Join(root, "pages")).About()
	if err != nil {
		t.Fatalf("about page not loadable: %v", err)
	}
	if page.Title != "About Us" {
		t.Fatalf("unexpected about title %q", page.Title)
	}
}

func TestSeedKeepsExistingFiles(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "posts", samplePosts[0].File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("mine"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	written, err := seed(root, false, log.Discard())
	if err != nil {
		t.Fatalf("seed returned error: %v", err)
	}
	if written != len(samplePosts) {
		t.Fatalf("expected existing file to be skipped, wrote %d", written)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "mine" {
		t.Fatalf("existing file overwritten: %q", data)
	}

	if _, err := seed(root, true, log.Discard()); err != nil {
		t.Fatalf("forced seed returned error: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) == "mine" {
		t.Fatal("expected force to overwrite")
	}
}
