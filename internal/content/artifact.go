package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteArtifact stores posts as an indented JSON array at path. The file is
// written to a temporary sibling first and renamed into place so readers
// never observe a partial document.
func WriteArtifact(path string, posts []Post) error {
	if posts == nil {
		posts = []Post{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(posts); err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".posts-*.json")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename artifact: %w", err)
	}
	return nil
}

// ReadArtifact loads a document written by WriteArtifact.
func ReadArtifact(path string) ([]Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	if posts == nil {
		posts = []Post{}
	}
	for i := range posts {
		if posts[i].Frontmatter.Tags == nil {
			posts[i].Frontmatter.Tags = []string{}
		}
	}
	return posts, nil
}

// Generate scans the loader's directory and writes the result to path. It
// returns the number of posts written.
func Generate(ctx context.Context, loader *Loader, path string) (int, error) {
	posts := loader.Load(ctx)
	if err := WriteArtifact(path, posts); err != nil {
		return 0, err
	}
	return len(posts), nil
}
