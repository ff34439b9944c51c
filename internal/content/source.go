package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	SourceLive     = "live"
	SourceArtifact = "artifact"
)

var ErrInvalidSource = errors.New("invalid posts source")

// Source yields the current post collection.
type Source interface {
	Posts(ctx context.Context) ([]Post, error)
}

// LiveSource scans the content directory on every call.
type LiveSource struct {
	Loader *Loader
}

func (s LiveSource) Posts(ctx context.Context) ([]Post, error) {
	return s.Loader.Load(ctx), nil
}

// ArtifactSource serves the pre-built JSON document. When the artifact is
// missing or unreadable it falls back to a live scan through the same
// Loader, so both paths return identical records.
type ArtifactSource struct {
	Path     string
	Fallback *Loader
	Logger   *slog.Logger
}

func (s ArtifactSource) Posts(ctx context.Context) ([]Post, error) {
	posts, err := ReadArtifact(s.Path)
	if err == nil {
		return posts, nil
	}
	if s.Fallback == nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Warn("artifact unavailable, scanning content directory", "path", s.Path, "error", err)
	}
	return s.Fallback.Load(ctx), nil
}

// NewSource picks a Source implementation by name.
func NewSource(kind string, loader *Loader, artifactPath string, logger *slog.Logger) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", SourceLive:
		return LiveSource{Loader: loader}, nil
	case SourceArtifact:
		return ArtifactSource{Path: artifactPath, Fallback: loader, Logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, kind)
	}
}
