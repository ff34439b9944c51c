package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// AppConfig holds everything needed to build and serve the site.
type AppConfig struct {
	ListenAddr     string `env:"SCOOP_LISTEN_ADDR, default=:8080"`
	ContentDir     string `env:"SCOOP_CONTENT_DIR, default=content/posts"`
	PagesDir       string `env:"SCOOP_PAGES_DIR, default=content/pages"`
	ArtifactPath   string `env:"SCOOP_ARTIFACT_PATH, default=content/posts.json"`
	PostsSource    string `env:"SCOOP_POSTS_SOURCE, default=live"`
	MarkdownEngine string `env:"SCOOP_MARKDOWN_ENGINE, default=pipeline"`
	SanitizeHTML   bool   `env:"SCOOP_SANITIZE_HTML, default=false"`
	SiteName       string `env:"SCOOP_SITE_NAME, default=The Scoop EA"`
	SiteBaseURL    string `env:"SCOOP_SITE_BASE_URL"`
	GinMode        string `env:"SCOOP_GIN_MODE, default=release"`
	LogLevel       string `env:"SCOOP_LOG_LEVEL, default=info"`
	LogFormat      string `env:"SCOOP_LOG_FORMAT, default=text"`
}

// Load reads an optional .env file from the working directory and then the
// process environment. Values already set in the environment win.
func Load(ctx context.Context) (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith resolves configuration from an explicit lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return AppConfig{}, fmt.Errorf("process environment: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c *AppConfig) normalize() {
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	c.ContentDir = strings.TrimSpace(c.ContentDir)
	c.PagesDir = strings.TrimSpace(c.PagesDir)
	c.ArtifactPath = strings.TrimSpace(c.ArtifactPath)
	c.PostsSource = strings.ToLower(strings.TrimSpace(c.PostsSource))
	c.MarkdownEngine = strings.ToLower(strings.TrimSpace(c.MarkdownEngine))
	c.SiteName = strings.TrimSpace(c.SiteName)
	c.SiteBaseURL = strings.TrimRight(strings.TrimSpace(c.SiteBaseURL), "/")
	c.GinMode = strings.ToLower(strings.TrimSpace(c.GinMode))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// Validate rejects values the server cannot start with.
func (c AppConfig) Validate() error {
	var errs []error
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("SCOOP_LISTEN_ADDR must not be empty"))
	}
	if c.ContentDir == "" {
		errs = append(errs, errors.New("SCOOP_CONTENT_DIR must not be empty"))
	}
	if !oneOf(c.PostsSource, "live", "artifact") {
		errs = append(errs, fmt.Errorf("SCOOP_POSTS_SOURCE must be live or artifact, got %q", c.PostsSource))
	}
	if c.PostsSource == "artifact" && c.ArtifactPath == "" {
		errs = append(errs, errors.New("SCOOP_ARTIFACT_PATH is required for the artifact source"))
	}
	if !oneOf(c.MarkdownEngine, "pipeline", "goldmark") {
		errs = append(errs, fmt.Errorf("SCOOP_MARKDOWN_ENGINE must be pipeline or goldmark, got %q", c.MarkdownEngine))
	}
	if !oneOf(c.GinMode, "debug", "release", "test") {
		errs = append(errs, fmt.Errorf("SCOOP_GIN_MODE must be debug, release or test, got %q", c.GinMode))
	}
	if !oneOf(c.LogFormat, "text", "json") {
		errs = append(errs, fmt.Errorf("SCOOP_LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

func oneOf(value string, allowed ...string) bool {
	return slices.Contains(allowed, value)
}
