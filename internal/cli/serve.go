package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/thescoop/internal/content"
	"github.com/thescoop/internal/handler"
	"github.com/thescoop/internal/markdown"
	"github.com/thescoop/internal/router"
	"github.com/thescoop/internal/service"
	"github.com/thescoop/internal/watch"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var (
		addr     string
		source   string
		watchDir bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site and the posts API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				a.cfg.ListenAddr = addr
			}
			if flags.Changed("source") {
				a.cfg.PostsSource = source
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, watchDir)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from SCOOP_LISTEN_ADDR)")
	cmd.Flags().StringVar(&source, "source", "", "where posts come from: live or artifact (default from SCOOP_POSTS_SOURCE)")
	cmd.Flags().BoolVar(&watchDir, "watch", false, "with the artifact source, regenerate it whenever a post changes")
	return cmd
}

// newServer wires the content source, services and router into an
// http.Server. The loader is returned so callers can regenerate from it.
func (a *app) newServer() (*http.Server, *content.Loader, error) {
	gin.SetMode(a.cfg.GinMode)

	loader := content.NewLoader(a.cfg.ContentDir, content.WithLogger(a.logger))
	source, err := content.NewSource(a.cfg.PostsSource, loader, a.cfg.ArtifactPath, a.logger)
	if err != nil {
		return nil, nil, err
	}

	renderer, err := markdown.NewRenderer(a.cfg.MarkdownEngine, a.cfg.SanitizeHTML)
	if err != nil {
		return nil, nil, err
	}

	api := handler.NewAPI(
		service.NewPostService(source, renderer),
		service.NewPageService(a.cfg.PagesDir),
		handler.Site{Name: a.cfg.SiteName, BaseURL: a.cfg.SiteBaseURL},
		a.logger,
	)
	engine, err := router.SetupRouter(api, a.logger)
	if err != nil {
		return nil, nil, err
	}

	return &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}, loader, nil
}

func (a *app) serve(ctx context.Context, watchDir bool) error {
	srv, loader, err := a.newServer()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("server listening", "addr", srv.Addr, "source", a.cfg.PostsSource, "engine", a.cfg.MarkdownEngine)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if watchDir {
		if a.cfg.PostsSource != content.SourceArtifact {
			a.logger.Warn("--watch only applies to the artifact source, ignoring", "source", a.cfg.PostsSource)
		} else {
			build := func(ctx context.Context) error {
				_, err := content.Generate(ctx, loader, a.cfg.ArtifactPath)
				return err
			}
			regen := watch.New(a.cfg.ContentDir, build, watch.WithLogger(a.logger))
			g.Go(func() error { return regen.Run(gctx) })
		}
	}

	return g.Wait()
}
