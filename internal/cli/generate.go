package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thescoop/internal/content"
	"github.com/thescoop/internal/watch"
)

func newGenerateCommand(a *app) *cobra.Command {
	var (
		contentDir string
		out        string
		watchDir   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the posts JSON document from the content directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("content") {
				a.cfg.ContentDir = contentDir
			}
			if flags.Changed("out") {
				a.cfg.ArtifactPath = out
			}

			loader := content.NewLoader(a.cfg.ContentDir, content.WithLogger(a.logger))
			build := func(ctx context.Context) error {
				n, err := content.Generate(ctx, loader, a.cfg.ArtifactPath)
				if err != nil {
					return err
				}
				a.logger.Info("posts document written", "path", a.cfg.ArtifactPath, "posts", n)
				return nil
			}

			if !watchDir {
				return build(cmd.Context())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watch.New(a.cfg.ContentDir, build, watch.WithLogger(a.logger)).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&contentDir, "content", "", "directory holding the markdown posts (default from SCOOP_CONTENT_DIR)")
	cmd.Flags().StringVar(&out, "out", "", "path of the generated JSON document (default from SCOOP_ARTIFACT_PATH)")
	cmd.Flags().BoolVar(&watchDir, "watch", false, "regenerate whenever a post changes")
	return cmd
}
