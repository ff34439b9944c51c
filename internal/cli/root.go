package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thescoop/internal/config"
	"github.com/thescoop/internal/log"
)

const serviceName = "scoop"

// app carries the resolved configuration shared by every subcommand.
type app struct {
	loadConfig func(ctx context.Context) (config.AppConfig, error)
	logOut     io.Writer

	cfg    config.AppConfig
	logger *slog.Logger
}

// Execute runs the scoop command tree.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand returns the scoop command with its subcommands attached.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{loadConfig: config.Load, logOut: os.Stdout})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "scoop",
		Short: "The Scoop EA content site",
		Long: `scoop turns a directory of markdown posts into a browsable site.
It can pre-build the posts document or serve the site directly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = slog.New(log.NewHandler(a.logOut, serviceName, cfg.LogLevel, cfg.LogFormat))
			return nil
		},
	}

	root.AddCommand(newGenerateCommand(a), newServeCommand(a))
	return root
}
