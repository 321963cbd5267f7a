// Package command implements the modeltool subcommands.
package command

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/internal/assets"
	"github.com/Faultbox/blockforge/internal/config"
	"github.com/Faultbox/blockforge/internal/logger"
	"github.com/Faultbox/blockforge/pkg/model"
)

// App is the state shared by all subcommands, built once flags are parsed.
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Assets   *assets.Manager
	Resolver *model.Resolver
}

func (a *App) setup(o config.Overrides) error {
	cfg, err := config.Load(o)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}

	a.Config = cfg
	a.Log = logger.Named("modeltool")
	a.Assets = assets.NewManager(logger.Named("assets"))
	for _, p := range cfg.Packs {
		if err := a.Assets.AddPack(p); err != nil {
			// PersistentPostRun is skipped when setup fails.
			a.Assets.Close()
			return err
		}
	}
	if len(cfg.Packs) == 0 {
		a.Log.Warn("no resource packs configured")
	}
	a.Resolver = model.NewResolver(a.Assets, model.WithLogger(logger.Named("resolver")))
	return nil
}

func (a *App) close() {
	if a.Assets != nil {
		hits, misses := a.Assets.Stats()
		a.Log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		a.Assets.Close()
	}
	logger.Sync()
}

// NewRootCommand builds the modeltool command tree.
func NewRootCommand() *cobra.Command {
	var o config.Overrides
	app := &App{}

	cmd := &cobra.Command{
		Use:   "modeltool",
		Short: "Resolve block models and their textures from resource packs",
		Long: "modeltool reads block models from one or more resource packs, follows\n" +
			"their parent chains and reports the resolved geometry and textures.\n\n" +
			"Packs come from the config file (" + config.FileName + ") and --pack flags;\n" +
			"later packs override earlier ones.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(o)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", "", "Path to config file")
	cmd.PersistentFlags().StringArrayVarP(&o.Packs, "pack", "p", nil, "Resource pack directory or zip (repeatable, last wins)")
	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&o.LogFile, "log-file", "", "Also write logs to this file")

	cmd.AddCommand(
		newResolveCommand(app),
		newTexturesCommand(app),
		newUploadCommand(app),
		newPacksCommand(app),
	)
	return cmd
}

// minArgs returns an error if fewer than n args are given.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) >= n {
			return nil
		}
		_ = cmd.Usage()
		return fmt.Errorf("requires at least %d model identifier(s)", n)
	}
}
