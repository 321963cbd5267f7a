package command

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/internal/engine/texture"
	"github.com/Faultbox/blockforge/internal/engine/window"
	"github.com/Faultbox/blockforge/internal/logger"
)

func newUploadCommand(app *App) *cobra.Command {
	var depthSize int

	cmd := &cobra.Command{
		Use:   "upload <model>...",
		Short: "Upload a model's textures into an offscreen OpenGL context",
		Args:  minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config.Textures

			win, err := window.New(window.Config{
				Title:  "modeltool",
				Width:  cfg.ContextWidth,
				Height: cfg.ContextHeight,
				Hidden: true,
			}, logger.Named("window"))
			if err != nil {
				return err
			}
			defer win.Close()

			uploader, err := texture.NewGLUploader()
			if err != nil {
				return err
			}

			set := texture.NewSet(app.Assets, uploader, logger.Named("texture"), texture.WithMaxSize(cfg.MaxSize))
			defer set.Release()

			for _, arg := range args {
				m, err := app.Resolver.ResolveString(arg)
				if err != nil {
					return err
				}
				handles, err := set.LoadModel(m)
				if err != nil {
					return err
				}
				for _, r := range m.TextureRefs() {
					w, h := handles[r].Size()
					app.Log.Info("texture uploaded",
						zap.Stringer("model", m.ID),
						zap.Stringer("texture", r),
						zap.Uint32("width", w),
						zap.Uint32("height", h),
					)
				}
			}

			if depthSize > 0 {
				h, err := uploader.UploadDepth("modeltool:depth", uint32(depthSize), uint32(depthSize))
				if err != nil {
					return err
				}
				defer h.Release()
				app.Log.Info("depth texture allocated", zap.Int("size", depthSize))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d textures\n", set.Len())
			return nil
		},
	}

	cmd.Flags().IntVar(&depthSize, "depth", 0, "Also allocate an NxN depth texture")
	return cmd
}
