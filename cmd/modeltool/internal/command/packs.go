package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/blockforge/pkg/respack"
)

func newPacksCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "packs",
		Short: "List loaded resource packs, lowest priority first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, pack := range app.Assets.Packs() {
				fmt.Fprintf(out, "%d. %s (%d files)\n", i+1, pack.Name(), len(pack.List()))
				meta, err := pack.Meta()
				if err != nil {
					fmt.Fprintf(out, "   no %s\n", respack.MetaFile)
					continue
				}
				fmt.Fprintf(out, "   format %d: %s\n", meta.Format, meta.DescriptionText())
			}
			return nil
		},
	}
}
