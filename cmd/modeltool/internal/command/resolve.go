package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/blockforge/pkg/model"
)

func newResolveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <model>...",
		Short: "Print resolved models as YAML",
		Long: "Resolve each model through its parent chain and print the result as a\n" +
			"YAML document. Identifiers without a namespace use minecraft, e.g.\n" +
			"\"block/stone\" or \"mymod:block/ore\".",
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()

			for _, arg := range args {
				m, err := app.Resolver.ResolveString(arg)
				if err != nil {
					return err
				}
				if err := enc.Encode(m); err != nil {
					return fmt.Errorf("encoding %s: %w", m.ID, err)
				}
			}
			return nil
		},
	}
}

func newTexturesCommand(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "textures <model>...",
		Short: "List the textures a resolved model uses",
		Args:  minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var unresolved []string

			for _, arg := range args {
				m, err := app.Resolver.ResolveString(arg)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s:\n", m.ID)
				for _, r := range m.TextureRefs() {
					fmt.Fprintf(out, "  %s\n", r)
				}
				for _, v := range m.UnresolvedVariables() {
					fmt.Fprintf(out, "  %s (unresolved)\n", model.VariableRef(v))
					unresolved = append(unresolved, m.ID.String()+"#"+v)
				}
			}

			if strict && len(unresolved) > 0 {
				return fmt.Errorf("unresolved texture variables: %s", strings.Join(unresolved, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when a model has unresolved texture variables")
	return cmd
}
