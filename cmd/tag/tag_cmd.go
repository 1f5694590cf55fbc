package tag

import (
	"fmt"
	"io"

	"github.com/LegacyCodeHQ/ecocap/capability"
	"github.com/LegacyCodeHQ/ecocap/catalog"
	"github.com/LegacyCodeHQ/ecocap/vcs"
	"github.com/spf13/cobra"
)

// NewCommand returns a new tag command instance.
func NewCommand() *cobra.Command {
	var (
		catalogPath string
		variants    []string
	)

	cmd := &cobra.Command{
		Use:   "tag <group:artifact> <version>",
		Short: "Print the capabilities declared for a module version",
		Long: `Print the capability declarations attached to a module version.

Nothing is printed for modules no rule lists. With --variant the declarations
are shown per variant, honouring rules restricted to specific variants.

Examples:
  ecocap tag jakarta.activation:jakarta.activation-api 2.1.0
  ecocap tag com.sun.activation:jakarta.activation 1.2.2 --variant apiElements --variant runtimeElements`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coordinate, err := capability.ParseCoordinate(args[0])
			if err != nil {
				return err
			}
			c, err := catalog.Open(catalogPath, vcs.FilesystemContentReader())
			if err != nil {
				return err
			}
			return runTag(cmd.OutOrStdout(), capability.NewTagger(c), coordinate, args[1], variants)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Additional catalog YAML merged with the built-in rules")
	cmd.Flags().StringSliceVar(&variants, "variant", nil, "Variant names to apply the rules to")
	return cmd
}

func runTag(w io.Writer, tagger *capability.Tagger, coordinate capability.Coordinate, version string, variants []string) error {
	if len(variants) == 0 {
		for _, d := range tagger.Tag(coordinate, version) {
			if _, err := fmt.Fprintln(w, d); err != nil {
				return err
			}
		}
		return nil
	}

	component := capability.Component{Coordinate: coordinate, Version: version}
	for _, name := range variants {
		component.Variants = append(component.Variants, capability.Variant{Name: name})
	}
	for _, v := range tagger.Apply(component).Variants {
		for _, d := range v.Capabilities {
			if _, err := fmt.Fprintf(w, "%s: %s\n", v.Name, d); err != nil {
				return err
			}
		}
	}
	return nil
}
