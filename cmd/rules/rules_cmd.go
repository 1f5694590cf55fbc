package rules

import (
	"fmt"
	"io"
	"strings"

	"github.com/LegacyCodeHQ/ecocap/capability"
	"github.com/LegacyCodeHQ/ecocap/catalog"
	"github.com/LegacyCodeHQ/ecocap/vcs"
	"github.com/spf13/cobra"
)

// NewCommand returns a new rules command instance.
func NewCommand() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List capability rules",
		Long: `List the capability rules in registration order, one per line:

  group:name <- module, module

Rules from --catalog are listed after the built-in ones.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.Open(catalogPath, vcs.FilesystemContentReader())
			if err != nil {
				return err
			}
			return printRules(cmd.OutOrStdout(), c.Rules())
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Additional catalog YAML merged with the built-in rules")
	return cmd
}

func printRules(w io.Writer, rules []capability.Rule) error {
	for _, r := range rules {
		modules := make([]string, len(r.Modules))
		for i, m := range r.Modules {
			modules[i] = m.String()
		}
		line := fmt.Sprintf("%s <- %s", r.ID(), strings.Join(modules, ", "))
		if len(r.Variants) > 0 {
			line += fmt.Sprintf(" [variants: %s]", strings.Join(r.Variants, ", "))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
