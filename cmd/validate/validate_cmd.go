package validate

import (
	"fmt"

	"github.com/LegacyCodeHQ/ecocap/catalog"
	"github.com/LegacyCodeHQ/ecocap/internal/mcplogdlog"
	"github.com/LegacyCodeHQ/ecocap/vcs"
	"github.com/spf13/cobra"
)

// NewCommand returns a new validate command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog.yaml>",
		Short: "Check a catalog file against the built-in rules",
		Long: `Load a catalog file, merge it with the built-in rules and report
integrity errors: unknown keys, malformed coordinates, empty rules, duplicate
rule identities and modules claimed by more than one rule.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			extra, err := catalog.Load(path, vcs.FilesystemContentReader())
			if err != nil {
				return err
			}
			c, err := catalog.Merge(catalog.BuiltinRules(), extra)
			if err != nil {
				mcplogdlog.Warn("catalog rejected", mcplogdlog.Fields{"path": path, "error": err.Error()})
				return fmt.Errorf("%s: %w", path, err)
			}

			modules := 0
			for _, r := range extra {
				modules += len(r.Modules)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules, %d modules (%d rules with built-ins)\n",
				path, len(extra), modules, c.Len())
			return err
		},
	}

	return cmd
}
