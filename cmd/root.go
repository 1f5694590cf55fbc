package cmd

import (
	"os"

	"github.com/LegacyCodeHQ/ecocap/cmd/check"
	"github.com/LegacyCodeHQ/ecocap/cmd/rules"
	"github.com/LegacyCodeHQ/ecocap/cmd/tag"
	"github.com/LegacyCodeHQ/ecocap/cmd/validate"
	"github.com/LegacyCodeHQ/ecocap/cmd/watch"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ecocap",
		Short: "Tag Java ecosystem modules with capabilities and catch duplicate APIs",
		Long: `Ecocap attaches synthetic capabilities to Java ecosystem modules so that
alternative implementations of the same API (for example javax and jakarta
activation) are detected as conflicts instead of silently sharing a classpath.

Use 'ecocap --help' to see all available commands, or 'ecocap <command> --help'
for detailed information about a specific command.`,
		Version: version,
	}

	cmd.AddCommand(
		rules.NewCommand(),
		tag.NewCommand(),
		check.NewCommand(),
		validate.NewCommand(),
		watch.NewCommand(),
	)

	// Initialize annotations for version template
	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
