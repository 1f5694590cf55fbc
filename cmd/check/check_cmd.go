package check

import (
	"fmt"
	"io"
	"strings"

	"github.com/LegacyCodeHQ/ecocap/buildscript"
	"github.com/LegacyCodeHQ/ecocap/capability"
	"github.com/LegacyCodeHQ/ecocap/catalog"
	"github.com/LegacyCodeHQ/ecocap/cmd/check/formatters"
	"github.com/LegacyCodeHQ/ecocap/internal/mcplogdlog"
	"github.com/LegacyCodeHQ/ecocap/report"
	"github.com/LegacyCodeHQ/ecocap/vcs"
	"github.com/spf13/cobra"
)

// NewCommand returns a new check command instance.
func NewCommand() *cobra.Command {
	opts := DefaultOptions()

	cmd := &cobra.Command{
		Use:   "check <build.gradle.kts|coordinates.txt>",
		Short: "Tag dependencies with capabilities and report conflicts",
		Long: `Scan a Gradle Kotlin build script or a list of group:artifact:version
coordinates, attach catalog capabilities to each module and report modules
that compete for the same capability.

Conflicts without a preference fail the command unless --strategy highest is set.

Examples:
  ecocap check build.gradle.kts
  ecocap check runtime-classpath.txt --strategy highest
  ecocap check build.gradle.kts --prefer javax.activation:activation=jakarta.activation:jakarta.activation-api
  ecocap check build.gradle.kts --format mermaid --url
  ecocap check build.gradle.kts --commit HEAD~1`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := Run(cmd.OutOrStdout(), opts, args[0])
			if err != nil {
				return err
			}
			return r.UnresolvedError()
		},
	}

	AddFlags(cmd, opts)
	return cmd
}

// Run checks input and writes the formatted report to w.
// Unresolved conflicts are left in the report for the caller to act on.
func Run(w io.Writer, opts *Options, input string) (report.Report, error) {
	formatter, err := NewFormatter(opts.OutputFormat)
	if err != nil {
		return report.Report{}, err
	}
	resolver, err := opts.Resolver()
	if err != nil {
		return report.Report{}, err
	}

	c, err := catalog.Open(opts.CatalogPath, vcs.FilesystemContentReader())
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	mcplogdlog.Debug("catalog loaded", mcplogdlog.Fields{"rules": c.Len(), "path": opts.CatalogPath})

	reader, err := contentReader(opts)
	if err != nil {
		return report.Report{}, err
	}
	deps, err := buildscript.ParseFile(input, reader)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to scan dependencies: %w", err)
	}

	r, err := report.Build(input, deps, capability.NewTagger(c), resolver)
	if err != nil {
		return report.Report{}, err
	}
	mcplogdlog.Info("check finished", mcplogdlog.Fields{
		"input":        input,
		"dependencies": len(r.Entries),
		"tagged":       len(r.Tagged()),
		"conflicts":    len(r.Conflicts),
		"unresolved":   len(r.Unresolved),
	})

	output, err := formatter.Format(r, formatters.RenderOptions{Label: opts.Label})
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to format report: %w", err)
	}

	if opts.GenerateURL {
		if generator, ok := formatter.(formatters.URLGenerator); ok {
			if url, ok := generator.GenerateURL(output); ok {
				output = url
			}
		}
	}

	if _, err := fmt.Fprint(w, output); err != nil {
		return report.Report{}, err
	}
	if !strings.HasSuffix(output, "\n") {
		fmt.Fprintln(w)
	}
	return r, nil
}

func contentReader(opts *Options) (vcs.ContentReader, error) {
	if opts.CommitID == "" {
		return vcs.FilesystemContentReader(), nil
	}
	repoPath := opts.RepoPath
	if repoPath == "" {
		repoPath = "."
	}
	reader, err := vcs.GitCommitContentReader(repoPath, opts.CommitID)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", opts.CommitID, err)
	}
	return reader, nil
}
