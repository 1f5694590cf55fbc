package check

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/ecocap/capability"
	"github.com/LegacyCodeHQ/ecocap/conflict"
	"github.com/spf13/cobra"
)

// Options configures one check run. The watch command shares them.
type Options struct {
	OutputFormat string
	Strategy     string
	Prefer       []string
	CatalogPath  string
	Label        string
	GenerateURL  bool
	RepoPath     string
	CommitID     string
}

// DefaultOptions returns the flag defaults.
func DefaultOptions() *Options {
	return &Options{
		OutputFormat: "text",
		Strategy:     string(conflict.StrategyFail),
	}
}

// AddFlags registers the check flags on cmd.
func AddFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.OutputFormat, "format", "f", opts.OutputFormat, "Output format (text, json, dot, mermaid)")
	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", opts.Strategy, "Conflict strategy when no preference applies (fail, highest)")
	cmd.Flags().StringArrayVarP(&opts.Prefer, "prefer", "p", nil, "Preferred module for a capability, as group:name=group:artifact (repeatable)")
	cmd.Flags().StringVar(&opts.CatalogPath, "catalog", "", "Additional catalog YAML merged with the built-in rules")
	cmd.Flags().StringVarP(&opts.Label, "label", "l", "", "Title for graph output")
	cmd.Flags().BoolVarP(&opts.GenerateURL, "url", "u", false, "Print an online viewer URL instead of dot or mermaid output")
	cmd.Flags().StringVarP(&opts.CommitID, "commit", "c", "", "Read the input as of this git commit")
	cmd.Flags().StringVarP(&opts.RepoPath, "repo", "r", "", "Git repository path for --commit (default: current directory)")
}

// Resolver builds the conflict resolver described by the options.
func (o *Options) Resolver() (conflict.Resolver, error) {
	strategy, err := conflict.ParseStrategy(o.Strategy)
	if err != nil {
		return conflict.Resolver{}, err
	}
	prefs, err := ParsePreferences(o.Prefer)
	if err != nil {
		return conflict.Resolver{}, err
	}
	return conflict.Resolver{Strategy: strategy, Preferences: prefs}, nil
}

// ParsePreferences parses "group:name=group:artifact" entries.
func ParsePreferences(entries []string) (map[string]capability.Coordinate, error) {
	prefs := make(map[string]capability.Coordinate, len(entries))
	for _, entry := range entries {
		capID, module, ok := strings.Cut(entry, "=")
		capID = strings.TrimSpace(capID)
		if !ok || strings.Count(capID, ":") != 1 || strings.HasPrefix(capID, ":") || strings.HasSuffix(capID, ":") {
			return nil, fmt.Errorf("invalid preference %q (expected group:name=group:artifact)", entry)
		}
		c, err := capability.ParseCoordinate(module)
		if err != nil {
			return nil, fmt.Errorf("invalid preference %q: %w", entry, err)
		}
		if prev, dup := prefs[capID]; dup && prev != c {
			return nil, fmt.Errorf("conflicting preferences for %s: %s and %s", capID, prev, c)
		}
		prefs[capID] = c
	}
	return prefs, nil
}
