package text

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/ecocap/cmd/check/formatters"
	"github.com/LegacyCodeHQ/ecocap/conflict"
	"github.com/LegacyCodeHQ/ecocap/report"
)

// Formatter renders a report as a human-readable summary.
type Formatter struct{}

// Format renders tagged dependencies followed by conflicts and their outcome.
func (f *Formatter) Format(r report.Report, opts formatters.RenderOptions) (string, error) {
	var sb strings.Builder

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", opts.Label))
	}

	tagged := r.Tagged()
	sb.WriteString(fmt.Sprintf("%s: %d dependencies, %d tagged\n", r.Source, len(r.Entries), len(tagged)))
	for _, e := range tagged {
		for _, d := range e.Capabilities {
			sb.WriteString(fmt.Sprintf("  %s -> %s\n", e.Dependency, d))
		}
	}

	if len(r.Conflicts) == 0 {
		sb.WriteString("\nNo capability conflicts.\n")
		return sb.String(), nil
	}

	resolutions := make(map[string]conflict.Resolution, len(r.Resolutions))
	for _, res := range r.Resolutions {
		resolutions[res.Capability] = res
	}

	sb.WriteString("\nConflicts:\n")
	for _, c := range r.Conflicts {
		sb.WriteString(fmt.Sprintf("  %s\n", c.Capability))
		res, resolved := resolutions[c.Capability]
		for _, cand := range c.Candidates {
			outcome := "unresolved"
			if resolved {
				outcome = "excluded"
				if cand == res.Selected {
					outcome = "selected: " + res.Reason
				}
			}
			sb.WriteString(fmt.Sprintf("    - %s (%s)\n", cand, outcome))
		}
		if !resolved {
			sb.WriteString(fmt.Sprintf("    declare a preference with --prefer %s=<group:artifact> or use --strategy highest\n", c.Capability))
		}
	}

	return sb.String(), nil
}
