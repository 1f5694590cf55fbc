package formatters

import (
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/ecocap/report"
)

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatText    OutputFormat = "text"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatMermaid OutputFormat = "mermaid"
)

var allFormats = []OutputFormat{OutputFormatText, OutputFormatJSON, OutputFormatDOT, OutputFormatMermaid}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat matches s against the known formats, ignoring case.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	for _, f := range allFormats {
		if strings.EqualFold(s, f.String()) {
			return f, true
		}
	}
	return "", false
}

// SupportedFormats returns the known formats as a comma-separated list.
func SupportedFormats() string {
	names := make([]string, len(allFormats))
	for i, f := range allFormats {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

// RenderOptions contains optional parameters for rendering a report.
type RenderOptions struct {
	// Label is an optional title for graph output
	Label string
}

// Formatter renders a capability report.
type Formatter interface {
	Format(r report.Report, opts RenderOptions) (string, error)
}

// URLGenerator is implemented by formatters whose output can be opened in an online viewer.
type URLGenerator interface {
	GenerateURL(output string) (string, bool)
}

// Status is the outcome of a module in the conflict graph.
type Status string

const (
	StatusSelected   Status = "selected"
	StatusExcluded   Status = "excluded"
	StatusUnresolved Status = "unresolved"
)

// ModuleStatuses maps each conflicting module to its outcome.
func ModuleStatuses(r report.Report) map[string]Status {
	statuses := make(map[string]Status)
	for _, c := range r.Unresolved {
		for _, cand := range c.Candidates {
			statuses[cand.Coordinate.String()] = StatusUnresolved
		}
	}
	for _, res := range r.Resolutions {
		for _, cand := range res.Excluded {
			statuses[cand.Coordinate.String()] = StatusExcluded
		}
	}
	for _, res := range r.Resolutions {
		statuses[res.Selected.Coordinate.String()] = StatusSelected
	}
	return statuses
}

// ModuleVersions maps each conflicting module to its sorted, distinct versions.
func ModuleVersions(r report.Report) map[string][]string {
	seen := make(map[string]map[string]bool)
	for _, c := range r.Conflicts {
		for _, cand := range c.Candidates {
			id := cand.Coordinate.String()
			if seen[id] == nil {
				seen[id] = make(map[string]bool)
			}
			if cand.Version != "" {
				seen[id][cand.Version] = true
			}
		}
	}

	out := make(map[string][]string, len(seen))
	for id, versions := range seen {
		list := make([]string, 0, len(versions))
		for v := range versions {
			list = append(list, v)
		}
		sort.Strings(list)
		out[id] = list
	}
	return out
}
