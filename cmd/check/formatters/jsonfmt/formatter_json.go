package jsonfmt

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/ecocap/capability"
	"github.com/LegacyCodeHQ/ecocap/cmd/check/formatters"
	"github.com/LegacyCodeHQ/ecocap/conflict"
	"github.com/LegacyCodeHQ/ecocap/report"
)

type document struct {
	Source       string          `json:"source"`
	Dependencies []dependencyDoc `json:"dependencies"`
	Conflicts    []conflictDoc   `json:"conflicts"`
}

type dependencyDoc struct {
	Module        string                   `json:"module"`
	Version       string                   `json:"version,omitempty"`
	Configuration string                   `json:"configuration,omitempty"`
	Line          int                      `json:"line,omitempty"`
	Capabilities  []capability.Declaration `json:"capabilities"`
}

type conflictDoc struct {
	Capability string   `json:"capability"`
	Candidates []string `json:"candidates"`
	Selected   string   `json:"selected,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Resolved   bool     `json:"resolved"`
}

// Formatter renders a report as JSON.
type Formatter struct{}

// Format converts the report to indented JSON.
// The opts parameter is accepted for interface compatibility but not used.
func (f *Formatter) Format(r report.Report, _ formatters.RenderOptions) (string, error) {
	doc := document{
		Source:       r.Source,
		Dependencies: make([]dependencyDoc, 0, len(r.Entries)),
		Conflicts:    make([]conflictDoc, 0, len(r.Conflicts)),
	}

	for _, e := range r.Entries {
		caps := e.Capabilities
		if caps == nil {
			caps = []capability.Declaration{}
		}
		doc.Dependencies = append(doc.Dependencies, dependencyDoc{
			Module:        e.Dependency.Coordinate.String(),
			Version:       e.Dependency.Version,
			Configuration: e.Dependency.Configuration,
			Line:          e.Dependency.Line,
			Capabilities:  caps,
		})
	}

	resolutions := make(map[string]conflict.Resolution, len(r.Resolutions))
	for _, res := range r.Resolutions {
		resolutions[res.Capability] = res
	}
	for _, c := range r.Conflicts {
		cd := conflictDoc{Capability: c.Capability}
		for _, cand := range c.Candidates {
			cd.Candidates = append(cd.Candidates, cand.String())
		}
		if res, ok := resolutions[c.Capability]; ok {
			cd.Selected = res.Selected.String()
			cd.Reason = res.Reason
			cd.Resolved = true
		}
		doc.Conflicts = append(doc.Conflicts, cd)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
