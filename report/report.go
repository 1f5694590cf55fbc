// Package report tags scanned dependencies and summarises the capability conflicts among them.
package report

import (
	"errors"
	"fmt"

	"github.com/LegacyCodeHQ/ecocap/buildscript"
	"github.com/LegacyCodeHQ/ecocap/capability"
	"github.com/LegacyCodeHQ/ecocap/conflict"
)

// Entry is one scanned dependency and the capabilities attached to it.
type Entry struct {
	Dependency   buildscript.Dependency
	Capabilities []capability.Declaration
}

// Report is the outcome of checking one build input.
type Report struct {
	Source      string
	Entries     []Entry
	Conflicts   []conflict.Conflict
	Resolutions []conflict.Resolution
	Unresolved  []conflict.Conflict
	Graph       conflict.Graph
}

// Tagged returns the entries that received at least one capability.
func (r Report) Tagged() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if len(e.Capabilities) > 0 {
			out = append(out, e)
		}
	}
	return out
}

// HasUnresolved reports whether any conflict was left open.
func (r Report) HasUnresolved() bool {
	return len(r.Unresolved) > 0
}

// Build tags deps, detects conflicts and resolves them with resolver.
// Unresolved conflicts are recorded in the report, not returned as errors.
func Build(source string, deps []buildscript.Dependency, tagger *capability.Tagger, resolver conflict.Resolver) (Report, error) {
	r := Report{Source: source}

	components := make([]capability.Component, 0, len(deps))
	for _, d := range deps {
		comp := tagger.Apply(capability.Component{Coordinate: d.Coordinate, Version: d.Version})
		r.Entries = append(r.Entries, Entry{Dependency: d, Capabilities: comp.Declarations()})
		components = append(components, comp)
	}

	r.Conflicts = conflict.Detect(components)

	for _, c := range r.Conflicts {
		res, err := resolver.Resolve(c)
		var unresolved *conflict.UnresolvedError
		switch {
		case errors.As(err, &unresolved):
			r.Unresolved = append(r.Unresolved, c)
		case err != nil:
			return Report{}, fmt.Errorf("failed to resolve %s: %w", c.Capability, err)
		default:
			r.Resolutions = append(r.Resolutions, res)
		}
	}

	g, err := conflict.BuildGraph(r.Conflicts)
	if err != nil {
		return Report{}, fmt.Errorf("failed to build conflict graph: %w", err)
	}
	r.Graph = g

	return r, nil
}

// UnresolvedError joins the unresolved conflicts of r, or returns nil.
func (r Report) UnresolvedError() error {
	errs := make([]error, 0, len(r.Unresolved))
	for _, c := range r.Unresolved {
		errs = append(errs, &conflict.UnresolvedError{Conflict: c})
	}
	return errors.Join(errs...)
}
