// Package conflict finds artifacts that declare the same capability and picks one of them.
package conflict

import (
	"sort"

	"github.com/LegacyCodeHQ/ecocap/capability"
)

// Candidate is one artifact version competing for a capability.
type Candidate struct {
	Coordinate capability.Coordinate
	Version    string
}

func (c Candidate) String() string {
	if c.Version == "" {
		return c.Coordinate.String()
	}
	return c.Coordinate.String() + ":" + c.Version
}

// Conflict lists two or more distinct modules declaring the same capability.
type Conflict struct {
	// Capability is the group:name identity shared by all candidates.
	Capability string
	Candidates []Candidate
}

// Detect groups tagged components by capability and reports each capability
// that more than one module declares. Results are sorted by capability, and
// candidates by coordinate then version.
func Detect(components []capability.Component) []Conflict {
	byCapability := make(map[string][]Candidate)
	seen := make(map[string]map[Candidate]bool)

	for _, comp := range components {
		for _, decl := range comp.Declarations() {
			id := decl.ID()
			cand := Candidate{Coordinate: comp.Coordinate, Version: comp.Version}
			if seen[id] == nil {
				seen[id] = make(map[Candidate]bool)
			}
			if seen[id][cand] {
				continue
			}
			seen[id][cand] = true
			byCapability[id] = append(byCapability[id], cand)
		}
	}

	var conflicts []Conflict
	for id, candidates := range byCapability {
		if distinctModules(candidates) < 2 {
			continue
		}
		sortCandidates(candidates)
		conflicts = append(conflicts, Conflict{Capability: id, Candidates: candidates})
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].Capability < conflicts[j].Capability
	})
	return conflicts
}

func distinctModules(candidates []Candidate) int {
	modules := make(map[capability.Coordinate]bool, len(candidates))
	for _, c := range candidates {
		modules[c.Coordinate] = true
	}
	return len(modules)
}

func sortCandidates(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Coordinate != b.Coordinate {
			return a.Coordinate.Less(b.Coordinate)
		}
		return a.Version < b.Version
	})
}
