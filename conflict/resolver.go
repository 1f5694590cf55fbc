package conflict

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/ecocap/capability"
)

// ErrUnresolvedConflict is returned when no preference or strategy settles a conflict.
var ErrUnresolvedConflict = errors.New("unresolved capability conflict")

// Strategy decides conflicts that have no explicit preference.
type Strategy string

const (
	// StrategyFail reports the conflict as an error.
	StrategyFail Strategy = "fail"
	// StrategyHighestVersion selects the candidate with the highest version.
	StrategyHighestVersion Strategy = "highest"
)

// ParseStrategy parses a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(s)) {
	case StrategyFail, "":
		return StrategyFail, nil
	case StrategyHighestVersion:
		return StrategyHighestVersion, nil
	default:
		return "", fmt.Errorf("unknown strategy: %s (valid options: %s, %s)", s, StrategyFail, StrategyHighestVersion)
	}
}

// UnresolvedError reports a conflict left open under StrategyFail.
type UnresolvedError struct {
	Conflict Conflict
}

func (e *UnresolvedError) Error() string {
	names := make([]string, 0, len(e.Conflict.Candidates))
	for _, c := range e.Conflict.Candidates {
		names = append(names, c.String())
	}
	return fmt.Sprintf("capability %s is provided by %s; declare a preference", e.Conflict.Capability, strings.Join(names, ", "))
}

func (e *UnresolvedError) Unwrap() error {
	return ErrUnresolvedConflict
}

// Resolution records which candidate won a conflict.
type Resolution struct {
	Capability string
	Selected   Candidate
	Excluded   []Candidate
	// Reason is "preferred" or the strategy that picked Selected.
	Reason string
}

// Resolver settles conflicts by preference first, then by strategy.
type Resolver struct {
	Strategy Strategy
	// Preferences maps a capability group:name to the module that must win it.
	Preferences map[string]capability.Coordinate
}

// Resolve selects exactly one candidate of c.
func (r Resolver) Resolve(c Conflict) (Resolution, error) {
	if preferred, ok := r.Preferences[c.Capability]; ok {
		if idx := r.preferredIndex(c, preferred); idx >= 0 {
			return newResolution(c, idx, "preferred"), nil
		}
	}

	switch r.Strategy {
	case StrategyHighestVersion:
		return newResolution(c, highestVersionIndex(c.Candidates), string(StrategyHighestVersion)), nil
	case StrategyFail, "":
		return Resolution{}, &UnresolvedError{Conflict: c}
	default:
		return Resolution{}, fmt.Errorf("unknown strategy: %s", r.Strategy)
	}
}

// ResolveAll resolves every conflict. The returned error joins all failures.
func (r Resolver) ResolveAll(conflicts []Conflict) ([]Resolution, error) {
	var resolutions []Resolution
	var errs []error
	for _, c := range conflicts {
		res, err := r.Resolve(c)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resolutions = append(resolutions, res)
	}
	return resolutions, errors.Join(errs...)
}

// preferredIndex returns the highest version of the preferred module, or -1 when it is not a candidate.
func (r Resolver) preferredIndex(c Conflict, preferred capability.Coordinate) int {
	var matching []int
	for i, cand := range c.Candidates {
		if cand.Coordinate == preferred {
			matching = append(matching, i)
		}
	}
	if len(matching) == 0 {
		return -1
	}
	best := matching[0]
	for _, i := range matching[1:] {
		if CompareVersions(c.Candidates[i].Version, c.Candidates[best].Version) > 0 {
			best = i
		}
	}
	return best
}

func newResolution(c Conflict, selected int, reason string) Resolution {
	res := Resolution{Capability: c.Capability, Selected: c.Candidates[selected], Reason: reason}
	for i, cand := range c.Candidates {
		if i != selected {
			res.Excluded = append(res.Excluded, cand)
		}
	}
	return res
}

// highestVersionIndex orders candidates by version descending, then coordinate ascending.
func highestVersionIndex(candidates []Candidate) int {
	idx := make([]int, len(candidates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := candidates[idx[i]], candidates[idx[j]]
		if cmp := CompareVersions(a.Version, b.Version); cmp != 0 {
			return cmp > 0
		}
		return a.Coordinate.Less(b.Coordinate)
	})
	return idx[0]
}
