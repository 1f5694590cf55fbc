package capability

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateModule is returned when a coordinate is claimed more than once.
	ErrDuplicateModule = errors.New("module claimed by more than one rule")
	// ErrDuplicateRule is returned when two rules share the same identity.
	ErrDuplicateRule = errors.New("duplicate rule")
)

// DuplicateModuleError reports a coordinate claimed by two rules, or listed twice by one.
type DuplicateModuleError struct {
	Module Coordinate
	First  string
	Second string
}

func (e *DuplicateModuleError) Error() string {
	if e.First == e.Second {
		return fmt.Sprintf("module %s listed twice by rule %s", e.Module, e.First)
	}
	return fmt.Sprintf("module %s claimed by rules %s and %s", e.Module, e.First, e.Second)
}

func (e *DuplicateModuleError) Unwrap() error {
	return ErrDuplicateModule
}

// RuleError locates a rejected rule by its position in the input.
type RuleError struct {
	Index int
	Rule  string
	Err   error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %d (%s): %v", e.Index, e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// Catalog is the read-only table of capability rules.
type Catalog struct {
	rules    []Rule
	byModule map[Coordinate]int
}

// NewCatalog validates the rules and indexes them by module.
// Any coordinate claimed twice makes construction fail. Failures are
// reported as a *RuleError carrying the offending rule's position.
func NewCatalog(rules ...Rule) (*Catalog, error) {
	c := &Catalog{
		rules:    make([]Rule, 0, len(rules)),
		byModule: make(map[Coordinate]int),
	}
	ids := make(map[string]bool, len(rules))

	for idx, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, &RuleError{Index: idx, Rule: r.ID(), Err: err}
		}
		if ids[r.ID()] {
			return nil, &RuleError{Index: idx, Rule: r.ID(), Err: ErrDuplicateRule}
		}
		ids[r.ID()] = true

		for _, m := range r.Modules {
			if prev, ok := c.byModule[m]; ok {
				first := r.ID()
				if prev != idx {
					first = c.rules[prev].ID()
				}
				return nil, &RuleError{Index: idx, Rule: r.ID(), Err: &DuplicateModuleError{Module: m, First: first, Second: r.ID()}}
			}
			c.byModule[m] = idx
		}
		c.rules = append(c.rules, r.clone())
	}

	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on error.
func MustNewCatalog(rules ...Rule) *Catalog {
	c, err := NewCatalog(rules...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the rule listing the coordinate.
func (c *Catalog) Lookup(coordinate Coordinate) (Rule, bool) {
	idx, ok := c.byModule[coordinate]
	if !ok {
		return Rule{}, false
	}
	return c.rules[idx].clone(), true
}

// Rules returns a copy of the rules in registration order.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.clone()
	}
	return out
}

// Alternatives returns the modules that compete with coordinate for the same capability.
func (c *Catalog) Alternatives(coordinate Coordinate) []Coordinate {
	rule, ok := c.Lookup(coordinate)
	if !ok {
		return nil
	}
	var out []Coordinate
	for _, m := range rule.Modules {
		if m != coordinate {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of rules.
func (c *Catalog) Len() int {
	return len(c.rules)
}
