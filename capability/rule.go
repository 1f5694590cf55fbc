package capability

import (
	"errors"
	"slices"
)

var (
	// ErrEmptyRule is returned when a rule lists no modules.
	ErrEmptyRule = errors.New("rule has no modules")
	// ErrInvalidRule is returned when a rule has no capability group or name.
	ErrInvalidRule = errors.New("rule needs a capability group and name")
)

// Rule attaches one synthetic capability to every module it lists.
// Modules listed by the same rule are mutually exclusive alternatives.
type Rule struct {
	Group   string
	Name    string
	Modules []Coordinate
	// Variants restricts tagging to the named variants. Empty means all variants.
	Variants []string
}

// ID returns the rule identity, group:name.
func (r Rule) ID() string {
	return r.Group + ":" + r.Name
}

// Declaration returns the capability this rule declares at the given version.
func (r Rule) Declaration(version string) Declaration {
	return Declaration{Group: r.Group, Name: r.Name, Version: version}
}

// AppliesToVariant reports whether the rule tags the named variant.
func (r Rule) AppliesToVariant(name string) bool {
	if len(r.Variants) == 0 {
		return true
	}
	return slices.Contains(r.Variants, name)
}

// Validate checks the rule on its own, without regard to other rules.
func (r Rule) Validate() error {
	if r.Group == "" || r.Name == "" {
		return ErrInvalidRule
	}
	if len(r.Modules) == 0 {
		return ErrEmptyRule
	}
	return nil
}

func (r Rule) clone() Rule {
	r.Modules = slices.Clone(r.Modules)
	r.Variants = slices.Clone(r.Variants)
	return r
}

// Declaration is a capability attached to one artifact version.
type Declaration struct {
	Group   string `json:"group"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ID returns the version-independent capability identity, group:name.
func (d Declaration) ID() string {
	return d.Group + ":" + d.Name
}

func (d Declaration) String() string {
	return d.ID() + ":" + d.Version
}
