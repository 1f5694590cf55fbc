// Package catalog loads capability rules from YAML, including the built-in table.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/LegacyCodeHQ/ecocap/capability"
	"github.com/LegacyCodeHQ/ecocap/vcs"
	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinYAML []byte

type fileDTO struct {
	Rules []ruleDTO `yaml:"rules"`
}

type ruleDTO struct {
	Group    string   `yaml:"group"`
	Name     string   `yaml:"name"`
	Modules  []string `yaml:"modules"`
	Variants []string `yaml:"variants,omitempty"`
}

// Parse decodes YAML rule rows. Unknown keys are rejected. A stream of
// several documents is read in full, and rule indices run across documents.
func Parse(data []byte) ([]capability.Rule, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rows []ruleDTO
	for doc := 0; ; doc++ {
		var dto fileDTO
		err := dec.Decode(&dto)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode catalog document %d: %w", doc, err)
		}
		rows = append(rows, dto.Rules...)
	}

	rules := make([]capability.Rule, 0, len(rows))
	for i, r := range rows {
		rule := capability.Rule{
			Group:    r.Group,
			Name:     r.Name,
			Variants: r.Variants,
		}
		for _, m := range r.Modules {
			c, err := capability.ParseCoordinate(m)
			if err != nil {
				return nil, &capability.RuleError{Index: i, Rule: rule.ID(), Err: err}
			}
			rule.Modules = append(rule.Modules, c)
		}
		if err := rule.Validate(); err != nil {
			return nil, &capability.RuleError{Index: i, Rule: rule.ID(), Err: err}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Load reads and parses a catalog file.
func Load(path string, reader vcs.ContentReader) ([]capability.Rule, error) {
	data, err := reader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	rules, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// BuiltinRules returns the rules of the embedded catalog.
func BuiltinRules() []capability.Rule {
	rules, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return rules
}

// Builtin builds the embedded catalog.
func Builtin() (*capability.Catalog, error) {
	return capability.NewCatalog(BuiltinRules()...)
}

// Merge builds one catalog from several rule sets. A coordinate claimed in
// more than one set is rejected like any other duplicate. A rejected rule is
// located by its index within its own set.
func Merge(sets ...[]capability.Rule) (*capability.Catalog, error) {
	var all []capability.Rule
	for _, s := range sets {
		all = append(all, s...)
	}

	c, err := capability.NewCatalog(all...)
	var ruleErr *capability.RuleError
	if errors.As(err, &ruleErr) {
		return nil, &capability.RuleError{Index: localIndex(sets, ruleErr.Index), Rule: ruleErr.Rule, Err: ruleErr.Err}
	}
	return c, err
}

func localIndex(sets [][]capability.Rule, global int) int {
	for _, s := range sets {
		if global < len(s) {
			return global
		}
		global -= len(s)
	}
	return global
}

// Open returns the built-in catalog, extended with the rules in path when path is non-empty.
func Open(path string, reader vcs.ContentReader) (*capability.Catalog, error) {
	if path == "" {
		return Builtin()
	}
	extra, err := Load(path, reader)
	if err != nil {
		return nil, err
	}
	c, err := Merge(BuiltinRules(), extra)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
