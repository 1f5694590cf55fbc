package capability

import "slices"

// DefaultVariant names the implicit variant of a component published without variants.
const DefaultVariant = "default"

// Variant is one published form of a component with its own capabilities.
type Variant struct {
	Name         string        `json:"name"`
	Capabilities []Declaration `json:"capabilities,omitempty"`
}

// Component is a resolved artifact version and its variants.
type Component struct {
	Coordinate Coordinate `json:"-"`
	Version    string     `json:"version"`
	Variants   []Variant  `json:"variants"`
}

// Tagger attaches catalog capabilities to resolved artifacts.
// It holds no mutable state and is safe for concurrent use.
type Tagger struct {
	catalog *Catalog
}

// NewTagger returns a Tagger backed by catalog.
func NewTagger(catalog *Catalog) *Tagger {
	return &Tagger{catalog: catalog}
}

// Catalog returns the catalog the tagger reads from.
func (t *Tagger) Catalog() *Catalog {
	return t.catalog
}

// Tag returns the capability declared for coordinate at version, or nothing
// when no rule lists the coordinate. The version is never interpreted.
func (t *Tagger) Tag(coordinate Coordinate, version string) []Declaration {
	rule, ok := t.catalog.Lookup(coordinate)
	if !ok {
		return nil
	}
	return []Declaration{rule.Declaration(version)}
}

// TagString parses coordinate and tags it.
func (t *Tagger) TagString(coordinate, version string) ([]Declaration, error) {
	c, err := ParseCoordinate(coordinate)
	if err != nil {
		return nil, err
	}
	return t.Tag(c, version), nil
}

// Apply returns a copy of component with the matching capability added to
// every variant the rule covers. The input component is left untouched.
func (t *Tagger) Apply(component Component) Component {
	out := Component{
		Coordinate: component.Coordinate,
		Version:    component.Version,
		Variants:   make([]Variant, 0, max(len(component.Variants), 1)),
	}
	for _, v := range component.Variants {
		out.Variants = append(out.Variants, Variant{Name: v.Name, Capabilities: slices.Clone(v.Capabilities)})
	}
	if len(out.Variants) == 0 {
		out.Variants = append(out.Variants, Variant{Name: DefaultVariant})
	}

	rule, ok := t.catalog.Lookup(component.Coordinate)
	if !ok {
		return out
	}

	decl := rule.Declaration(component.Version)
	for i := range out.Variants {
		v := &out.Variants[i]
		if !rule.AppliesToVariant(v.Name) || slices.Contains(v.Capabilities, decl) {
			continue
		}
		v.Capabilities = append(v.Capabilities, decl)
	}
	return out
}

// Declarations returns the distinct capabilities across all variants of component, in variant order.
func (c Component) Declarations() []Declaration {
	var out []Declaration
	for _, v := range c.Variants {
		for _, d := range v.Capabilities {
			if !slices.Contains(out, d) {
				out = append(out, d)
			}
		}
	}
	return out
}
