package rules

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/errors"
)

// Model is a named architecture preset. Activating a model adds its rules
// after the global ones, applies its suppressions, and adjusts the diagram
// by adding and removing catalog items.
type Model struct {
	ID       string        `toml:"id" json:"id"`
	Name     string        `toml:"name" json:"name"`
	Rules    []Rule        `toml:"rules" json:"rules,omitempty"`
	Suppress []Suppression `toml:"suppress" json:"suppress,omitempty"`
	Add      []string      `toml:"add" json:"add,omitempty"`
	Remove   []string      `toml:"remove" json:"remove,omitempty"`
}

// Set is a complete rule configuration: global rules plus models.
type Set struct {
	Global []Rule  `toml:"rules" json:"rules"`
	Models []Model `toml:"models" json:"models"`
}

// Model looks up a model by id.
func (s *Set) Model(id string) (Model, bool) {
	for _, m := range s.Models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// Descriptors returns the global rules followed by the rules of the active
// model, each tagged with its origin. An unknown or empty model id yields
// only the global rules.
func (s *Set) Descriptors(activeModel string) []Descriptor {
	out := make([]Descriptor, 0, len(s.Global))
	for i, r := range s.Global {
		out = append(out, Descriptor{Rule: r, Tag: GlobalTag(i)})
	}
	if m, ok := s.Model(activeModel); ok {
		for i, r := range m.Rules {
			out = append(out, Descriptor{Rule: r, Tag: ModelTag(m.ID, i)})
		}
	}
	return out
}

// Suppressions returns the suppressions of the active model.
func (s *Set) Suppressions(activeModel string) []Suppression {
	if m, ok := s.Model(activeModel); ok {
		return m.Suppress
	}
	return nil
}

// Resolve runs [Resolve] with the descriptors and suppressions of activeModel.
func (s *Set) Resolve(activeModel string, nodes []Node, dismissed func(string) bool) []Match {
	return Resolve(s.Descriptors(activeModel), s.Suppressions(activeModel), nodes, dismissed)
}

// Validate checks layer names and model ids.
func (s *Set) Validate() error {
	for i, r := range s.Global {
		if err := validateRule(r); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRules, err, "rule %d", i)
		}
	}
	seen := make(map[string]bool, len(s.Models))
	for _, m := range s.Models {
		if m.ID == "" {
			return errors.New(errors.ErrCodeInvalidRules, "model without id")
		}
		if seen[m.ID] {
			return errors.New(errors.ErrCodeInvalidRules, "duplicate model id %q", m.ID)
		}
		seen[m.ID] = true
		for i, r := range m.Rules {
			if err := validateRule(r); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidRules, err, "model %s rule %d", m.ID, i)
			}
		}
		for i, sp := range m.Suppress {
			if err := validateLayers(sp.From.Categories, sp.To.Categories); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidRules, err, "model %s suppression %d", m.ID, i)
			}
		}
	}
	return nil
}

func validateRule(r Rule) error {
	if err := validateLayers(r.From.Categories, r.To.Categories); err != nil {
		return err
	}
	for _, e := range r.Exclusions {
		if err := validateLayers(e.SourceCategories, e.TargetCategories); err != nil {
			return err
		}
	}
	return nil
}

func validateLayers(groups ...[]catalog.Layer) error {
	for _, g := range groups {
		for _, l := range g {
			if !l.Valid() {
				return fmt.Errorf("unknown layer %q", l)
			}
		}
	}
	return nil
}

// Parse decodes a TOML rule file.
func Parse(data []byte) (*Set, error) {
	var s Set
	if _, err := toml.Decode(string(data), &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRules, err, "decode rules")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and parses a TOML rule file.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return Parse(data)
}
