package rules

import (
	"slices"

	"github.com/amplistack/amplistack/pkg/catalog"
)

// Node is the view of a diagram node the engine needs.
type Node struct {
	ID    string
	Layer catalog.Layer
}

// Selector matches nodes by layer and/or id. Both filters must pass; an
// empty filter passes everything, so the zero Selector matches every node.
type Selector struct {
	Categories []catalog.Layer `toml:"categories" json:"categories,omitempty"`
	IDs        []string        `toml:"ids" json:"ids,omitempty"`
}

// Matches reports whether n satisfies the selector.
func (s Selector) Matches(n Node) bool {
	if len(s.Categories) > 0 && !slices.Contains(s.Categories, n.Layer) {
		return false
	}
	if len(s.IDs) > 0 && !slices.Contains(s.IDs, n.ID) {
		return false
	}
	return true
}

// Exclusion vetoes a pair when all four conditions hold. An empty list is
// treated as satisfied.
type Exclusion struct {
	SourceIDs        []string        `toml:"source_ids" json:"sourceIds,omitempty"`
	SourceCategories []catalog.Layer `toml:"source_categories" json:"sourceCategories,omitempty"`
	TargetIDs        []string        `toml:"target_ids" json:"targetIds,omitempty"`
	TargetCategories []catalog.Layer `toml:"target_categories" json:"targetCategories,omitempty"`
}

// Excludes reports whether the clause vetoes src → dst.
func (e Exclusion) Excludes(src, dst Node) bool {
	return within(e.SourceIDs, src.ID) &&
		within(e.SourceCategories, src.Layer) &&
		within(e.TargetIDs, dst.ID) &&
		within(e.TargetCategories, dst.Layer)
}

func within[T comparable](list []T, v T) bool {
	return len(list) == 0 || slices.Contains(list, v)
}

// Rule connects every From node to every To node.
type Rule struct {
	From       Selector    `toml:"from" json:"from"`
	To         Selector    `toml:"to" json:"to"`
	Exclusions []Exclusion `toml:"exclusions" json:"exclusions,omitempty"`
}

// excluded reports whether any exclusion vetoes src → dst.
func (r Rule) excluded(src, dst Node) bool {
	for _, e := range r.Exclusions {
		if e.Excludes(src, dst) {
			return true
		}
	}
	return false
}

// Suppression vetoes every pair whose endpoints match From and To.
type Suppression struct {
	From Selector `toml:"from" json:"from"`
	To   Selector `toml:"to" json:"to"`
}

// Suppresses reports whether the suppression vetoes src → dst.
func (s Suppression) Suppresses(src, dst Node) bool {
	return s.From.Matches(src) && s.To.Matches(dst)
}

// Descriptor is a rule together with its origin tag.
type Descriptor struct {
	Rule Rule
	Tag  string
}

// Match is a resolved rule connection.
type Match struct {
	Source string
	Target string
	Tag    string
	Key    string
}

// Resolve evaluates descs in order against nodes and returns the surviving
// connections. nodes must be given in live order (layer sequence, then
// visual order); the output order follows descriptor order and, within a
// descriptor, the From × To cross product in node order. A nil dismissed
// func dismisses nothing.
func Resolve(descs []Descriptor, suppressors []Suppression, nodes []Node, dismissed func(key string) bool) []Match {
	claimed := make(map[string]string)
	var out []Match

	for _, d := range descs {
		sources := filter(nodes, d.Rule.From)
		targets := filter(nodes, d.Rule.To)
		for _, src := range sources {
			for _, dst := range targets {
				if src.ID == dst.ID {
					continue
				}
				if d.Rule.excluded(src, dst) || suppressed(suppressors, src, dst) {
					continue
				}
				pair := PairKey(src.ID, dst.ID)
				if _, taken := claimed[pair]; taken {
					continue
				}
				claimed[pair] = d.Tag

				key := RuleKey(src.ID, dst.ID, d.Tag)
				if dismissed != nil && dismissed(key) {
					continue
				}
				out = append(out, Match{Source: src.ID, Target: dst.ID, Tag: d.Tag, Key: key})
			}
		}
	}
	return out
}

func filter(nodes []Node, sel Selector) []Node {
	var out []Node
	for _, n := range nodes {
		if sel.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}

func suppressed(suppressors []Suppression, src, dst Node) bool {
	for _, s := range suppressors {
		if s.Suppresses(src, dst) {
			return true
		}
	}
	return false
}
