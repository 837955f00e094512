package ingest

import (
	"regexp"
	"strings"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/diagram"
	"github.com/amplistack/amplistack/pkg/errors"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a node id: lower case, every run of
// other characters collapsed to a dash, no leading or trailing dashes.
// An empty result becomes "node".
func Slugify(s string) string {
	s = nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "node"
	}
	return s
}

// Skipped records a payload entry that was not applied.
type Skipped struct {
	Kind string // "node" or "edge"
	Ref  string
	Err  error
}

// Result summarises a merge.
type Result struct {
	Nodes       []string
	Connections []string
	Notes       int
	Annotations int
	Skipped     []Skipped
}

// Apply merges p into d. Nodes are upserted in payload order; an id
// already used by another layer is skipped with an errors.ErrCodeIDConflict
// entry. Edges become custom connections when both endpoints are known,
// and an edge label becomes the annotation of its connection.
func Apply(d *diagram.State, p *Payload) Result {
	var res Result
	if p == nil {
		return res
	}
	ids := make(map[string]string, len(p.Nodes))

	for _, n := range p.Nodes {
		ref := strings.TrimSpace(n.ID)
		name := strings.TrimSpace(n.DisplayName())
		layer, ok := catalog.ParseLayer(n.Layer)
		if !ok {
			res.skip("node", firstNonEmpty(ref, name), errors.New(errors.ErrCodeInvalidLayer, "unknown layer %q", n.Layer))
			continue
		}
		id := ref
		if id == "" {
			id = Slugify(name)
		} else if errors.ValidateNodeID(id) != nil {
			id = Slugify(id)
		}
		if err := d.Upsert(layer, id, name); err != nil {
			res.skip("node", id, err)
			continue
		}
		if ref != "" {
			ids[ref] = id
		}
		ids[id] = id
		res.Nodes = append(res.Nodes, id)

		if note := strings.TrimSpace(n.Notes); note != "" {
			if err := d.SetNote(id, note); err == nil {
				res.Notes++
			}
		}
	}

	for _, e := range p.Edges {
		src := resolve(ids, e.SourceID)
		dst := resolve(ids, e.TargetID)
		ref := src + "->" + dst
		if src == "" || dst == "" {
			res.skip("edge", ref, errors.New(errors.ErrCodeInvalidPayload, "edge needs a source and a target"))
			continue
		}
		key, err := d.AddCustomConnection(src, dst)
		if err != nil {
			res.skip("edge", ref, err)
			continue
		}
		res.Connections = append(res.Connections, key)
		if label := strings.TrimSpace(e.Label); label != "" {
			if err := d.SetAnnotation(key, label); err == nil {
				res.Annotations++
			}
		}
	}
	return res
}

func (r *Result) skip(kind, ref string, err error) {
	r.Skipped = append(r.Skipped, Skipped{Kind: kind, Ref: ref, Err: err})
}

func resolve(ids map[string]string, ref string) string {
	ref = strings.TrimSpace(ref)
	if id, ok := ids[ref]; ok {
		return id
	}
	return ref
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
