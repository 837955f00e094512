package ingest

import (
	"bytes"
	"encoding/json"

	"github.com/amplistack/amplistack/pkg/errors"
)

// Node is a diagram node proposed by the model.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Name  string `json:"name"`
	Layer string `json:"layer"`
	Kind  string `json:"kind"`
	Notes string `json:"notes"`
}

// DisplayName returns Label, falling back to Name.
func (n Node) DisplayName() string {
	if n.Label != "" {
		return n.Label
	}
	return n.Name
}

// Edge is a connection proposed by the model.
type Edge struct {
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
	Label    string `json:"label"`
}

// Payload is the part of the AI answer the merge uses.
type Payload struct {
	Nodes       []Node
	Edges       []Edge
	Risks       []string
	Assumptions []string

	// Malformed counts list entries that could not be decoded.
	Malformed int
}

// Parse decodes an AI answer. The graph is read from the "data" member
// when present and from the top level otherwise. Lists that are missing
// or not arrays are treated as empty; list entries of the wrong shape are
// skipped and counted in Malformed.
func Parse(data []byte) (*Payload, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "AI response is not a JSON object")
	}
	if inner, ok := envelope["data"]; ok && isObject(inner) {
		envelope = nil
		if err := json.Unmarshal(inner, &envelope); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "decode AI data")
		}
	}

	p := &Payload{}
	p.Nodes = decodeEach[Node](arrayOf(envelope["diagramNodes"]), &p.Malformed)
	p.Edges = decodeEach[Edge](arrayOf(envelope["diagramEdges"]), &p.Malformed)
	p.Risks = decodeEach[string](arrayOf(envelope["risks"]), &p.Malformed)
	p.Assumptions = decodeEach[string](arrayOf(envelope["assumptions"]), &p.Malformed)
	return p, nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func arrayOf(raw json.RawMessage) []json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

func decodeEach[T any](items []json.RawMessage, malformed *int) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			*malformed++
			continue
		}
		out = append(out, v)
	}
	return out
}
