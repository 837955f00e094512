package render

import (
	"encoding/json"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title       string
	activeModel string
}

// WithJSONTitle records the diagram title.
func WithJSONTitle(title string) JSONOption { return func(r *jsonRenderer) { r.title = title } }

// WithJSONModel records the active data model id.
func WithJSONModel(id string) JSONOption { return func(r *jsonRenderer) { r.activeModel = id } }

type jsonOutput struct {
	Title       string           `json:"title,omitempty"`
	ActiveModel string           `json:"active_model,omitempty"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	Connections []jsonConnection `json:"connections"`
	Labels      []jsonLabel      `json:"labels"`
	Highlights  []jsonHighlight  `json:"highlights"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonConnection struct {
	Key    string      `json:"key"`
	Source string      `json:"source"`
	Target string      `json:"target"`
	Kind   Kind        `json:"kind"`
	Tag    string      `json:"tag,omitempty"`
	Dotted bool        `json:"dotted,omitempty"`
	Radius float64     `json:"radius"`
	Points []jsonPoint `json:"points"`
	D      string      `json:"d"`
}

type jsonLabel struct {
	Key        string   `json:"key"`
	Lines      []string `json:"lines"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Annotation bool     `json:"annotation,omitempty"`
}

type jsonHighlight struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RenderJSON encodes s for consumers that draw the scene themselves.
func RenderJSON(s Scene, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{
		Title:       r.title,
		ActiveModel: r.activeModel,
		Width:       s.Canvas.W,
		Height:      s.Canvas.H,
		Connections: make([]jsonConnection, 0, len(s.Connections)),
		Labels:      make([]jsonLabel, 0, len(s.Labels)),
		Highlights:  make([]jsonHighlight, 0, len(s.Highlights)),
	}
	for _, c := range s.Connections {
		pts := make([]jsonPoint, len(c.Points))
		for i, p := range c.Points {
			pts[i] = jsonPoint{X: p.X, Y: p.Y}
		}
		out.Connections = append(out.Connections, jsonConnection{
			Key: c.Key, Source: c.Source, Target: c.Target, Kind: c.Kind, Tag: c.Tag,
			Dotted: c.Dotted, Radius: c.Radius, Points: pts, D: c.D,
		})
	}
	for _, l := range s.Labels {
		out.Labels = append(out.Labels, jsonLabel{Key: l.Key, Lines: l.Lines, X: l.At.X, Y: l.At.Y, Annotation: l.Annotation})
	}
	for _, h := range s.Highlights {
		out.Highlights = append(out.Highlights, jsonHighlight{
			Source: h.Source, Target: h.Target,
			X: h.Rect.Left, Y: h.Rect.Top, Width: h.Rect.Width(), Height: h.Rect.Height(),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
