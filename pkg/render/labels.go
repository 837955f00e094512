package render

import (
	"slices"
	"strings"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/geom"
)

// Built-in label texts.
const (
	LabelBatchEvents = "Batch events"
	LabelMCP         = "MCP"
	LabelEventStream = "Event stream, cohorts"
	LabelPaidAds     = "Views,\nClicks,\nSpend"
)

const (
	// labelLift raises a label above the curve midpoint.
	labelLift = 8.0
	// labelLineShift centres multi-line labels: half of it per extra line.
	labelLineShift = 6.0
)

func (p *pass) labels() {
	var (
		stream    *Connection
		streamAt  float64
		nodeLayer = func(id string) catalog.Layer { return p.nodes[id].Layer }
	)
	for i := range p.scene.Connections {
		c := &p.scene.Connections[i]
		if text := p.src.Annotation(c.Key, c.Source, c.Target); text != "" {
			p.label(c, text, true)
			continue
		}
		switch {
		case c.Kind == KindBypass:
			p.label(c, LabelPaidAds, false)
		case isBatchPair(c.Source, c.Target):
			p.label(c, LabelBatchEvents, false)
		case isMCPPair(c.Source, c.Target):
			p.label(c, LabelMCP, false)
		case c.Source == catalog.AmplitudeAnalytics && nodeLayer(c.Target) == catalog.Activation:
			box, ok := p.geo.NodeBox(c.Target)
			if !ok {
				continue
			}
			if stream == nil || box.Left < streamAt {
				stream, streamAt = c, box.Left
			}
		}
	}
	if stream != nil {
		p.label(stream, LabelEventStream, false)
	}
}

func (p *pass) label(c *Connection, text string, annotation bool) {
	if c.curve.Length() <= 0 {
		return
	}
	lines := strings.Split(text, "\n")
	mid := c.curve.Midpoint()
	y := mid.Y - labelLift - float64(len(lines)-1)*labelLineShift/2
	p.scene.Labels = append(p.scene.Labels, Label{
		Key:        c.Key,
		Text:       text,
		Lines:      lines,
		At:         geom.Pt(mid.X, y),
		Annotation: annotation,
	})
}

func isBatchPair(a, b string) bool {
	if a == catalog.AmplitudeAnalytics {
		return slices.Contains(catalog.Warehouses, b)
	}
	if b == catalog.AmplitudeAnalytics {
		return slices.Contains(catalog.Warehouses, a)
	}
	return false
}

func isMCPPair(a, b string) bool {
	return (a == catalog.LLM && b == catalog.AmplitudeAnalytics) ||
		(a == catalog.AmplitudeAnalytics && b == catalog.LLM)
}
