package render

import (
	"math"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/layout"
	"github.com/amplistack/amplistack/pkg/rules"
)

// Adjacency highlight tuning.
const (
	HighlightPadX = 12.0
	HighlightPadY = 8.0

	maxRowDelta = 0
	maxColDelta = 1
	// Fallbacks for nodes without slot data, in canvas units between centres.
	nearX = 80.0
	nearY = 32.0
)

// highlightTargets are checked against the SDK in this order.
var highlightTargets = []string{catalog.Segment, catalog.Tealium, catalog.CDP}

func (p *pass) highlights() {
	anchor, ok := p.nodes[catalog.AmplitudeSDK]
	if !ok {
		return
	}
	for _, id := range highlightTargets {
		target, ok := p.nodes[id]
		if !ok || !p.pairs[rules.PairKey(anchor.ID, id)] {
			continue
		}
		if !p.adjacent(anchor, target) {
			continue
		}
		a, okA := p.geo.NodeBox(anchor.ID)
		b, okB := p.geo.NodeBox(id)
		if !okA || !okB {
			continue
		}
		rect := a.Union(b).Expand(HighlightPadX, HighlightPadY).ClampTo(p.canvas)
		if rect.Empty() {
			continue
		}
		p.scene.Highlights = append(p.scene.Highlights, Highlight{Source: anchor.ID, Target: id, Rect: rect})
	}
}

func (p *pass) adjacent(a, b layout.Placement) bool {
	if a.Layer == b.Layer {
		return p.rowsClose(a, b) && p.colsClose(a, b)
	}
	ia, ib := a.Layer.Index(), b.Layer.Index()
	if ia < 0 || ib < 0 {
		return false
	}
	return abs(ia-ib) == 1 && p.colsClose(a, b)
}

func (p *pass) colsClose(a, b layout.Placement) bool {
	if a.Slot < 0 || b.Slot < 0 {
		ra, okA := p.geo.NodeBox(a.ID)
		rb, okB := p.geo.NodeBox(b.ID)
		return okA && okB && math.Abs(ra.CenterX()-rb.CenterX()) <= nearX
	}
	return abs(a.Slot%catalog.SlotColumns-b.Slot%catalog.SlotColumns) <= maxColDelta
}

func (p *pass) rowsClose(a, b layout.Placement) bool {
	if a.Slot < 0 || b.Slot < 0 {
		ra, okA := p.geo.NodeBox(a.ID)
		rb, okB := p.geo.NodeBox(b.ID)
		return okA && okB && math.Abs(ra.CenterY()-rb.CenterY()) <= nearY
	}
	return abs(a.Slot/catalog.SlotColumns-b.Slot/catalog.SlotColumns) <= maxRowDelta
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
