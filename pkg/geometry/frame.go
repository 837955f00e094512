package geometry

import (
	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/geom"
	"github.com/amplistack/amplistack/pkg/layout"
)

// Config sets the dimensions of the grid.
type Config struct {
	Width        float64
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
	LayerGap     float64
	HeaderHeight float64
	PaddingX     float64
	PaddingY     float64
	RowHeight    float64
	NodeHeight   float64
	NodeGutter   float64
}

// DefaultConfig returns the dimensions of the editor canvas.
func DefaultConfig() Config {
	return Config{
		Width:        1200,
		MarginLeft:   96,
		MarginRight:  64,
		MarginTop:    48,
		MarginBottom: 72,
		LayerGap:     56,
		HeaderHeight: 32,
		PaddingX:     16,
		PaddingY:     12,
		RowHeight:    64,
		NodeHeight:   44,
		NodeGutter:   8,
	}
}

// Frame holds the computed geometry of one diagram.
type Frame struct {
	cfg     Config
	canvas  geom.Size
	layers  map[catalog.Layer]geom.Rect
	content map[catalog.Layer]geom.Rect
	nodes   map[string]geom.Rect
	slots   map[string]int
}

// Build lays out placements with cfg. Every layer is present in the frame,
// empty layers get a single row.
func Build(placements []layout.Placement, cfg Config) *Frame {
	f := &Frame{
		cfg:     cfg,
		layers:  make(map[catalog.Layer]geom.Rect, len(catalog.Sequence)),
		content: make(map[catalog.Layer]geom.Rect, len(catalog.Sequence)),
		nodes:   make(map[string]geom.Rect, len(placements)),
		slots:   make(map[string]int, len(placements)),
	}

	maxSlot := make(map[catalog.Layer]int, len(catalog.Sequence))
	for _, p := range placements {
		maxSlot[p.Layer] = max(maxSlot[p.Layer], p.Slot)
	}

	y := cfg.MarginTop
	left, right := cfg.MarginLeft, cfg.Width-cfg.MarginRight
	for i, layer := range catalog.Sequence {
		if i > 0 {
			y += cfg.LayerGap
		}
		rows := maxSlot[layer]/catalog.SlotColumns + 1
		contentTop := y + cfg.HeaderHeight
		contentBottom := contentTop + float64(rows)*cfg.RowHeight
		f.content[layer] = geom.Rect{
			Left: left + cfg.PaddingX, Top: contentTop,
			Right: right - cfg.PaddingX, Bottom: contentBottom,
		}
		f.layers[layer] = geom.Rect{Left: left, Top: y, Right: right, Bottom: contentBottom + cfg.PaddingY}
		y = contentBottom + cfg.PaddingY
	}
	f.canvas = geom.Size{W: cfg.Width, H: y + cfg.MarginBottom}

	for _, p := range placements {
		f.slots[p.ID] = p.Slot
		f.nodes[p.ID] = f.cell(p.Layer, p.Slot)
	}
	return f
}

// cell returns the node rectangle of slot in layer.
func (f *Frame) cell(layer catalog.Layer, slot int) geom.Rect {
	c := f.content[layer]
	colW := c.Width() / catalog.SlotColumns
	col := float64(slot % catalog.SlotColumns)
	row := float64(slot / catalog.SlotColumns)
	top := c.Top + row*f.cfg.RowHeight + (f.cfg.RowHeight-f.cfg.NodeHeight)/2
	return geom.Rect{
		Left:   c.Left + col*colW + f.cfg.NodeGutter,
		Top:    top,
		Right:  c.Left + (col+1)*colW - f.cfg.NodeGutter,
		Bottom: top + f.cfg.NodeHeight,
	}
}

// Canvas returns the canvas size.
func (f *Frame) Canvas() geom.Size { return f.canvas }

// NodeBox returns the rectangle of a placed node.
func (f *Frame) NodeBox(id string) (geom.Rect, bool) {
	r, ok := f.nodes[id]
	return r, ok
}

// LayerBox returns the panel rectangle of layer.
func (f *Frame) LayerBox(layer catalog.Layer) (geom.Rect, bool) {
	r, ok := f.layers[layer]
	return r, ok
}

// ContentBox returns the slot area of layer, the box drops are measured
// against.
func (f *Frame) ContentBox(layer catalog.Layer) (geom.Rect, bool) {
	r, ok := f.content[layer]
	return r, ok
}

// Slot returns the slot of a placed node.
func (f *Frame) Slot(id string) (int, bool) {
	s, ok := f.slots[id]
	return s, ok
}

// SlotCenter returns the centre of the cell of slot in layer. Slots beyond
// the current rows extend the grid downwards.
func (f *Frame) SlotCenter(layer catalog.Layer, slot int) geom.Point {
	return f.cell(layer, max(0, slot)).Center()
}

// LayerAt returns the layer whose panel contains p.
func (f *Frame) LayerAt(p geom.Point) (catalog.Layer, bool) {
	for _, layer := range catalog.Sequence {
		if f.layers[layer].Contains(p) {
			return layer, true
		}
	}
	return "", false
}
