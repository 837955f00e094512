package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/geom"
)

// Placement is a node together with its layer and slot.
type Placement struct {
	ID    string
	Layer catalog.Layer
	Slot  int
}

// Row returns the grid row of the placement.
func (p Placement) Row() int { return p.Slot / catalog.SlotColumns }

// Column returns the grid column of the placement.
func (p Placement) Column() int { return p.Slot % catalog.SlotColumns }

// Model holds the slot arrays of every layer.
//
// Model is not safe for concurrent use.
type Model struct {
	slots map[catalog.Layer][]string
}

// New returns an empty layout model.
func New() *Model {
	return &Model{slots: make(map[catalog.Layer][]string)}
}

// EnsureSlots initialises the slot array of layer if needed and returns a
// copy of it.
func (m *Model) EnsureSlots(layer catalog.Layer) []string {
	if _, ok := m.slots[layer]; !ok {
		m.slots[layer] = []string{}
	}
	return slices.Clone(m.slots[layer])
}

// Slots returns a copy of the slot array of layer, or nil when the layer
// was never initialised.
func (m *Model) Slots(layer catalog.Layer) []string {
	s, ok := m.slots[layer]
	if !ok {
		return nil
	}
	return slices.Clone(s)
}

// SetSlots replaces the slot array of layer. Duplicate ids are dropped,
// keeping the first occurrence.
func (m *Model) SetSlots(layer catalog.Layer, slots []string) {
	seen := make(map[string]bool, len(slots))
	out := make([]string, len(slots))
	for i, id := range slots {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out[i] = id
	}
	m.slots[layer] = out
}

// Layers returns the initialised layers in pipeline order.
func (m *Model) Layers() []catalog.Layer {
	var out []catalog.Layer
	for _, l := range catalog.Sequence {
		if _, ok := m.slots[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Reset drops every slot array.
func (m *Model) Reset() {
	clear(m.slots)
}

// SlotOf returns the slot of id in layer, or -1.
func (m *Model) SlotOf(layer catalog.Layer, id string) int {
	if id == "" {
		return -1
	}
	return slices.Index(m.slots[layer], id)
}

// At returns the occupant of slot i in layer, or "".
func (m *Model) At(layer catalog.Layer, i int) string {
	s := m.slots[layer]
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

// MaxOccupied returns the highest occupied slot index of layer, or -1.
func (m *Model) MaxOccupied(layer catalog.Layer) int {
	s := m.slots[layer]
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != "" {
			return i
		}
	}
	return -1
}

// Assign returns the slot of id, placing it in the first free slot or at
// the end of the array when it has none.
func (m *Model) Assign(layer catalog.Layer, id string) int {
	m.EnsureSlots(layer)
	s := m.slots[layer]
	if i := slices.Index(s, id); i >= 0 {
		return i
	}
	i := slices.Index(s, "")
	if i < 0 {
		m.slots[layer] = append(s, id)
		return len(s)
	}
	s[i] = id
	return i
}

// Relocate moves id to slot target and returns the slot it took. Targets
// are clamped to [0, LastSlot(len)] and the array grows with free slots as
// needed. When id already had a slot the displaced occupant takes that slot;
// otherwise it moves to the first free slot or is appended.
func (m *Model) Relocate(layer catalog.Layer, id string, target int) int {
	m.EnsureSlots(layer)
	s := m.slots[layer]
	target = min(max(0, target), LastSlot(len(s)))
	for len(s) <= target {
		s = append(s, "")
	}

	current := slices.Index(s, id)
	displaced := s[target]
	if current >= 0 {
		s[current] = displaced
	}
	s[target] = id

	if current < 0 && displaced != "" {
		if free := slices.Index(s, ""); free >= 0 {
			s[free] = displaced
		} else {
			s = append(s, displaced)
		}
	}
	m.slots[layer] = s
	return target
}

// LastSlot is the highest slot a move may target in a layer of n slots: the
// end of the row after the last partly used one.
func LastSlot(n int) int {
	rows := (n + catalog.SlotColumns - 1) / catalog.SlotColumns
	return (rows+1)*catalog.SlotColumns - 1
}

// Release frees the slot held by id in layer.
func (m *Model) Release(layer catalog.Layer, id string) {
	if i := m.SlotOf(layer, id); i >= 0 {
		m.slots[layer][i] = ""
	}
}

// OccupiedBetween reports whether any slot strictly between a and b is
// occupied. The order of a and b does not matter.
func (m *Model) OccupiedBetween(layer catalog.Layer, a, b int) bool {
	lo, hi := min(a, b), max(a, b)
	s := m.slots[layer]
	for i := lo + 1; i < hi && i < len(s); i++ {
		if i >= 0 && s[i] != "" {
			return true
		}
	}
	return false
}

// Reorder computes the visual order of layer for the given live node ids.
// Live nodes already in the slot array keep their slot, the others are
// assigned in the order given. The result is sorted by priority (lower
// first) and then by slot.
func (m *Model) Reorder(layer catalog.Layer, live []string, priority func(string) int) []Placement {
	if len(live) == 0 {
		return nil
	}
	if priority == nil {
		priority = catalog.Priority
	}
	m.EnsureSlots(layer)

	remaining := make(map[string]bool, len(live))
	for _, id := range live {
		remaining[id] = true
	}

	placed := make([]Placement, 0, len(live))
	for i, id := range m.slots[layer] {
		if id != "" && remaining[id] {
			placed = append(placed, Placement{ID: id, Layer: layer, Slot: i})
			delete(remaining, id)
		}
	}
	for _, id := range live {
		if remaining[id] {
			placed = append(placed, Placement{ID: id, Layer: layer, Slot: m.Assign(layer, id)})
			delete(remaining, id)
		}
	}

	slices.SortStableFunc(placed, func(a, b Placement) int {
		if c := cmp.Compare(priority(a.ID), priority(b.ID)); c != 0 {
			return c
		}
		return cmp.Compare(a.Slot, b.Slot)
	})
	return placed
}

// ReorderAll runs [Model.Reorder] for every layer with live nodes.
func (m *Model) ReorderAll(live map[catalog.Layer][]string, priority func(string) int) map[catalog.Layer][]Placement {
	out := make(map[catalog.Layer][]Placement, len(live))
	for layer, ids := range live {
		if p := m.Reorder(layer, ids, priority); len(p) > 0 {
			out[layer] = p
		}
	}
	return out
}

// SlotIndexFromPoint maps a pointer position to a slot index of a layer
// whose content box is content. The position is first clamped into the
// content box extended by the drop-zone padding; maxOccupied is the highest
// occupied slot of the layer (or -1) and determines the number of rows.
func SlotIndexFromPoint(content geom.Rect, x, y float64, maxOccupied int) int {
	w := math.Max(content.Width(), 1)
	h := math.Max(content.Height(), 1)

	cx := geom.Clamp(x, content.Left-catalog.DropPaddingX, content.Right+catalog.DropPaddingX)
	cy := geom.Clamp(y, content.Top-catalog.DropPaddingY, content.Bottom+catalog.DropPaddingY)

	relX := geom.Clamp(cx-content.Left, 0, w-1)
	relY := geom.Clamp(cy-content.Top, 0, h-1)

	cols := catalog.SlotColumns
	col := min(cols-1, max(0, int(math.Floor(relX/(w/float64(cols))))))

	rows := 1
	if maxOccupied >= 0 {
		rows = maxOccupied/cols + 1
	}
	rowHeight := math.Max(h/float64(rows), 1)
	row := min(rows-1, max(0, int(math.Floor(relY/rowHeight))))

	return row*cols + col
}
