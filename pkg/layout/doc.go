// Package layout implements the slot-based placement model of diagram layers.
//
// Every layer owns a sparse slot array. A slot holds at most one node id; the
// empty string marks a free slot. Slots are laid out on a grid of
// [catalog.SlotColumns] columns, so slot i sits at row i/6 and column i%6.
// Rows grow on demand as slots are appended.
//
// The model never fails: out-of-range inputs are clamped and unknown layers
// are initialised lazily. The invariant maintained by every operation is
// that a node id occupies at most one slot of its layer.
//
// # Placement
//
// [Model.Assign] gives a node its existing slot, the first free slot, or a
// new slot at the end. [Model.Relocate] moves a node to an explicit slot and
// swaps the displaced occupant into the vacated slot. [SlotIndexFromPoint]
// converts a pointer position inside a layer's content box into a slot index.
//
// [Model.Reorder] produces the visual order of a layer: slotted live nodes
// keep their slots, unslotted live nodes are assigned, and the result is
// sorted by priority and then slot.
package layout
