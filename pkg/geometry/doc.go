// Package geometry computes canvas coordinates for a diagram laid out on
// the slot grid.
//
// The five layers are stacked top to bottom in pipeline order. Each layer
// is a panel with a header strip and a content box divided into
// [catalog.SlotColumns] equal columns; rows grow with the highest occupied
// slot. A node occupies the cell of its slot, inset by a small gutter.
//
// [Build] turns live placements into a [Frame], which answers the node,
// layer and canvas queries needed by connection routing and by the drop
// handler that converts a pointer position back into a slot.
package geometry
