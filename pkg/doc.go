// Package pkg provides the core libraries of amplistack, an editor for
// layered customer-data architecture diagrams.
//
// # Overview
//
// A diagram has five layers, from marketing channels down to activation
// tools. Nodes sit in slots of a six-column grid per layer, and connections
// between them come from a rule set, an optional architecture model, and
// custom connections drawn by hand.
//
// # Architecture
//
// The data flow of one edit:
//
//	user action (add node, move, pick model)
//	         ↓
//	    [diagram] state (nodes, slots, connection sets)
//	         ↓
//	    [geometry] grid boxes from [layout] slots
//	         ↓
//	    [render] rules from [rules], paths from [route]
//	         ↓
//	    SVG / JSON scene, DOT via [export]
//
// After every edit the diagram hands a [snapshot] to its persister: a local
// file, a shared [store] (file, Redis or MongoDB), or a URL.
//
// # Packages
//
//   - [catalog]: layers, built-in items, priorities, badges
//   - [geom]: points, rectangles, sizes
//   - [layout]: per-layer slot arrays
//   - [rules]: connection rules, models, connection keys
//   - [route]: orthogonal rounded paths between node boxes
//   - [geometry]: node and layer boxes computed from slots
//   - [render]: connection scene, labels, highlights, SVG and JSON sinks
//   - [diagram]: the editable diagram aggregate
//   - [snapshot]: persisted format and URL codec
//   - [store]: shared snapshot stores and the best-effort persister
//   - [ingest]: AI transcript client and merge
//   - [proxy]: the transcript HTTP service
//   - [export]: Graphviz node-link export
//   - [errors]: coded errors
//   - [observability]: render, store, ingest and HTTP hooks
//   - [buildinfo]: version strings
package pkg
