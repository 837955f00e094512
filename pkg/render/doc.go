// Package render builds the connection layer of a diagram.
//
// # Overview
//
// [Renderer.Render] turns the current diagram state into a [Scene]: routed
// connector paths, at most one label per connection, and adjacency
// highlights. Every call is a full rebuild from its inputs; the renderer
// keeps no state between calls, so rendering the same state twice gives
// identical scenes.
//
// Connections are collected in a fixed order:
//
//  1. rule connections resolved by [rules.Set.Resolve] (global rules, then
//     the active model's rules, first rule wins per ordered pair)
//  2. custom connections in insertion order
//  3. the Paid Ads → Amplitude Analytics bypass
//
// Dismissed keys are skipped, as are connections whose endpoints have no
// geometry.
//
// # Labels
//
// A connection gets at most one label. An annotation always wins. Without
// one the candidates are, in order: "Batch events" between Amplitude
// Analytics and a warehouse, "MCP" between Amplitude Analytics and the LLM,
// and "Views, Clicks, Spend" on the bypass. "Event stream, cohorts" goes to
// exactly one Amplitude Analytics → activation connection: the one whose
// target sits furthest left, ties keeping the earliest.
//
// # Output
//
// [RenderSVG] writes a scene as a standalone SVG document; [RenderJSON]
// writes it as JSON for other front ends.
//
// [rules.Set.Resolve]: github.com/amplistack/amplistack/pkg/rules.Set.Resolve
package render
