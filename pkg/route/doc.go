// Package route computes connector polylines between diagram nodes and turns
// them into rounded SVG paths.
//
// Routing is purpose-built for the fixed five-layer pipeline rather than a
// general graph layout. [Router.Route] dispatches on the endpoints' layers:
//
//   - activation → marketing edges leave the bottom of the source, run along
//     the bottom and right margins of the canvas and enter the target from
//     above, so they never cross the pipeline;
//   - edges inside one layer row are drawn as a lateral S-curve when the
//     nodes are neighbours, and as an arc over the top when other nodes sit
//     between them;
//   - everything else travels vertically through the gap between the two
//     layers, or horizontally when the nodes overlap vertically.
//
// [PaidAdsBypass] builds the dedicated Paid Ads → Amplitude Analytics route
// that runs down the left margin of the canvas.
//
// Polylines are converted into paths by [Rounded], which replaces every
// interior vertex with a quadratic curve. The resulting [Curve] can be
// measured and sampled for label placement.
//
// All functions are pure: the same endpoints always produce the same points.
package route
