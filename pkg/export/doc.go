// Package export writes diagrams as Graphviz node-link graphs.
//
// [ToDOT] groups live nodes into one cluster per layer, in layer order and
// slot order, and emits one edge per connection of a rendered
// [render.Scene]. Dotted connections become dashed edges and connection
// labels become edge labels.
//
//	scene := render.New().Render(ctx, d, frame)
//	dot := export.ToDOT(d, scene, export.Options{})
//	svg, err := export.RenderSVG(ctx, dot)
//
// [RenderSVG] lays the graph out in-process with
// [github.com/goccy/go-graphviz]; no Graphviz installation is needed.
package export
