package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/diagram"
	"github.com/amplistack/amplistack/pkg/render"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the slot index and the node note to node labels.
	Detailed bool
}

// ToDOT converts a diagram and its rendered scene to Graphviz DOT.
func ToDOT(d *diagram.State, scene render.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", d.Title())
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#64748b\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")

	byLayer := make(map[catalog.Layer][]string)
	slots := make(map[string]int)
	for _, p := range d.LiveNodes() {
		byLayer[p.Layer] = append(byLayer[p.Layer], p.ID)
		slots[p.ID] = p.Slot
	}

	for _, layer := range catalog.Sequence {
		ids := byLayer[layer]
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n  subgraph \"cluster_%s\" {\n", layer)
		fmt.Fprintf(&buf, "    label=%q;\n    style=\"rounded\";\n    color=\"#cbd5e1\";\n", layer.Title())
		for _, id := range ids {
			n, _ := d.Node(id)
			label := fmtLabel(n, slots[id], d.Note(id), opts.Detailed)
			fmt.Fprintf(&buf, "    %q [%s];\n", id, strings.Join(fmtAttrs(n, label), ", "))
		}
		// Keep slot order left to right inside the layer.
		if len(ids) > 1 {
			fmt.Fprintf(&buf, "    { rank=same; %s }\n", quoteAll(ids))
		}
		buf.WriteString("  }\n")
	}

	if len(scene.Connections) > 0 {
		buf.WriteString("\n")
	}
	for _, c := range scene.Connections {
		fmt.Fprintf(&buf, "  %q -> %q", c.Source, c.Target)
		if attrs := edgeAttrs(scene, c); len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n diagram.Node, slot int, note string, detailed bool) string {
	name := n.Name
	if name == "" {
		name = n.ID
	}
	if !detailed {
		return name
	}
	parts := []string{name, fmt.Sprintf("slot: %d", slot)}
	if note != "" {
		parts = append(parts, "note: "+note)
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n diagram.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Custom {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=\"#f1f5f9\"")
	}
	return attrs
}

func edgeAttrs(scene render.Scene, c render.Connection) []string {
	var attrs []string
	if l, ok := scene.Label(c.Key); ok {
		attrs = append(attrs, fmt.Sprintf("label=%q", strings.Join(l.Lines, "\n")))
	}
	if c.Dotted {
		attrs = append(attrs, "style=dashed")
	}
	switch c.Kind {
	case render.KindCustom:
		attrs = append(attrs, "color=\"#2563eb\"")
	case render.KindBypass:
		attrs = append(attrs, "constraint=false")
	}
	return attrs
}

func quoteAll(ids []string) string {
	q := make([]string, len(ids))
	for i, id := range ids {
		q[i] = strconv.Quote(id)
	}
	return strings.Join(q, "; ") + ";"
}

// RenderSVG lays out a DOT graph with Graphviz and returns the SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with a
// plain viewBox so the output scales like the native renderer's.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
