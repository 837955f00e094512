package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/amplistack/amplistack/pkg/geom"
)

// Connection styling.
const (
	ConnectionColor = "rgba(100, 116, 139, 0.75)"
	StrokeWidth     = 2.5
	DottedDash      = "6 6"
	MarkerID        = "connection-arrow"
)

const highlightFill = "rgba(59, 130, 246, 0.12)"

// Panel is a background box drawn beneath the connections, for layers and
// nodes when the SVG is exported standalone.
type Panel struct {
	ID    string
	Title string
	Box   geom.Rect
	Layer bool
}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	panels []Panel
	title  string
}

// WithPanels draws layer and node boxes under the connection layer.
func WithPanels(panels ...Panel) SVGOption {
	return func(r *svgRenderer) { r.panels = append(r.panels, panels...) }
}

// WithTitle adds a <title> element.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// RenderSVG writes s as a standalone SVG document.
func RenderSVG(s Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(s.Canvas.W), num(s.Canvas.H), num(s.Canvas.W), num(s.Canvas.H))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	renderMarker(&buf)
	r.renderPanels(&buf)
	for _, h := range s.Highlights {
		fmt.Fprintf(&buf, `  <rect class="adjacency-highlight" data-source-id="%s" data-target-id="%s" x="%s" y="%s" width="%s" height="%s" rx="14" fill="%s"/>`+"\n",
			escapeXML(h.Source), escapeXML(h.Target),
			num(h.Rect.Left), num(h.Rect.Top), num(h.Rect.Width()), num(h.Rect.Height()), highlightFill)
	}
	buf.WriteString(`  <g class="connections">` + "\n")
	for _, c := range s.Connections {
		renderConnection(&buf, c)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString(`  <g class="connection-labels">` + "\n")
	for _, l := range s.Labels {
		renderLabel(&buf, l)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderMarker(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <marker id="%s" markerWidth="6.4" markerHeight="6.4" refX="4.8" refY="2.4" orient="auto" markerUnits="strokeWidth">`+"\n", MarkerID)
	fmt.Fprintf(buf, `      <path d="M0,0 L4.8,2.4 L0,4.8 Z" fill="%s"/>`+"\n", ConnectionColor)
	buf.WriteString("    </marker>\n")
	buf.WriteString("  </defs>\n")
}

func (r svgRenderer) renderPanels(buf *bytes.Buffer) {
	if len(r.panels) == 0 {
		return
	}
	buf.WriteString(`  <g class="panels">` + "\n")
	for _, p := range r.panels {
		b := p.Box
		if p.Layer {
			fmt.Fprintf(buf, `    <rect class="layer" data-layer="%s" x="%s" y="%s" width="%s" height="%s" rx="16" fill="#f8fafc" stroke="#e2e8f0"/>`+"\n",
				escapeXML(p.ID), num(b.Left), num(b.Top), num(b.Width()), num(b.Height()))
			fmt.Fprintf(buf, `    <text x="%s" y="%s" font-family="sans-serif" font-size="13" font-weight="600" fill="#475569">%s</text>`+"\n",
				num(b.Left+16), num(b.Top+20), escapeXML(p.Title))
			continue
		}
		fmt.Fprintf(buf, `    <rect class="diagram-node" data-id="%s" x="%s" y="%s" width="%s" height="%s" rx="10" fill="#ffffff" stroke="#cbd5e1"/>`+"\n",
			escapeXML(p.ID), num(b.Left), num(b.Top), num(b.Width()), num(b.Height()))
		fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="12" fill="#0f172a">%s</text>`+"\n",
			num(b.CenterX()), num(b.CenterY()), escapeXML(p.Title))
	}
	buf.WriteString("  </g>\n")
}

func renderConnection(buf *bytes.Buffer, c Connection) {
	dash := ""
	if c.Dotted {
		dash = ` stroke-dasharray="` + DottedDash + `"`
	}
	fmt.Fprintf(buf, `    <path class="connection-path" d="%s" data-connection-key="%s" data-source-id="%s" data-target-id="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linejoin="round" stroke-linecap="round"%s marker-end="url(#%s)"/>`+"\n",
		c.D, escapeXML(c.Key), escapeXML(c.Source), escapeXML(c.Target),
		ConnectionColor, num(StrokeWidth), dash, MarkerID)
}

func renderLabel(buf *bytes.Buffer, l Label) {
	class := "connection-label"
	if l.Annotation {
		class += " annotation"
	}
	fmt.Fprintf(buf, `    <text class="%s" data-connection-key="%s" x="%s" y="%s" text-anchor="middle" dominant-baseline="central">`,
		class, escapeXML(l.Key), num(l.At.X), num(l.At.Y))
	if len(l.Lines) <= 1 {
		buf.WriteString(escapeXML(l.Text))
	} else {
		for i, line := range l.Lines {
			dy := "1.1em"
			if i == 0 {
				dy = "0"
			}
			fmt.Fprintf(buf, `<tspan x="%s" dy="%s">%s</tspan>`, num(l.At.X), dy, escapeXML(line))
		}
	}
	buf.WriteString("</text>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
