package route

import (
	"math"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/geom"
)

// Corner radii of the rounded paths.
const (
	DefaultRadius  = 17.0
	SameTierRadius = 12.0
)

const (
	canvasMargin     = 12.0
	canvasBottomGap  = 24.0
	rightOffset      = 32.0
	tierClearance    = 32.0
	topClearance     = 28.0
	gapTolerance     = 8.0
	overTopOffset    = 20.0
	bypassOffset     = 32.0
	bypassMinX       = 24.0
	minNodeClearance = 18.0
)

// Endpoint describes one end of a connection. Box is the node rectangle and
// LayerBox the rectangle of its layer; a zero LayerBox means the layer
// geometry is unknown. Slot is the node's slot index within its layer.
type Endpoint struct {
	ID       string
	Layer    catalog.Layer
	Slot     int
	Box      geom.Rect
	LayerBox geom.Rect
}

func (e Endpoint) hasLayerBox() bool { return !e.LayerBox.Empty() }

func (e Endpoint) row() int { return max(0, e.Slot) / catalog.SlotColumns }

// Occupancy answers whether slots between two indices of a layer are taken.
type Occupancy interface {
	OccupiedBetween(layer catalog.Layer, a, b int) bool
}

// Path is a routed polyline and the corner radius used to round it.
type Path struct {
	Points []geom.Point
	Radius float64
}

// Curve returns the rounded form of the path.
func (p Path) Curve() Curve { return Rounded(p.Points, p.Radius) }

// Router computes connector paths.
type Router struct {
	occ Occupancy
}

// New returns a router that consults occ for same-layer routing. A nil occ
// treats every layer as empty.
func New(occ Occupancy) *Router {
	return &Router{occ: occ}
}

// Route computes the path from src to dst on a canvas of the given size.
// It reports false when the geometry is unusable.
func (r *Router) Route(src, dst Endpoint, canvas geom.Size) (Path, bool) {
	if canvas.Empty() || src.Box.Empty() || dst.Box.Empty() {
		return Path{}, false
	}
	if src.Layer == catalog.Activation && dst.Layer == catalog.Marketing {
		return activationToMarketing(src, dst, canvas), true
	}
	if src.Layer == dst.Layer {
		if p, ok := r.sameTier(src, dst); ok {
			return p, true
		}
	}
	return generic(src, dst), true
}

func activationToMarketing(src, dst Endpoint, canvas geom.Size) Path {
	start := src.Box.BottomCenter()
	targetTop := dst.Box.TopCenter()

	layerRight := src.Box.Right
	if src.hasLayerBox() {
		layerRight = src.LayerBox.Right
	}
	right := math.Min(canvas.W-canvasMargin, math.Max(start.X+rightOffset, layerRight+rightOffset))

	top := 32.0
	if dst.hasLayerBox() {
		top = math.Max(canvasMargin, dst.LayerBox.Top-topClearance)
	}

	bottomLimit := canvas.H - canvasBottomGap
	clearanceY := math.Min(bottomLimit, start.Y+math.Max(minNodeClearance, src.Box.Height()*0.3))

	var exitY float64
	if src.hasLayerBox() {
		exitY = math.Min(bottomLimit, src.LayerBox.Bottom+tierClearance)
	} else {
		exitY = math.Min(bottomLimit, clearanceY+tierClearance)
	}
	exitY = math.Max(exitY, clearanceY+8)
	travelY := math.Min(bottomLimit, exitY)

	pts := []geom.Point{start}
	if math.Abs(clearanceY-start.Y) > 0.5 {
		pts = append(pts, geom.Pt(start.X, clearanceY))
	}
	if math.Abs(travelY-clearanceY) > 0.5 {
		pts = append(pts, geom.Pt(start.X, travelY))
	}
	pts = append(pts,
		geom.Pt(right, travelY),
		geom.Pt(right, top),
		geom.Pt(targetTop.X, top),
		targetTop,
	)

	for i, p := range pts {
		pts[i] = geom.Pt(
			geom.Clamp(p.X, canvasMargin, canvas.W-canvasMargin),
			geom.Clamp(p.Y, canvasMargin, canvas.H-canvasMargin),
		)
	}
	return Path{Points: pts, Radius: DefaultRadius}
}

func (r *Router) sameTier(src, dst Endpoint) (Path, bool) {
	if src.row() != dst.row() {
		return Path{}, false
	}
	s, d := max(0, src.Slot), max(0, dst.Slot)

	between := r.occ != nil && r.occ.OccupiedBetween(src.Layer, s, d)
	if !between {
		var start, end geom.Point
		if s < d {
			start, end = src.Box.RightMiddle(), dst.Box.LeftMiddle()
		} else {
			start, end = src.Box.LeftMiddle(), dst.Box.RightMiddle()
		}
		return Path{Points: elbowX(start, end), Radius: SameTierRadius}, true
	}

	start, end := src.Box.TopCenter(), dst.Box.TopCenter()
	y := math.Max(overTopOffset, start.Y-overTopOffset)
	return Path{
		Points: []geom.Point{start, geom.Pt(start.X, y), geom.Pt(end.X, y), end},
		Radius: SameTierRadius,
	}, true
}

func generic(src, dst Endpoint) Path {
	switch {
	case dst.Box.Top-src.Box.Bottom > gapTolerance:
		start, end := src.Box.BottomCenter(), dst.Box.TopCenter()
		midY, ok := gapCenter(src, dst)
		if !ok {
			midY = (start.Y + end.Y) / 2
		}
		return Path{Points: elbowY(start, end, midY), Radius: DefaultRadius}

	case src.Box.Top-dst.Box.Bottom > gapTolerance:
		start, end := src.Box.TopCenter(), dst.Box.BottomCenter()
		midY, ok := gapCenter(dst, src)
		if !ok {
			midY = (start.Y + end.Y) / 2
		}
		return Path{Points: elbowY(start, end, midY), Radius: DefaultRadius}

	default:
		return Path{Points: elbowX(src.Box.RightMiddle(), dst.Box.LeftMiddle()), Radius: DefaultRadius}
	}
}

// gapCenter returns the y centre of the gap between the layer of upper and
// the layer of lower. It fails when either layer box is missing or the
// layers overlap.
func gapCenter(upper, lower Endpoint) (float64, bool) {
	if !upper.hasLayerBox() || !lower.hasLayerBox() {
		return 0, false
	}
	if upper.LayerBox.Bottom > lower.LayerBox.Top {
		return 0, false
	}
	return (upper.LayerBox.Bottom + lower.LayerBox.Top) / 2, true
}

func elbowY(start, end geom.Point, midY float64) []geom.Point {
	return []geom.Point{start, geom.Pt(start.X, midY), geom.Pt(end.X, midY), end}
}

func elbowX(start, end geom.Point) []geom.Point {
	midX := (start.X + end.X) / 2
	return []geom.Point{start, geom.Pt(midX, start.Y), geom.Pt(midX, end.Y), end}
}

// PaidAdsBypass routes paid → amp along the left margin. Both endpoints
// must carry their layer boxes (marketing and analysis).
func PaidAdsBypass(paid, amp Endpoint) (Path, bool) {
	if paid.Box.Empty() || amp.Box.Empty() || !paid.hasLayerBox() || !amp.hasLayerBox() {
		return Path{}, false
	}
	start := paid.Box.LeftMiddle()
	end := amp.Box.LeftMiddle()
	travelX := math.Max(bypassMinX, paid.LayerBox.Left-bypassOffset)
	return Path{
		Points: []geom.Point{start, geom.Pt(travelX, start.Y), geom.Pt(travelX, end.Y), end},
		Radius: DefaultRadius,
	}, true
}
