package route

import (
	"math"
	"strconv"
	"strings"

	"github.com/amplistack/amplistack/pkg/geom"
)

// quadSteps is the number of chords used to measure a quadratic segment.
const quadSteps = 16

// Segment is one drawing command of a [Curve]. A segment with Quad set is a
// quadratic Bézier through Ctrl; otherwise it is a straight line.
type Segment struct {
	Quad bool
	Ctrl geom.Point
	To   geom.Point
}

// Curve is a path made of line and quadratic segments.
type Curve struct {
	Start    geom.Point
	Segments []Segment
}

// Rounded converts a polyline into a curve whose interior vertices are
// replaced by quadratic corners. The corner radius at each vertex is the
// smaller of radius and half the length of either adjacent leg. Fewer than
// two points yield an empty curve.
func Rounded(points []geom.Point, radius float64) Curve {
	if len(points) < 2 {
		return Curve{}
	}
	c := Curve{Start: points[0]}
	for i := 1; i < len(points); i++ {
		cur := points[i]
		if i == len(points)-1 {
			c.Segments = append(c.Segments, Segment{To: cur})
			break
		}
		prev, next := points[i-1], points[i+1]
		r := math.Min(radius, math.Min(prev.Dist(cur)/2, next.Dist(cur)/2))
		before := towards(cur, prev, r)
		after := towards(cur, next, r)
		c.Segments = append(c.Segments,
			Segment{To: before},
			Segment{Quad: true, Ctrl: cur, To: after},
		)
	}
	return c
}

func towards(from, to geom.Point, dist float64) geom.Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		l = 1
	}
	return geom.Pt(from.X+dx/l*dist, from.Y+dy/l*dist)
}

// Empty reports whether the curve has no segments.
func (c Curve) Empty() bool { return len(c.Segments) == 0 }

// D returns the SVG path data of the curve, or "" when it is empty.
func (c Curve) D() string {
	if c.Empty() {
		return ""
	}
	var b strings.Builder
	b.WriteString("M " + num(c.Start.X) + " " + num(c.Start.Y))
	for _, s := range c.Segments {
		if s.Quad {
			b.WriteString(" Q " + num(s.Ctrl.X) + " " + num(s.Ctrl.Y) + " " + num(s.To.X) + " " + num(s.To.Y))
			continue
		}
		b.WriteString(" L " + num(s.To.X) + " " + num(s.To.Y))
	}
	return b.String()
}

// Length returns the approximate arc length of the curve.
func (c Curve) Length() float64 {
	var total float64
	from := c.Start
	for _, s := range c.Segments {
		total += segmentLength(from, s)
		from = s.To
	}
	return total
}

// PointAt returns the point at arc length l from the start. Values outside
// [0, Length] clamp to the ends.
func (c Curve) PointAt(l float64) geom.Point {
	if c.Empty() || l <= 0 {
		return c.Start
	}
	from := c.Start
	for _, s := range c.Segments {
		sl := segmentLength(from, s)
		if l <= sl && sl > 0 {
			return pointOnSegment(from, s, l/sl)
		}
		l -= sl
		from = s.To
	}
	return from
}

// Midpoint returns the point halfway along the curve.
func (c Curve) Midpoint() geom.Point { return c.PointAt(c.Length() / 2) }

func segmentLength(from geom.Point, s Segment) float64 {
	if !s.Quad {
		return from.Dist(s.To)
	}
	var l float64
	prev := from
	for i := 1; i <= quadSteps; i++ {
		p := quadAt(from, s.Ctrl, s.To, float64(i)/quadSteps)
		l += prev.Dist(p)
		prev = p
	}
	return l
}

// pointOnSegment approximates the point at fraction t of the arc length.
func pointOnSegment(from geom.Point, s Segment, t float64) geom.Point {
	if !s.Quad {
		return from.Lerp(s.To, t)
	}
	target := segmentLength(from, s) * t
	prev := from
	var acc float64
	for i := 1; i <= quadSteps; i++ {
		p := quadAt(from, s.Ctrl, s.To, float64(i)/quadSteps)
		d := prev.Dist(p)
		if acc+d >= target && d > 0 {
			return prev.Lerp(p, (target-acc)/d)
		}
		acc += d
		prev = p
	}
	return s.To
}

func quadAt(p0, p1, p2 geom.Point, t float64) geom.Point {
	u := 1 - t
	return geom.Pt(
		u*u*p0.X+2*u*t*p1.X+t*t*p2.X,
		u*u*p0.Y+2*u*t*p1.Y+t*t*p2.Y,
	)
}

func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 { // drop the sign of -0
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
