// Package geom provides the small set of 2D primitives used by layout,
// routing and rendering. Coordinates are canvas-relative with y growing
// downwards, matching SVG user space.
package geom

import "math"

// Point is a position on the canvas.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// Lerp returns the point at fraction t along the segment p→q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Size is a canvas extent.
type Size struct {
	W, H float64
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Rect is an axis-aligned rectangle.
type Rect struct {
	Left, Top     float64
	Right, Bottom float64
}

// RectXYWH builds a Rect from its origin and size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the horizontal centre.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical centre.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Center returns the centre point.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// TopCenter returns the middle of the top edge.
func (r Rect) TopCenter() Point { return Point{X: r.CenterX(), Y: r.Top} }

// BottomCenter returns the middle of the bottom edge.
func (r Rect) BottomCenter() Point { return Point{X: r.CenterX(), Y: r.Bottom} }

// LeftMiddle returns the middle of the left edge.
func (r Rect) LeftMiddle() Point { return Point{X: r.Left, Y: r.CenterY()} }

// RightMiddle returns the middle of the right edge.
func (r Rect) RightMiddle() Point { return Point{X: r.Right, Y: r.CenterY()} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Expand grows the rectangle by dx on both sides horizontally and dy vertically.
func (r Rect) Expand(dx, dy float64) Rect {
	return Rect{Left: r.Left - dx, Top: r.Top - dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// ClampTo intersects r with the canvas [0,s.W]×[0,s.H].
func (r Rect) ClampTo(s Size) Rect {
	return Rect{
		Left:   Clamp(r.Left, 0, s.W),
		Top:    Clamp(r.Top, 0, s.H),
		Right:  Clamp(r.Right, 0, s.W),
		Bottom: Clamp(r.Bottom, 0, s.H),
	}
}

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// Clamp limits v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
