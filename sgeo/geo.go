// Package sgeo provides the minimal 2-D geometry primitives the layout
// engine needs: points, axis-aligned rectangles, and segment intersection
// helpers. Coordinates are pixel-space floats with the origin at the
// top-left of the drawing region, matching the rest of the engine.
package sgeo

import "math"

// Point is an absolute or local 2-D coordinate.
type Point struct {
	X, Y float64
}

// NewPoint is a convenience constructor mirroring the rest of the corpus's
// geo packages.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Equal compares two points with exact float equality. The engine relies on
// exact equality (not tolerance-based) at several points — see invariant (1)
// in the data model and the floating-point note in the design notes — so
// this is the single place that decision is centralized.
func (p Point) Equal(o Point) bool {
	return p.X == o.X && p.Y == o.Y
}

// Dist returns the Euclidean distance between p and o.
func (p Point) Dist(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Add returns p translated by o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Rect is an axis-aligned rectangle in top-left/width/height form.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }
func (r Rect) Center() Point    { return Point{X: r.CenterX(), Y: r.CenterY()} }

// Inflate returns r expanded by buf on every side.
func (r Rect) Inflate(buf float64) Rect {
	return Rect{X: r.X - buf, Y: r.Y - buf, W: r.W + 2*buf, H: r.H + 2*buf}
}

// Contains reports whether p lies within r, inclusive of the boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() && r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// Orientation classifies a segment as horizontal or vertical. The router
// only ever produces axis-aligned segments (invariant 2); Diagonal exists so
// callers can detect and reject malformed routes.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
	Diagonal
)

// SegmentOrientation classifies the segment a-b.
func SegmentOrientation(a, b Point) Orientation {
	switch {
	case a.Y == b.Y && a.X == b.X:
		// Degenerate (zero-length) segments are treated as horizontal so
		// callers that skip zero-length bends don't have to special-case
		// Diagonal.
		return Horizontal
	case a.Y == b.Y:
		return Horizontal
	case a.X == b.X:
		return Vertical
	default:
		return Diagonal
	}
}

// IsOrthogonalPolyline reports whether every consecutive pair of points in
// pts forms a horizontal or vertical segment (invariant 2 of the data
// model).
func IsOrthogonalPolyline(pts []Point) bool {
	for i := 1; i < len(pts); i++ {
		if SegmentOrientation(pts[i-1], pts[i]) == Diagonal {
			return false
		}
	}
	return true
}

// SegmentsIntersect reports whether horizontal segment h and vertical
// segment v cross, and returns the crossing point. Matches the cross-
// intersection rule of §4.8: the horizontal's y must lie within the
// vertical's y-range and the vertical's x within the horizontal's x-range.
func SegmentsIntersect(hA, hB, vA, vB Point) (Point, bool) {
	if SegmentOrientation(hA, hB) != Horizontal || SegmentOrientation(vA, vB) != Vertical {
		return Point{}, false
	}
	y := hA.Y
	x := vA.X
	hMinX, hMaxX := minmax(hA.X, hB.X)
	vMinY, vMaxY := minmax(vA.Y, vB.Y)
	if x < hMinX || x > hMaxX {
		return Point{}, false
	}
	if y < vMinY || y > vMaxY {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// OnSegmentInterior reports whether p lies strictly between a and b on the
// segment a-b (excluding the endpoints), using exact coordinate matching as
// called for in §4.8's T-intersection rule.
func OnSegmentInterior(p, a, b Point) bool {
	switch SegmentOrientation(a, b) {
	case Horizontal:
		if p.Y != a.Y {
			return false
		}
		lo, hi := minmax(a.X, b.X)
		return p.X > lo && p.X < hi
	case Vertical:
		if p.X != a.X {
			return false
		}
		lo, hi := minmax(a.Y, b.Y)
		return p.Y > lo && p.Y < hi
	default:
		return false
	}
}

// Length returns the Euclidean length of segment a-b.
func Length(a, b Point) float64 {
	return a.Dist(b)
}

func minmax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}

// Snap rounds v to the nearest multiple of grid. A grid of 0 or less is a
// no-op, matching "grid snapping, when enabled"; callers gate on the enabled
// flag themselves.
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}
