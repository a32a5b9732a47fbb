package pathfx

import "math"

// Segment is one piece of a contour. The set of segment kinds is closed:
// Line, QuadBez and CubicBez are the only implementations, and consumers
// switch over them exhaustively.
type Segment interface {
	// Start returns the first point of the segment.
	Start() Point
	// End returns the last point of the segment.
	End() Point
	// Eval evaluates the segment at parameter t in [0, 1].
	Eval(t float64) Point
	// Subsegment returns the part of the segment between t0 and t1.
	Subsegment(t0, t1 float64) Segment
	// Transform returns the segment with every point mapped through m.
	Transform(m Matrix) Segment
	// Flatness returns the largest perpendicular distance of a control
	// point from the chord. Lines are always flat.
	Flatness() float64

	isSegment()
}

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner (minimum coordinates).
// Max is the bottom-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the centre of the rectangle.
func (r Rect) Center() Point {
	return r.Min.Midpoint(r.Max)
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Extend returns the smallest rectangle containing r and p.
func (r Rect) Extend(p Point) Rect {
	return r.Union(Rect{Min: p, Max: p})
}

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// NewLine creates a new line segment.
func NewLine(p0, p1 Point) Line {
	return Line{P0: p0, P1: p1}
}

func (Line) isSegment() {}

// Start returns the starting point of the line.
func (l Line) Start() Point { return l.P0 }

// End returns the ending point of the line.
func (l Line) End() Point { return l.P1 }

// Eval evaluates the line at parameter t (0 to 1).
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Subsegment returns the part of the line between t0 and t1.
func (l Line) Subsegment(t0, t1 float64) Segment {
	return Line{P0: l.Eval(t0), P1: l.Eval(t1)}
}

// Transform maps both endpoints through m.
func (l Line) Transform(m Matrix) Segment {
	return Line{P0: m.TransformPoint(l.P0), P1: m.TransformPoint(l.P1)}
}

// Flatness is always zero for a line.
func (Line) Flatness() float64 { return 0 }

// Length returns the length of the line segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// Direction returns the unit vector from P0 to P1, or zero for a degenerate line.
func (l Line) Direction() Vec2 {
	return l.P1.Sub(l.P0).Normalize()
}

// -------------------------------------------------------------------
// QuadBez - Quadratic Bezier Curve
// -------------------------------------------------------------------

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// NewQuadBez creates a new quadratic Bezier curve.
func NewQuadBez(p0, p1, p2 Point) QuadBez {
	return QuadBez{P0: p0, P1: p1, P2: p2}
}

func (QuadBez) isSegment() {}

// Start returns the starting point of the curve.
func (q QuadBez) Start() Point { return q.P0 }

// End returns the ending point of the curve.
func (q QuadBez) End() Point { return q.P2 }

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	// (1-t)^2 * P0 + 2(1-t)t * P1 + t^2 * P2
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	q0 := q.P0.Lerp(q.P1, 0.5)
	q1 := q.P1.Lerp(q.P2, 0.5)
	mid := q0.Lerp(q1, 0.5)
	return QuadBez{P0: q.P0, P1: q0, P2: mid}, QuadBez{P0: mid, P1: q1, P2: q.P2}
}

// Subsegment returns the part of the curve between t0 and t1.
func (q QuadBez) Subsegment(t0, t1 float64) Segment {
	return QuadBez{P0: q.Eval(t0), P1: q.blossom(t0, t1), P2: q.Eval(t1)}
}

func (q QuadBez) blossom(u, v float64) Point {
	a := q.P0.Lerp(q.P1, u)
	b := q.P1.Lerp(q.P2, u)
	return a.Lerp(b, v)
}

// Transform maps every control point through m.
func (q QuadBez) Transform(m Matrix) Segment {
	return QuadBez{
		P0: m.TransformPoint(q.P0),
		P1: m.TransformPoint(q.P1),
		P2: m.TransformPoint(q.P2),
	}
}

// Flatness returns the distance of the control point from the chord.
func (q QuadBez) Flatness() float64 {
	return distanceToLine(q.P1, q.P0, q.P2)
}

// -------------------------------------------------------------------
// CubicBez - Cubic Bezier Curve
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// NewCubicBez creates a new cubic Bezier curve.
func NewCubicBez(p0, p1, p2, p3 Point) CubicBez {
	return CubicBez{P0: p0, P1: p1, P2: p2, P3: p3}
}

func (CubicBez) isSegment() {}

// Start returns the starting point of the curve.
func (c CubicBez) Start() Point { return c.P0 }

// End returns the ending point of the curve.
func (c CubicBez) End() Point { return c.P3 }

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	// (1-t)^3 * P0 + 3(1-t)^2*t * P1 + 3(1-t)*t^2 * P2 + t^3 * P3
	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Subsegment returns the part of the curve between t0 and t1.
func (c CubicBez) Subsegment(t0, t1 float64) Segment {
	return CubicBez{
		P0: c.Eval(t0),
		P1: c.blossom(t0, t0, t1),
		P2: c.blossom(t0, t1, t1),
		P3: c.Eval(t1),
	}
}

// blossom evaluates the polar form: de Casteljau with a different
// parameter at each level.
func (c CubicBez) blossom(u, v, w float64) Point {
	a := c.P0.Lerp(c.P1, u)
	b := c.P1.Lerp(c.P2, u)
	d := c.P2.Lerp(c.P3, u)
	a, b = a.Lerp(b, v), b.Lerp(d, v)
	return a.Lerp(b, w)
}

// Transform maps every control point through m.
func (c CubicBez) Transform(m Matrix) Segment {
	return CubicBez{
		P0: m.TransformPoint(c.P0),
		P1: m.TransformPoint(c.P1),
		P2: m.TransformPoint(c.P2),
		P3: m.TransformPoint(c.P3),
	}
}

// Flatness returns the larger distance of the two control points from the chord.
func (c CubicBez) Flatness() float64 {
	return math.Max(distanceToLine(c.P1, c.P0, c.P3), distanceToLine(c.P2, c.P0, c.P3))
}

// segmentBounds returns the bounding box of the control polygon, which
// always contains the curve.
func segmentBounds(s Segment) Rect {
	switch s := s.(type) {
	case Line:
		return NewRect(s.P0, s.P1)
	case QuadBez:
		return NewRect(s.P0, s.P2).Extend(s.P1)
	case CubicBez:
		return NewRect(s.P0, s.P3).Extend(s.P1).Extend(s.P2)
	}
	return Rect{}
}
