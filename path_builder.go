// path_builder.go

package pathfx

import "math"

// kappa is the control point distance for a quarter circle drawn with a
// cubic Bezier: 4/3 * (sqrt(2) - 1).
const kappa = 0.5522847498307936

// PathBuilder accumulates segments and yields one immutable Path.
// All drawing methods return the builder for chaining.
//
// A drawing command issued before any MoveTo starts at the origin.
type PathBuilder struct {
	contours []Contour
	segments []Segment
	start    Point
	current  Point
}

// BuildPath starts a new path builder.
func BuildPath() *PathBuilder {
	return &PathBuilder{}
}

// flush ends the contour under construction. A contour without segments
// (a lone MoveTo) is discarded.
func (b *PathBuilder) flush(closed bool) {
	if len(b.segments) == 0 {
		return
	}
	b.contours = append(b.contours, Contour{segments: b.segments, closed: closed})
	b.segments = nil
}

// MoveTo starts a new contour at (x, y).
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.flush(false)
	b.start = Pt(x, y)
	b.current = b.start
	return b
}

// LineTo draws a line to a position.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	return b.Segment(Line{P0: b.current, P1: Pt(x, y)})
}

// QuadTo draws a quadratic Bezier curve.
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	return b.Segment(QuadBez{P0: b.current, P1: Pt(cx, cy), P2: Pt(x, y)})
}

// CubicTo draws a cubic Bezier curve.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	return b.Segment(CubicBez{P0: b.current, P1: Pt(c1x, c1y), P2: Pt(c2x, c2y), P3: Pt(x, y)})
}

// Segment appends s. If s does not start at the current point a new
// contour is started at s.Start().
func (b *PathBuilder) Segment(s Segment) *PathBuilder {
	if len(b.segments) > 0 && s.Start() != b.current {
		b.flush(false)
	}
	if len(b.segments) == 0 {
		b.start = s.Start()
	}
	b.segments = append(b.segments, s)
	b.current = s.End()
	return b
}

// Close closes the current contour, adding a line back to its start when
// the pen is elsewhere.
func (b *PathBuilder) Close() *PathBuilder {
	if len(b.segments) == 0 {
		return b
	}
	if b.current != b.start {
		b.segments = append(b.segments, Line{P0: b.current, P1: b.start})
	}
	b.flush(true)
	b.current = b.start
	return b
}

// Rect adds a rectangle to the path.
func (b *PathBuilder) Rect(x, y, w, h float64) *PathBuilder {
	return b.MoveTo(x, y).
		LineTo(x+w, y).
		LineTo(x+w, y+h).
		LineTo(x, y+h).
		Close()
}

// RoundRect adds a rounded rectangle to the path.
func (b *PathBuilder) RoundRect(x, y, w, h, r float64) *PathBuilder {
	r = min(r, min(w, h)/2)
	k := kappa * r

	b.MoveTo(x+r, y)
	b.LineTo(x+w-r, y)
	b.CubicTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	b.LineTo(x+w, y+h-r)
	b.CubicTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	b.LineTo(x+r, y+h)
	b.CubicTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	b.LineTo(x, y+r)
	b.CubicTo(x, y+r-k, x+r-k, y, x+r, y)
	return b.Close()
}

// Circle adds a circle to the path.
func (b *PathBuilder) Circle(cx, cy, r float64) *PathBuilder {
	return b.Ellipse(cx, cy, r, r)
}

// Ellipse adds an ellipse to the path.
func (b *PathBuilder) Ellipse(cx, cy, rx, ry float64) *PathBuilder {
	kx := kappa * rx
	ky := kappa * ry

	b.MoveTo(cx+rx, cy)
	b.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	b.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	b.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	b.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	return b.Close()
}

// Oval adds the ellipse inscribed in r.
func (b *PathBuilder) Oval(r Rect) *PathBuilder {
	c := r.Center()
	return b.Ellipse(c.X, c.Y, r.Width()/2, r.Height()/2)
}

// Polygon adds a regular polygon to the path.
func (b *PathBuilder) Polygon(cx, cy, radius float64, sides int) *PathBuilder {
	if sides < 3 {
		return b
	}

	angleStep := 2 * math.Pi / float64(sides)
	startAngle := -math.Pi / 2 // Start at top

	for i := 0; i < sides; i++ {
		angle := startAngle + float64(i)*angleStep
		x := cx + radius*math.Cos(angle)
		y := cy + radius*math.Sin(angle)
		if i == 0 {
			b.MoveTo(x, y)
		} else {
			b.LineTo(x, y)
		}
	}
	return b.Close()
}

// Star adds a star shape to the path.
func (b *PathBuilder) Star(cx, cy, outerRadius, innerRadius float64, points int) *PathBuilder {
	if points < 3 {
		return b
	}

	angleStep := math.Pi / float64(points)
	startAngle := -math.Pi / 2

	for i := 0; i < points*2; i++ {
		angle := startAngle + float64(i)*angleStep
		r := outerRadius
		if i%2 == 1 {
			r = innerRadius
		}
		x := cx + r*math.Cos(angle)
		y := cy + r*math.Sin(angle)
		if i == 0 {
			b.MoveTo(x, y)
		} else {
			b.LineTo(x, y)
		}
	}
	return b.Close()
}

// Arc adds a circular arc around (cx, cy) from angle1 to angle2 (radians).
// The arc is joined to the current contour with a straight line, or starts
// a new contour if there is none.
func (b *PathBuilder) Arc(cx, cy, r, angle1, angle2 float64) *PathBuilder {
	const twoPi = 2 * math.Pi
	for angle2 < angle1 {
		angle2 += twoPi
	}

	start := Pt(cx+r*math.Cos(angle1), cy+r*math.Sin(angle1))
	switch {
	case len(b.segments) == 0:
		b.MoveTo(start.X, start.Y)
	case b.current != start:
		b.LineTo(start.X, start.Y)
	}
	if angle2 == angle1 {
		return b
	}

	// At most 90 degrees per cubic.
	const maxAngle = math.Pi / 2
	n := int(math.Ceil((angle2 - angle1) / maxAngle))
	step := (angle2 - angle1) / float64(n)
	for i := 0; i < n; i++ {
		a1 := angle1 + float64(i)*step
		b.arcSegment(cx, cy, r, a1, a1+step)
	}
	return b
}

// arcSegment adds a single arc segment of at most 90 degrees.
func (b *PathBuilder) arcSegment(cx, cy, r, a1, a2 float64) {
	k := 4.0 / 3.0 * math.Tan((a2-a1)/4)

	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)

	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2

	b.CubicTo(
		x1-k*r*sin1, y1+k*r*cos1,
		x2+k*r*sin2, y2-k*r*cos2,
		x2, y2,
	)
}

// Build returns the constructed path and resets the builder.
func (b *PathBuilder) Build() *Path {
	b.flush(false)
	p := newPath(b.contours)
	*b = PathBuilder{}
	return p
}
