package pathfx

// DefaultTolerance is the chordal error, in user units, used when flattening
// curves for measurement.
const DefaultTolerance = 0.25

// maxFlattenDepth bounds De Casteljau recursion. A curve still not flat at
// this depth (2^16 chords) is accepted as is.
const maxFlattenDepth = 16

// vertex is one point of a flattened contour together with the segment it
// came from and the curve parameter it was sampled at.
type vertex struct {
	Point
	Segment int
	T       float64
}

// flattenContour flattens every segment of c. base is the global index of
// the contour's first segment. The first vertex is the contour start; every
// segment then contributes the vertices after its own start point.
func flattenContour(c Contour, base int, tolerance float64) []vertex {
	if len(c.segments) == 0 {
		return nil
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	verts := make([]vertex, 0, len(c.segments)*4+1)
	verts = append(verts, vertex{Point: c.segments[0].Start(), Segment: base})
	for i, s := range c.segments {
		idx := base + i
		flattenSegment(s, tolerance, func(pt Point, t float64) {
			verts = append(verts, vertex{Point: pt, Segment: idx, T: t})
		})
	}
	return verts
}

// flattenSegment calls fn for each flattened vertex of s after its start
// point, in increasing parameter order. The last call is always the end
// point with t == 1.
func flattenSegment(s Segment, tolerance float64, fn func(pt Point, t float64)) {
	switch s := s.(type) {
	case Line:
		fn(s.P1, 1)
	case QuadBez:
		flattenQuadRec(s, 0, 1, tolerance, 0, fn)
	case CubicBez:
		flattenCubicRec(s, 0, 1, tolerance, 0, fn)
	}
}

// flattenQuadRec recursively subdivides a quadratic Bezier curve.
func flattenQuadRec(q QuadBez, t0, t1, tolerance float64, depth int, fn func(Point, float64)) {
	if depth >= maxFlattenDepth || q.Flatness() < tolerance {
		fn(q.P2, t1)
		return
	}

	tm := (t0 + t1) / 2
	left, right := q.Subdivide()
	flattenQuadRec(left, t0, tm, tolerance, depth+1, fn)
	flattenQuadRec(right, tm, t1, tolerance, depth+1, fn)
}

// flattenCubicRec recursively subdivides a cubic Bezier curve.
func flattenCubicRec(c CubicBez, t0, t1, tolerance float64, depth int, fn func(Point, float64)) {
	if depth >= maxFlattenDepth || c.Flatness() < tolerance {
		fn(c.P3, t1)
		return
	}

	tm := (t0 + t1) / 2
	left, right := c.Subdivide()
	flattenCubicRec(left, t0, tm, tolerance, depth+1, fn)
	flattenCubicRec(right, tm, t1, tolerance, depth+1, fn)
}
