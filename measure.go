package pathfx

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// Sample is one entry of a Measure's arc-length table.
type Sample struct {
	// Length is the cumulative flattened length from the start of the path.
	Length float64
	// Segment is the global index of the segment the sample belongs to.
	Segment int
	// T is the curve parameter of the sample within its segment.
	T float64
	// Point is the flattened vertex.
	Point Point
}

// ContourSpan locates one contour in the arc-length domain of a Measure.
type ContourSpan struct {
	Index  int
	Start  float64
	Length float64
	Closed bool

	first, last       int // sample range, inclusive
	firstSeg, lastSeg int // global segment range, inclusive
}

// End returns the arc length at which the contour ends.
func (s ContourSpan) End() float64 { return s.Start + s.Length }

// sampleRange is the inclusive range of samples covering one segment,
// including the vertex at the segment's start.
type sampleRange struct {
	first, last int
}

// Measure answers arc-length queries about a Path. It flattens the path
// once at construction; afterwards it is read-only and safe for concurrent
// use.
//
// All distances are measured along the flattened polyline, so results carry
// an error bounded by the tolerance the measure was built with.
type Measure struct {
	path      *Path
	tolerance float64
	samples   []Sample
	spans     []ContourSpan
	segments  []sampleRange
	length    float64
}

// NewMeasure flattens p with the given tolerance and builds its arc-length
// table. Non-positive tolerance selects DefaultTolerance. A path with no
// segments yields ErrEmptyPath.
func NewMeasure(p *Path, tolerance float64) (*Measure, error) {
	if p.IsEmpty() {
		return nil, fmt.Errorf("pathfx: measure: %w", ErrEmptyPath)
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	m := &Measure{
		path:      p,
		tolerance: tolerance,
		samples:   make([]Sample, 0, p.nsegs*4+len(p.contours)),
		spans:     make([]ContourSpan, 0, len(p.contours)),
		segments:  make([]sampleRange, p.nsegs),
	}

	var acc float64
	base := 0
	for ci, c := range p.contours {
		verts := flattenContour(c, base, tolerance)
		first := len(m.samples)
		start := acc
		for j, v := range verts {
			if j > 0 {
				acc += v.Point.Distance(verts[j-1].Point)
				k := v.Segment
				if m.segments[k] == (sampleRange{}) {
					m.segments[k].first = first + j - 1
				}
				m.segments[k].last = first + j
			}
			m.samples = append(m.samples, Sample{Length: acc, Segment: v.Segment, T: v.T, Point: v.Point})
		}
		m.spans = append(m.spans, ContourSpan{
			Index:    ci,
			Start:    start,
			Length:   acc - start,
			Closed:   c.closed,
			first:    first,
			last:     len(m.samples) - 1,
			firstSeg: base,
			lastSeg:  base + len(c.segments) - 1,
		})
		base += len(c.segments)
	}
	m.length = acc

	Logger().Debug("pathfx: measure built",
		"path", p.id,
		"segments", p.nsegs,
		"samples", len(m.samples),
		"length", m.length)
	return m, nil
}

// Length returns the total flattened length of the path.
func (m *Measure) Length() float64 {
	if m == nil {
		return 0
	}
	return m.length
}

// Tolerance returns the flattening tolerance the measure was built with.
func (m *Measure) Tolerance() float64 { return m.tolerance }

// Path returns the measured path.
func (m *Measure) Path() *Path { return m.path }

// Samples returns a copy of the arc-length table.
func (m *Measure) Samples() []Sample { return slices.Clone(m.samples) }

// Contours returns the arc-length span of every contour.
func (m *Measure) Contours() []ContourSpan { return slices.Clone(m.spans) }

// span returns the contour holding arc length d, preferring contours of
// non-zero length. d must already be clamped.
func (m *Measure) span(d float64) *ContourSpan {
	for i := range m.spans {
		sp := &m.spans[i]
		if sp.End() >= d && sp.Length > 0 {
			return sp
		}
	}
	return &m.spans[len(m.spans)-1]
}

// edge returns the index j of the flattened edge (j-1, j) within [first,
// last] that brackets arc length d.
func (m *Measure) edge(first, last int, d float64) int {
	if first == last {
		return last
	}
	n := last - first
	j := first + 1 + sort.Search(n, func(i int) bool {
		return m.samples[first+1+i].Length > d
	})
	return min(j, last)
}

// interpolate returns the point at arc length d on edge (j-1, j).
func (m *Measure) interpolate(j int, d float64) Point {
	a, b := m.samples[j-1], m.samples[j]
	span := b.Length - a.Length
	if span <= 0 || d <= a.Length {
		return a.Point
	}
	if d >= b.Length {
		return b.Point
	}
	return a.Point.Lerp(b.Point, (d-a.Length)/span)
}

func (m *Measure) clamp(d float64) float64 {
	return math.Max(0, math.Min(d, m.length))
}

// PositionAndTangentAt returns the point at arc length d and the unit
// direction of the flattened edge containing it. d is clamped to
// [0, Length()].
//
// The tangent is the zero vector when the bracketing edge is degenerate;
// callers should keep their previous orientation in that case.
func (m *Measure) PositionAndTangentAt(d float64) (Point, Vec2) {
	if m == nil || len(m.samples) == 0 {
		return Point{}, Vec2{}
	}
	d = m.clamp(d)
	return m.at(m.span(d), d)
}

// at is PositionAndTangentAt restricted to one contour; d is a global arc
// length inside sp.
func (m *Measure) at(sp *ContourSpan, d float64) (Point, Vec2) {
	if sp.first == sp.last {
		return m.samples[sp.first].Point, Vec2{}
	}
	j := m.edge(sp.first, sp.last, d)
	tan := m.samples[j].Point.Sub(m.samples[j-1].Point).Normalize()
	return m.interpolate(j, d), tan
}

// HeadingAt returns the rotation, in radians, that turns a shape's local
// up axis (0, -1) onto the tangent at d. ok is false when the tangent is
// undefined.
func (m *Measure) HeadingAt(d float64) (angle float64, ok bool) {
	_, tan := m.PositionAndTangentAt(d)
	if tan.IsZero() {
		return 0, false
	}
	return headingOf(tan), true
}

// TransformAt returns the marker transform at d: a rotation by HeadingAt
// followed by a translation to the point on the path. With an undefined
// tangent the rotation is omitted.
func (m *Measure) TransformAt(d float64) Matrix {
	pos, tan := m.PositionAndTangentAt(d)
	t := Translate(pos.X, pos.Y)
	if tan.IsZero() {
		return t
	}
	return t.Multiply(Rotate(headingOf(tan)))
}

func headingOf(tan Vec2) float64 {
	return tan.Atan2() + math.Pi/2
}

// ExtractSegment returns the part of the path between arc lengths start
// and end, clamped to [0, Length()]. When start >= end the result is an
// empty path.
//
// Contours stay separate in the result. Segments lying entirely inside the
// range are copied unchanged; a segment cut by the range is replaced by the
// flattened polyline between the cut points. Cut points are interpolated
// linearly on the flattened edge, not evaluated on the curve, so they lie
// within the measure tolerance of the true curve.
func (m *Measure) ExtractSegment(start, end float64) *Path {
	if m == nil {
		return newPath(nil)
	}
	start, end = m.clamp(start), m.clamp(end)
	if start >= end {
		return newPath(nil)
	}

	var contours []Contour
	for i := range m.spans {
		sp := &m.spans[i]
		lo, hi := math.Max(start, sp.Start), math.Min(end, sp.End())
		if hi <= lo {
			continue
		}
		if c := m.extractContour(sp, lo, hi); c.Len() > 0 {
			contours = append(contours, c)
		}
	}
	return newPath(contours)
}

func (m *Measure) extractContour(sp *ContourSpan, lo, hi float64) Contour {
	if lo <= sp.Start && hi >= sp.End() {
		return m.path.contours[sp.Index]
	}

	src := m.path.contours[sp.Index]
	var segs []Segment
	for k := sp.firstSeg; k <= sp.lastSeg; k++ {
		r := m.segments[k]
		s0, s1 := m.samples[r.first].Length, m.samples[r.last].Length
		if s1 <= lo || s0 >= hi {
			continue
		}
		if lo <= s0 && hi >= s1 {
			segs = append(segs, src.segments[k-sp.firstSeg])
			continue
		}
		segs = m.appendPolyline(segs, r, math.Max(lo, s0), math.Min(hi, s1))
	}
	return Contour{segments: segs}
}

// appendPolyline appends lines following the flattened vertices of one
// segment between arc lengths a and b.
func (m *Measure) appendPolyline(segs []Segment, r sampleRange, a, b float64) []Segment {
	prev := m.interpolate(m.edge(r.first, r.last, a), a)
	emit := func(p Point) {
		if p != prev {
			segs = append(segs, Line{P0: prev, P1: p})
			prev = p
		}
	}
	for j := r.first + 1; j <= r.last; j++ {
		if l := m.samples[j].Length; l > a && l < b {
			emit(m.samples[j].Point)
		}
	}
	emit(m.interpolate(m.edge(r.first, r.last, b), b))
	return segs
}
