package pathfx

import (
	"iter"
	"math"
	"slices"
	"sync/atomic"
)

// Contour is a run of segments whose endpoints are contiguous:
// segment[i].End() == segment[i+1].Start(). A closed contour ends where it
// starts; the closing edge is stored as an explicit Line.
type Contour struct {
	segments []Segment
	closed   bool
}

// Closed reports whether the contour was closed by the builder.
func (c Contour) Closed() bool { return c.closed }

// Len returns the number of segments in the contour.
func (c Contour) Len() int { return len(c.segments) }

// Segment returns the i-th segment.
func (c Contour) Segment(i int) Segment { return c.segments[i] }

// Segments returns a copy of the contour's segments.
func (c Contour) Segments() []Segment { return slices.Clone(c.segments) }

// Start returns the first point of the contour.
func (c Contour) Start() Point {
	if len(c.segments) == 0 {
		return Point{}
	}
	return c.segments[0].Start()
}

// End returns the last point of the contour.
func (c Contour) End() Point {
	if len(c.segments) == 0 {
		return Point{}
	}
	return c.segments[len(c.segments)-1].End()
}

// pathIDs hands out construction tokens. Every built Path gets a fresh one,
// so the token identifies immutable content for the lifetime of the process.
var pathIDs atomic.Uint64

// Path is an immutable sequence of contours. Paths are produced by
// PathBuilder.Build or by path effects and may be shared read-only between
// goroutines.
//
// The zero value and a nil *Path are both valid empty paths.
type Path struct {
	id       uint64
	contours []Contour
	nsegs    int
}

func newPath(contours []Contour) *Path {
	n := 0
	for _, c := range contours {
		n += len(c.segments)
	}
	return &Path{
		id:       pathIDs.Add(1),
		contours: contours,
		nsegs:    n,
	}
}

// ID returns the construction token of the path. Two paths built separately
// never share an ID even when their geometry is identical.
func (p *Path) ID() uint64 {
	if p == nil {
		return 0
	}
	return p.id
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	return p == nil || p.nsegs == 0
}

// NumSegments returns the total number of segments over all contours.
func (p *Path) NumSegments() int {
	if p == nil {
		return 0
	}
	return p.nsegs
}

// NumContours returns the number of contours.
func (p *Path) NumContours() int {
	if p == nil {
		return 0
	}
	return len(p.contours)
}

// Contour returns the i-th contour.
func (p *Path) Contour(i int) Contour {
	return p.contours[i]
}

// Contours returns a copy of the contour list. Contours share their
// segment storage with the path, which is never mutated.
func (p *Path) Contours() []Contour {
	if p == nil {
		return nil
	}
	return slices.Clone(p.contours)
}

// Segments iterates over all segments in order, yielding the global segment
// index used by Measure samples.
func (p *Path) Segments() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		if p == nil {
			return
		}
		i := 0
		for _, c := range p.contours {
			for _, s := range c.segments {
				if !yield(i, s) {
					return
				}
				i++
			}
		}
	}
}

// Transform returns a new path with every segment mapped through m.
func (p *Path) Transform(m Matrix) *Path {
	if p.IsEmpty() {
		return newPath(nil)
	}
	contours := make([]Contour, len(p.contours))
	for i, c := range p.contours {
		segs := make([]Segment, len(c.segments))
		for j, s := range c.segments {
			segs[j] = s.Transform(m)
		}
		contours[i] = Contour{segments: segs, closed: c.closed}
	}
	return newPath(contours)
}

// Append returns a new path holding the contours of p followed by those of
// other. A nil operand contributes nothing.
func (p *Path) Append(other *Path) *Path {
	var contours []Contour
	if p != nil {
		contours = append(contours, p.contours...)
	}
	if other != nil {
		contours = append(contours, other.contours...)
	}
	return newPath(contours)
}

// BoundingBox returns a box containing the path. Curves contribute their
// control polygon, so the box may be slightly larger than the ink.
func (p *Path) BoundingBox() Rect {
	if p.IsEmpty() {
		return Rect{}
	}
	bbox := Rect{
		Min: Point{X: math.MaxFloat64, Y: math.MaxFloat64},
		Max: Point{X: -math.MaxFloat64, Y: -math.MaxFloat64},
	}
	for _, s := range p.Segments() {
		bbox = bbox.Union(segmentBounds(s))
	}
	return bbox
}

// Flatten converts every contour to a polyline with the given tolerance.
// Non-positive tolerance selects DefaultTolerance.
func (p *Path) Flatten(tolerance float64) [][]Point {
	if p.IsEmpty() {
		return nil
	}
	out := make([][]Point, 0, len(p.contours))
	base := 0
	for _, c := range p.contours {
		verts := flattenContour(c, base, tolerance)
		pts := make([]Point, len(verts))
		for i, v := range verts {
			pts[i] = v.Point
		}
		out = append(out, pts)
		base += len(c.segments)
	}
	return out
}
