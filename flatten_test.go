package pathfx

import (
	"math"
	"testing"
)

func TestFlattenContour_Lines(t *testing.T) {
	p := BuildPath().MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).Build()
	verts := flattenContour(p.Contour(0), 0, DefaultTolerance)

	want := []vertex{
		{Point: Pt(0, 0), Segment: 0, T: 0},
		{Point: Pt(10, 0), Segment: 0, T: 1},
		{Point: Pt(10, 10), Segment: 1, T: 1},
	}
	if len(verts) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(verts), len(want))
	}
	for i := range want {
		if verts[i] != want[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, verts[i], want[i])
		}
	}
}

func TestFlattenContour_BaseIndex(t *testing.T) {
	p := BuildPath().MoveTo(0, 0).LineTo(10, 0).Build()
	verts := flattenContour(p.Contour(0), 7, 0)
	for _, v := range verts {
		if v.Segment != 7 {
			t.Errorf("vertex tagged with segment %d, want 7", v.Segment)
		}
	}
}

func TestFlattenSegment_Tolerance(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
	}{
		{"quad", NewQuadBez(Pt(0, 0), Pt(50, 100), Pt(100, 0))},
		{"cubic", NewCubicBez(Pt(0, 0), Pt(0, 100), Pt(100, 100), Pt(100, 0))},
		{"s-curve", NewCubicBez(Pt(0, 0), Pt(100, 100), Pt(0, 100), Pt(100, 0))},
	}

	for _, tol := range []float64{1, 0.25, 0.01} {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				prevT := 0.0
				prevPt := tt.seg.Start()
				n := 0
				flattenSegment(tt.seg, tol, func(pt Point, u float64) {
					n++
					if u <= prevT {
						t.Errorf("parameters not increasing: %v after %v", u, prevT)
					}
					// The curve midway between two vertices stays within
					// tolerance of the chord joining them.
					mid := tt.seg.Eval((prevT + u) / 2)
					if d := distanceToLine(mid, prevPt, pt); d > tol {
						t.Errorf("tol %v: chord error %v", tol, d)
					}
					if !pointsEqual(pt, tt.seg.Eval(u), 1e-9) {
						t.Errorf("vertex %v not on curve at t=%v", pt, u)
					}
					prevT, prevPt = u, pt
				})
				if prevT != 1 || !pointsEqual(prevPt, tt.seg.End(), epsilon) {
					t.Errorf("last vertex t=%v pt=%v, want end point", prevT, prevPt)
				}
				if n < 2 {
					t.Errorf("curve flattened to %d vertices", n)
				}
			})
		}
	}
}

func TestFlattenSegment_DepthBound(t *testing.T) {
	q := NewQuadBez(Pt(0, 0), Pt(5e9, 1e10), Pt(1e10, 0))
	n := 0
	flattenSegment(q, 1e-12, func(Point, float64) { n++ })
	if n > 1<<maxFlattenDepth {
		t.Errorf("emitted %d vertices, bound is %d", n, 1<<maxFlattenDepth)
	}
}

func TestPath_Flatten(t *testing.T) {
	p := BuildPath().Circle(0, 0, 50).Rect(100, 0, 10, 10).Build()
	polys := p.Flatten(0.1)
	if len(polys) != 2 {
		t.Fatalf("got %d polylines, want 2", len(polys))
	}
	for _, pt := range polys[0] {
		if r := math.Hypot(pt.X, pt.Y); math.Abs(r-50) > 0.1 {
			t.Errorf("circle vertex %v at radius %v", pt, r)
		}
	}
	if len(polys[1]) != 5 {
		t.Errorf("rect polyline has %d points, want 5", len(polys[1]))
	}
}
