package pathfx

import (
	"fmt"
	"math"
)

// minCornerTurn is the smallest turn, in radians, treated as a corner.
// Joints closer to straight, or closer to a full reversal, are left alone.
const minCornerTurn = 1e-6

// CornerRound replaces the sharp joint between two consecutive line
// segments with a circular fillet of the given radius.
//
// The fillet never consumes more than half of either adjacent line, so on
// short segments the effective radius is smaller than requested and
// neighbouring fillets cannot overlap. Joints involving a curve are passed
// through unchanged.
type CornerRound struct {
	Radius float64
}

func (CornerRound) stamps() bool { return false }

func (c CornerRound) apply(p *Path, _ measureFunc) (Output, error) {
	if c.Radius < 0 || math.IsNaN(c.Radius) {
		return Output{}, fmt.Errorf("pathfx: corner radius %v: %w", c.Radius, ErrInvalidParameter)
	}
	if c.Radius == 0 || p.IsEmpty() {
		return Output{Path: orEmpty(p)}, nil
	}

	contours := make([]Contour, len(p.contours))
	for i, ct := range p.contours {
		contours[i] = c.roundContour(ct)
	}
	return Output{Path: newPath(contours)}, nil
}

// fillet describes the rounding of one joint.
type fillet struct {
	trim float64 // distance cut from each adjacent line
	arc  CubicBez
}

// roundContour rounds every eligible joint of ct. Joint i sits between
// segment i and segment i+1; closed contours also have the seam joint
// between the last and the first segment.
func (c CornerRound) roundContour(ct Contour) Contour {
	segs := ct.segments
	n := len(segs)
	joints := n - 1
	if ct.closed {
		joints = n
	}

	fillets := make([]*fillet, n)
	for i := 0; i < joints; i++ {
		fillets[i] = c.fillet(segs[i], segs[(i+1)%n])
	}

	out := make([]Segment, 0, n*2)
	for i, s := range segs {
		before := fillets[(i+n-1)%n]
		if i == 0 && !ct.closed {
			before = nil
		}
		after := fillets[i]

		if l, ok := s.(Line); ok && (before != nil || after != nil) {
			var head, tail float64
			if before != nil {
				head = before.trim
			}
			if after != nil {
				tail = after.trim
			}
			out = append(out, trimLine(l, head, tail))
		} else {
			out = append(out, s)
		}
		if after != nil {
			out = append(out, after.arc)
		}
	}
	return Contour{segments: out, closed: ct.closed}
}

// fillet computes the rounding between a and b, or nil when the joint is
// not eligible.
func (c CornerRound) fillet(a, b Segment) *fillet {
	la, okA := a.(Line)
	lb, okB := b.(Line)
	if !okA || !okB {
		return nil
	}
	lenA, lenB := la.Length(), lb.Length()
	if lenA == 0 || lenB == 0 {
		return nil
	}

	d1, d2 := la.Direction(), lb.Direction()
	turn := math.Abs(d1.Angle(d2))
	if turn < minCornerTurn || turn > math.Pi-minCornerTurn {
		return nil
	}

	half := math.Tan(turn / 2)
	trim := c.Radius * half
	if limit := math.Min(lenA, lenB) / 2; trim > limit {
		Logger().Debug("pathfx: corner radius clamped",
			"requested", c.Radius, "effective", limit/half)
		trim = limit
	}
	radius := trim / half

	corner := la.P1
	start := offsetAlong(corner, d1, -trim)
	end := offsetAlong(corner, d2, trim)
	handle := 4.0 / 3.0 * math.Tan(turn/4) * radius
	return &fillet{
		trim: trim,
		arc: CubicBez{
			P0: start,
			P1: start.Add(d1.Mul(handle)),
			P2: end.Add(d2.Mul(-handle)),
			P3: end,
		},
	}
}

// trimLine shortens l by head at its start and tail at its end. A line
// consumed entirely by two fillets collapses to (nearly) a point and is kept
// so the contour stays contiguous.
func trimLine(l Line, head, tail float64) Line {
	d := l.Direction()
	out := l
	if head > 0 {
		out.P0 = offsetAlong(l.P0, d, head)
	}
	if tail > 0 {
		out.P1 = offsetAlong(l.P1, d, -tail)
	}
	return out
}

func offsetAlong(p Point, dir Vec2, dist float64) Point {
	return p.Add(dir.Mul(dist))
}
