package pathfx

import (
	"fmt"
	"math"
)

// maxStampCount bounds the number of stamps placed on one contour. An
// advance that would exceed it is rejected with ErrInvalidParameter.
const maxStampCount = 1_000_000

// StampStyle selects how a stamped shape follows the path.
type StampStyle uint8

const (
	// StampTranslate only moves the shape to each stop.
	StampTranslate StampStyle = iota
	// StampRotate also turns the shape's local up axis (0, -1) onto the
	// path tangent.
	StampRotate
	// StampMorph rotates like StampRotate and additionally shears the shape
	// towards the inside of the turn, in proportion to the local curvature.
	StampMorph
)

// String returns the lower-case name of the style.
func (s StampStyle) String() string {
	switch s {
	case StampTranslate:
		return "translate"
	case StampRotate:
		return "rotate"
	case StampMorph:
		return "morph"
	}
	return fmt.Sprintf("StampStyle(%d)", uint8(s))
}

// ParseStampStyle returns the style named by s ("translate", "rotate" or
// "morph").
func ParseStampStyle(s string) (StampStyle, error) {
	for _, st := range []StampStyle{StampTranslate, StampRotate, StampMorph} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("pathfx: unknown stamp style %q: %w", s, ErrInvalidParameter)
}

// StampInstance places one copy of a stamp shape. It is a transient
// rendering instruction and owns no geometry: Shape is shared.
type StampInstance struct {
	// Transform maps shape coordinates to path coordinates.
	Transform Matrix
	// Position is the point on the path the stamp sits on.
	Position Point
	// Angle is the rotation in radians (zero for StampTranslate).
	Angle float64
	// Bend is the local shear applied by StampMorph.
	Bend float64
	// Contour and Distance locate the stop: the contour index and the arc
	// length from that contour's start.
	Contour  int
	Distance float64
	// Shape is the stamped path in its own coordinates.
	Shape *Path
}

// Path returns the stamp shape transformed into place.
func (s StampInstance) Path() *Path {
	return s.Shape.Transform(s.Transform)
}

// Stamp repeats Shape along a path every Advance units, starting Phase
// units (modulo Advance) into each contour. Stops fall strictly before the
// contour end, so a 500 unit contour with Advance 50 and Phase 0 gets
// 10 stamps, at 0, 50, ..., 450.
type Stamp struct {
	Shape   *Path
	Advance float64
	Phase   float64
	Style   StampStyle
}

func (Stamp) stamps() bool { return true }

func (s Stamp) validate() error {
	if !(s.Advance > 0) {
		return fmt.Errorf("pathfx: stamp advance %v: %w", s.Advance, ErrInvalidParameter)
	}
	if s.Shape.IsEmpty() {
		return fmt.Errorf("pathfx: stamp shape is empty: %w", ErrInvalidParameter)
	}
	if s.Style > StampMorph {
		return fmt.Errorf("pathfx: %v: %w", s.Style, ErrInvalidParameter)
	}
	return nil
}

func (s Stamp) apply(p *Path, measure measureFunc) (Output, error) {
	if err := s.validate(); err != nil {
		return Output{}, err
	}
	if p.IsEmpty() {
		return Output{stamped: true}, nil
	}
	m, err := measure(p)
	if err != nil {
		return Output{}, err
	}

	start := math.Mod(s.Phase, s.Advance)
	if start < 0 {
		start += s.Advance
	}

	for _, sp := range m.spans {
		if (sp.Length-start)/s.Advance > maxStampCount {
			return Output{}, fmt.Errorf("pathfx: stamp advance %v too small for contour %d of length %v: %w",
				s.Advance, sp.Index, sp.Length, ErrInvalidParameter)
		}
	}

	var out []StampInstance
	for i := range m.spans {
		out = s.stampContour(out, m, &m.spans[i], start)
	}
	return Output{Stamps: out, stamped: true}, nil
}

func (s Stamp) stampContour(out []StampInstance, m *Measure, sp *ContourSpan, start float64) []StampInstance {
	var prev float64
	for k := 0; ; k++ {
		d := start + float64(k)*s.Advance
		if d >= sp.Length {
			break
		}
		pos, tan := m.at(sp, sp.Start+d)
		angle := prev
		if !tan.IsZero() {
			angle = headingOf(tan)
		}

		inst := StampInstance{
			Position: pos,
			Contour:  sp.Index,
			Distance: d,
			Shape:    s.Shape,
		}
		move := Translate(pos.X, pos.Y)
		switch s.Style {
		case StampTranslate:
			inst.Transform = move
		case StampRotate:
			inst.Angle = angle
			inst.Transform = move.Multiply(Rotate(angle))
		case StampMorph:
			var turn float64
			if k > 0 {
				turn = wrapAngle(angle - prev)
			} else if _, next := m.at(sp, sp.Start+math.Min(d+s.Advance, sp.Length)); !next.IsZero() {
				turn = wrapAngle(headingOf(next) - angle)
			}
			inst.Angle = angle
			inst.Bend = turn / 2
			inst.Transform = move.Multiply(Rotate(angle)).Multiply(Shear(inst.Bend, 0))
		}
		out = append(out, inst)
		prev = angle
	}
	return out
}

// wrapAngle maps a into [-Pi, Pi].
func wrapAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}
