package pathfx

import (
	"fmt"
	"math"
	"slices"
)

// maxDashCount bounds the number of dashes generated for one contour. A
// pattern that would exceed it leaves the contour solid.
const maxDashCount = 1_000_000

// Dash cuts a path into "on" pieces following a repeating pattern of
// alternating on/off lengths. For example, [5, 3] gives 5 units drawn, 3
// units skipped.
//
// If Intervals has an odd number of elements it is logically duplicated to
// keep on and off alternating: [5] behaves like [5, 5]. An empty or all-zero
// pattern leaves the path unchanged.
type Dash struct {
	// Intervals contains alternating on/off lengths.
	Intervals []float64

	// Phase is the offset into the pattern at the start of each contour.
	// It may be any value; it wraps modulo PatternLength. Increasing it
	// from frame to frame makes the dashes march backwards along the path.
	Phase float64
}

// NewDash creates a dash pattern from alternating on/off lengths.
//
// Examples:
//
//	NewDash(5, 3)        // 5 units on, 3 units off
//	NewDash(10, 5, 2, 5) // 10 on, 5 off, 2 on, 5 off
//	NewDash(5)           // equivalent to [5, 5]
func NewDash(intervals ...float64) Dash {
	return Dash{Intervals: slices.Clone(intervals)}
}

// WithPhase returns a copy of the dash with the given phase.
func (d Dash) WithPhase(phase float64) Dash {
	return Dash{Intervals: d.Intervals, Phase: phase}
}

// PatternLength returns the total length of one complete pattern cycle.
// For odd-length arrays, this includes the duplicated pattern.
func (d Dash) PatternLength() float64 {
	var total float64
	for _, l := range d.Intervals {
		total += l
	}
	if len(d.Intervals)%2 != 0 {
		total *= 2
	}
	return total
}

// IsDashed reports whether the pattern actually breaks the path, that is
// whether it has at least one positive length.
func (d Dash) IsDashed() bool {
	for _, l := range d.Intervals {
		if l > 0 {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the Dash.
func (d Dash) Clone() Dash {
	return Dash{Intervals: slices.Clone(d.Intervals), Phase: d.Phase}
}

// NormalizedPhase returns the phase wrapped into [0, PatternLength).
func (d Dash) NormalizedPhase() float64 {
	patternLen := d.PatternLength()
	if patternLen <= 0 {
		return 0
	}
	phase := math.Mod(d.Phase, patternLen)
	if phase < 0 {
		phase += patternLen
	}
	return phase
}

// Scale returns a new Dash with all lengths multiplied by the given factor,
// so a pattern can follow a path that is being scaled.
// Non-positive factors return the dash unchanged.
func (d Dash) Scale(factor float64) Dash {
	if factor <= 0 {
		return d
	}
	scaled := make([]float64, len(d.Intervals))
	for i, l := range d.Intervals {
		scaled[i] = l * factor
	}
	return Dash{Intervals: scaled, Phase: d.Phase * factor}
}

// effectiveIntervals returns the intervals with odd-length arrays duplicated.
func (d Dash) effectiveIntervals() []float64 {
	if len(d.Intervals)%2 == 0 {
		return d.Intervals
	}
	result := make([]float64, len(d.Intervals)*2)
	copy(result, d.Intervals)
	copy(result[len(d.Intervals):], d.Intervals)
	return result
}

func (d Dash) validate() error {
	for i, l := range d.Intervals {
		if l < 0 || math.IsNaN(l) {
			return fmt.Errorf("pathfx: dash interval %d is %v: %w", i, l, ErrInvalidParameter)
		}
	}
	return nil
}

func (Dash) stamps() bool { return false }

func (d Dash) apply(p *Path, measure measureFunc) (Output, error) {
	if err := d.validate(); err != nil {
		return Output{}, err
	}
	if p.IsEmpty() || !d.IsDashed() {
		return Output{Path: orEmpty(p)}, nil
	}
	m, err := measure(p)
	if err != nil {
		return Output{}, err
	}

	intervals := d.effectiveIntervals()
	pattern := d.PatternLength()
	phase := d.NormalizedPhase()

	var contours []Contour
	for _, sp := range m.spans {
		if sp.Length <= 0 {
			continue
		}
		if sp.Length/pattern*float64(len(intervals)) > maxDashCount {
			Logger().Warn("pathfx: dash pattern too dense, contour left solid",
				"contour", sp.Index, "length", sp.Length, "pattern", pattern)
			contours = append(contours, p.contours[sp.Index])
			continue
		}
		contours = append(contours, d.dashContour(m, sp, intervals, phase)...)
	}
	return Output{Path: newPath(contours)}, nil
}

// dashContour walks one contour and returns its "on" pieces.
func (d Dash) dashContour(m *Measure, sp ContourSpan, intervals []float64, phase float64) []Contour {
	// Find where in the pattern the contour starts.
	idx := 0
	for phase >= intervals[idx] {
		phase -= intervals[idx]
		idx = (idx + 1) % len(intervals)
	}
	remaining := intervals[idx] - phase

	var pieces []Contour
	startsAtZero, endsAtEnd := false, false
	for pos := 0.0; pos < sp.Length; {
		next := math.Min(pos+remaining, sp.Length)
		if idx%2 == 0 && next > pos {
			piece := m.ExtractSegment(sp.Start+pos, sp.Start+next)
			pieces = append(pieces, piece.contours...)
			if pos == 0 {
				startsAtZero = true
			}
			endsAtEnd = next >= sp.Length
		}
		pos = next
		idx = (idx + 1) % len(intervals)
		remaining = intervals[idx]
	}

	// On a closed contour a dash running through the seam is one piece.
	if sp.Closed && startsAtZero && endsAtEnd && len(pieces) > 1 {
		last := pieces[len(pieces)-1]
		joined := slices.Concat(last.segments, pieces[0].segments)
		pieces[0] = Contour{segments: joined}
		pieces = pieces[:len(pieces)-1]
	}
	return pieces
}

func orEmpty(p *Path) *Path {
	if p == nil {
		return newPath(nil)
	}
	return p
}
