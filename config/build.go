package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/gogpu/pathfx"
	"github.com/gogpu/pathfx/clock"
)

// ArrowShape is the arrow head placed by layers with arrow = true. It
// points along its local up axis with the tip at the origin's top.
const ArrowShape = "M0 -30 L-30 60 L30 60 Z"

// DefaultStampShape is used by stamp effects without a shape: a 40x10 oval.
func DefaultStampShape() *pathfx.Path {
	return pathfx.BuildPath().Oval(pathfx.NewRect(pathfx.Pt(-20, -5), pathfx.Pt(20, 5))).Build()
}

// Path parses the layer's path data.
func (l *Layer) Path() (*pathfx.Path, error) {
	return ParsePathData(l.D)
}

// Color returns the stroke color.
func (l *Layer) Color() pathfx.RGBA {
	return pathfx.Hex(l.Stroke)
}

// Fraction returns the drawn fraction of the path.
func (l *Layer) Fraction() float64 {
	if l.Progress == nil {
		return 1
	}
	return *l.Progress
}

// Effect builds the layer's effect chain, or nil when the layer has none.
// phase is added to the phase of every dash and stamp, which is how a
// caller animates a scene.
func (l *Layer) Effect(phase float64) (pathfx.Effect, error) {
	effects := make([]pathfx.Effect, 0, len(l.Effects))
	for i, spec := range l.Effects {
		e, err := spec.build(phase)
		if err != nil {
			return nil, fmt.Errorf("effect %d (%s): %w", i, spec.Type, err)
		}
		effects = append(effects, e)
	}
	for i, e := range effects[:max(len(effects)-1, 0)] {
		if _, ok := e.(pathfx.Stamp); ok {
			return nil, fmt.Errorf("effect %d: stamp must be last: %w", i, pathfx.ErrIncompatibleChain)
		}
	}
	// Listed in application order; Compose wants the outermost first.
	slices.Reverse(effects)
	return pathfx.Compose(effects...), nil
}

func (e *Effect) build(phase float64) (pathfx.Effect, error) {
	switch e.Type {
	case "dash":
		d := pathfx.NewDash(e.Intervals...).WithPhase(e.Phase + phase)
		for _, v := range d.Intervals {
			if v < 0 {
				return nil, fmt.Errorf("negative interval %v: %w", v, pathfx.ErrInvalidParameter)
			}
		}
		return d, nil
	case "corner":
		if e.Radius < 0 {
			return nil, fmt.Errorf("radius %v: %w", e.Radius, pathfx.ErrInvalidParameter)
		}
		return pathfx.CornerRound{Radius: e.Radius}, nil
	case "stamp":
		if !(e.Advance > 0) {
			return nil, fmt.Errorf("advance %v: %w", e.Advance, pathfx.ErrInvalidParameter)
		}
		style := pathfx.StampTranslate
		if e.Style != "" {
			var err error
			if style, err = pathfx.ParseStampStyle(e.Style); err != nil {
				return nil, err
			}
		}
		shape := DefaultStampShape()
		if e.Shape != "" {
			var err error
			if shape, err = ParsePathData(e.Shape); err != nil {
				return nil, fmt.Errorf("shape: %w", err)
			}
		}
		return pathfx.Stamp{Shape: shape, Advance: e.Advance, Phase: e.Phase + phase, Style: style}, nil
	}
	return nil, fmt.Errorf("unknown effect type %q: %w", e.Type, pathfx.ErrInvalidParameter)
}

// At returns the time the clock shows, or the zero time when it follows
// the time of rendering.
func (c *Clock) At() (time.Time, error) {
	if c.Time == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, c.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q: %w", c.Time, pathfx.ErrInvalidParameter)
	}
	return t, nil
}

// Style returns the default clock style moved to the configured position,
// with tick and hand lengths scaled to the configured radius.
func (c *Clock) Style() clock.Style {
	s := clock.DefaultStyle()
	k := c.Radius / s.Radius
	s.Center = pathfx.Pt(c.X, c.Y)
	s.Radius = c.Radius
	for _, h := range []*clock.HandStyle{&s.HourHand, &s.MinuteHand, &s.SecondHand} {
		h.Length *= k
		h.Width *= k
	}
	s.HourStep.Length *= k
	s.MinuteStep.Length *= k
	return s
}
