package pathfx

import "fmt"

// Effect rewrites a path into renderable geometry. The set of effects is
// closed: Dash, CornerRound and Stamp are the leaves and Chain composes
// them. All effects are pure; per-frame inputs such as the dash phase are
// fields of the effect value, so animating means building a new value.
type Effect interface {
	// apply runs the effect on p, measuring paths through measure.
	apply(p *Path, measure measureFunc) (Output, error)
	// stamps reports whether the effect yields stamps rather than a path.
	stamps() bool
}

// measureFunc builds (or looks up) the Measure of a path.
type measureFunc func(*Path) (*Measure, error)

// Output is the result of applying an effect: either a path to stroke or
// an ordered list of stamp placements.
type Output struct {
	Path   *Path
	Stamps []StampInstance

	stamped bool
}

// IsStamps reports whether the output is a stamp list.
func (o Output) IsStamps() bool { return o.stamped }

// Geometry returns the output as a single path. Stamp outputs are
// materialized by transforming each stamp's shape into place.
func (o Output) Geometry() *Path {
	if !o.stamped {
		return o.Path
	}
	var contours []Contour
	for _, s := range o.Stamps {
		contours = append(contours, s.Path().contours...)
	}
	return newPath(contours)
}

// Chain applies Inner first and feeds its path into Outer.
// Inner must produce a path; Outer may be any effect.
type Chain struct {
	Outer Effect
	Inner Effect
}

func (c Chain) stamps() bool {
	return c.Outer != nil && c.Outer.stamps()
}

func (c Chain) apply(p *Path, measure measureFunc) (Output, error) {
	if c.Outer == nil || c.Inner == nil {
		return Output{}, fmt.Errorf("pathfx: chain: missing effect: %w", ErrInvalidParameter)
	}
	if c.Inner.stamps() {
		return Output{}, fmt.Errorf("pathfx: chain: inner %T: %w", c.Inner, ErrIncompatibleChain)
	}
	inner, err := c.Inner.apply(p, measure)
	if err != nil {
		return Output{}, err
	}
	return c.Outer.apply(inner.Path, measure)
}

// Compose chains effects so that the first one is outermost:
// Compose(a, b, c) == Chain{a, Chain{b, c}}, and c runs first.
// Compose of a single effect returns it unchanged; of none, nil.
func Compose(effects ...Effect) Effect {
	if len(effects) == 0 {
		return nil
	}
	e := effects[len(effects)-1]
	for i := len(effects) - 2; i >= 0; i-- {
		e = Chain{Outer: effects[i], Inner: e}
	}
	return e
}

// Apply runs e on p, measuring at DefaultTolerance without caching.
// Use an Engine to reuse measurements across frames.
func Apply(e Effect, p *Path) (Output, error) {
	return applyEffect(e, p, func(p *Path) (*Measure, error) {
		return NewMeasure(p, DefaultTolerance)
	})
}

// ApplyPath runs e on p and returns the resulting path. Effects that
// produce stamps fail with ErrIncompatibleChain.
func ApplyPath(e Effect, p *Path) (*Path, error) {
	if e != nil && e.stamps() {
		return nil, fmt.Errorf("pathfx: apply %T: %w", e, ErrIncompatibleChain)
	}
	out, err := Apply(e, p)
	return out.Path, err
}

// ApplyStamps runs e on p and returns the stamp placements. Effects that
// produce a path yield no stamps.
func ApplyStamps(e Effect, p *Path) ([]StampInstance, error) {
	out, err := Apply(e, p)
	return out.Stamps, err
}

func applyEffect(e Effect, p *Path, measure measureFunc) (Output, error) {
	if e == nil {
		return Output{}, fmt.Errorf("pathfx: apply: nil effect: %w", ErrInvalidParameter)
	}
	Logger().Debug("pathfx: apply effect", "effect", fmt.Sprintf("%T", e), "path", p.ID())
	return e.apply(p, measure)
}
