// Package config loads pathfx scenes from TOML.
//
// A scene is a canvas with a list of layers. Each layer holds one path in
// SVG path-data syntax, how much of it to draw, and the effects to run on
// it:
//
//	width = 600
//	height = 500
//	background = "#ffffff"
//
//	[[layer]]
//	d = "M100 100 Q100 400 400 400"
//	stroke = "#ff0000"
//	width = 5
//	progress = 0.75
//	arrow = true
//
//	[[layer.effect]]
//	type = "dash"
//	intervals = [20, 10]
//
//	[clock]
//	x = 450
//	y = 120
//
// Effects run in the order they are listed. Unknown keys are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/pathfx"
)

// Default canvas size used when a scene leaves width or height unset.
const (
	DefaultWidth  = 512
	DefaultHeight = 512
)

// ErrSyntax is returned for malformed path data.
var ErrSyntax = errors.New("config: path data syntax error")

// Scene is a decoded scene file.
type Scene struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Tolerance  float64 `toml:"tolerance"`
	Background string  `toml:"background"`

	Layers []Layer `toml:"layer"`
	Clock  *Clock  `toml:"clock"`
}

// Layer is one stroked path of a scene.
type Layer struct {
	Name string `toml:"name"`
	// D is the path in SVG path-data syntax.
	D      string  `toml:"d"`
	Stroke string  `toml:"stroke"`
	Width  float64 `toml:"width"`
	// Progress is the drawn fraction of the path, from its start. Unset
	// means 1.
	Progress *float64 `toml:"progress"`
	// Arrow places an arrow head at the end of the drawn part.
	Arrow   bool     `toml:"arrow"`
	Effects []Effect `toml:"effect"`
}

// Effect describes one path effect. Type selects which of the other
// fields apply: "dash" uses Intervals and Phase, "corner" uses Radius,
// "stamp" uses Shape, Advance, Phase and Style.
type Effect struct {
	Type      string    `toml:"type"`
	Intervals []float64 `toml:"intervals"`
	Phase     float64   `toml:"phase"`
	Radius    float64   `toml:"radius"`
	Shape     string    `toml:"shape"`
	Advance   float64   `toml:"advance"`
	Style     string    `toml:"style"`
}

// Clock places a clock face on the canvas.
type Clock struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Radius float64 `toml:"radius"`
	// Time is an RFC 3339 timestamp. Empty means the time of rendering.
	Time string `toml:"time"`
}

// Load reads and validates the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return nil, err
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) applyDefaults() {
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.Tolerance == 0 {
		s.Tolerance = pathfx.DefaultTolerance
	}
	if s.Background == "" {
		s.Background = "#ffffff"
	}
	for i := range s.Layers {
		l := &s.Layers[i]
		if l.Stroke == "" {
			l.Stroke = "#000000"
		}
		if l.Width == 0 {
			l.Width = 1
		}
	}
	if s.Clock != nil && s.Clock.Radius == 0 {
		s.Clock.Radius = 100
	}
}

// Validate checks every value that the engine would reject later, so that
// a bad scene fails at load time. Errors wrap pathfx.ErrInvalidParameter
// or ErrSyntax.
func (s *Scene) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("canvas %dx%d: %w", s.Width, s.Height, pathfx.ErrInvalidParameter)
	}
	if s.Tolerance < 0 {
		return fmt.Errorf("tolerance %v: %w", s.Tolerance, pathfx.ErrInvalidParameter)
	}
	if _, err := pathfx.ParseHex(s.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	for i := range s.Layers {
		if err := s.Layers[i].validate(); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	if c := s.Clock; c != nil {
		if c.Radius < 0 {
			return fmt.Errorf("clock radius %v: %w", c.Radius, pathfx.ErrInvalidParameter)
		}
		if _, err := c.At(); err != nil {
			return fmt.Errorf("clock: %w", err)
		}
	}
	return nil
}

func (l *Layer) validate() error {
	p, err := ParsePathData(l.D)
	if err != nil {
		return err
	}
	if p.IsEmpty() {
		return fmt.Errorf("no path data: %w", pathfx.ErrEmptyPath)
	}
	if _, err := pathfx.ParseHex(l.Stroke); err != nil {
		return fmt.Errorf("stroke: %w", err)
	}
	if l.Width < 0 {
		return fmt.Errorf("width %v: %w", l.Width, pathfx.ErrInvalidParameter)
	}
	if p := l.Progress; p != nil && (*p < 0 || *p > 1) {
		return fmt.Errorf("progress %v outside [0, 1]: %w", *p, pathfx.ErrInvalidParameter)
	}
	if _, err := l.Effect(0); err != nil {
		return err
	}
	return nil
}
