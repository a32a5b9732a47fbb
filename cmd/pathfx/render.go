package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"time"

	"golang.org/x/image/vector"

	"github.com/gogpu/pathfx"
	"github.com/gogpu/pathfx/clock"
	"github.com/gogpu/pathfx/config"
)

// frame holds the per-frame inputs that would come from an animation
// driver.
type frame struct {
	phase float64
	// progress overrides every layer's drawn fraction when >= 0.
	progress float64
	// at overrides the clock reading when non-zero.
	at time.Time
}

// canvas is a minimal preview rasterizer: strokes become one quad per
// flattened edge and fills are the flattened polygons.
type canvas struct {
	img       *image.RGBA
	ras       *vector.Rasterizer
	tolerance float64
}

func newCanvas(w, h int, background color.Color, tolerance float64) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return &canvas{img: img, ras: vector.NewRasterizer(w, h), tolerance: tolerance}
}

func (c *canvas) draw(col color.Color) {
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	b := c.img.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
}

// stroke draws every flattened edge of p as a quad of the given width.
func (c *canvas) stroke(p *pathfx.Path, width float64, col color.Color) {
	if p.IsEmpty() {
		return
	}
	for _, poly := range p.Flatten(c.tolerance) {
		for i := 1; i < len(poly); i++ {
			c.edge(poly[i-1], poly[i], width)
		}
	}
	c.draw(col)
}

func (c *canvas) strokeLine(l pathfx.Line, width float64, col color.Color) {
	c.edge(l.P0, l.P1, width)
	c.draw(col)
}

func (c *canvas) edge(a, b pathfx.Point, width float64) {
	dir := b.Sub(a)
	if dir.IsZero() {
		return
	}
	n := dir.Perp().Normalize().Mul(width / 2)
	c.moveTo(a.Add(n))
	c.lineTo(b.Add(n))
	c.lineTo(b.Add(n.Neg()))
	c.lineTo(a.Add(n.Neg()))
	c.ras.ClosePath()
}

// fill draws the interior of p.
func (c *canvas) fill(p *pathfx.Path, col color.Color) {
	if p.IsEmpty() {
		return
	}
	for _, poly := range p.Flatten(c.tolerance) {
		if len(poly) < 3 {
			continue
		}
		c.moveTo(poly[0])
		for _, pt := range poly[1:] {
			c.lineTo(pt)
		}
		c.ras.ClosePath()
	}
	c.draw(col)
}

func (c *canvas) moveTo(p pathfx.Point) { c.ras.MoveTo(float32(p.X), float32(p.Y)) }
func (c *canvas) lineTo(p pathfx.Point) { c.ras.LineTo(float32(p.X), float32(p.Y)) }

// render runs the engine over every layer of scene and rasterizes the
// result.
func render(scene *config.Scene, f frame) (*image.RGBA, error) {
	bg, err := pathfx.ParseHex(scene.Background)
	if err != nil {
		return nil, err
	}
	eng := pathfx.NewEngine(pathfx.WithTolerance(scene.Tolerance))
	defer eng.Close()
	c := newCanvas(scene.Width, scene.Height, bg, eng.Tolerance())

	paths := make([]*pathfx.Path, len(scene.Layers))
	for i := range scene.Layers {
		if paths[i], err = scene.Layers[i].Path(); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	measures, err := eng.MeasureAll(context.Background(), paths)
	if err != nil {
		return nil, err
	}

	var arrow *pathfx.Path
	for i := range scene.Layers {
		l := &scene.Layers[i]
		m := measures[i]
		frac := l.Fraction()
		if f.progress >= 0 {
			frac = f.progress
		}
		end := frac * m.Length()
		visible := m.ExtractSegment(0, end)
		slog.Debug("layer", "index", i, "name", l.Name, "length", m.Length(), "drawn", end)

		if !visible.IsEmpty() {
			if err := drawLayer(c, eng, l, visible, f.phase); err != nil {
				return nil, fmt.Errorf("layer %d (%s): %w", i, l.Name, err)
			}
		}
		if l.Arrow {
			if arrow == nil {
				if arrow, err = config.ParsePathData(config.ArrowShape); err != nil {
					return nil, err
				}
			}
			c.fill(arrow.Transform(m.TransformAt(end)), l.Color())
		}
	}

	if scene.Clock != nil {
		if err := drawClock(c, scene.Clock, f.at); err != nil {
			return nil, err
		}
	}
	slog.Debug("engine cache", "stats", fmt.Sprintf("%+v", eng.CacheStats()))
	return c.img, nil
}

func drawLayer(c *canvas, eng *pathfx.Engine, l *config.Layer, p *pathfx.Path, phase float64) error {
	effect, err := l.Effect(phase)
	if err != nil {
		return err
	}
	if effect == nil {
		c.stroke(p, l.Width, l.Color())
		return nil
	}
	out, err := eng.Apply(effect, p)
	if err != nil {
		return err
	}
	if out.IsStamps() {
		slog.Debug("stamps", "layer", l.Name, "count", len(out.Stamps))
		c.fill(out.Geometry(), l.Color())
		return nil
	}
	c.stroke(out.Path, l.Width, l.Color())
	return nil
}

func drawClock(c *canvas, cfg *config.Clock, at time.Time) error {
	if at.IsZero() {
		t, err := cfg.At()
		if err != nil {
			return err
		}
		at = t
	}
	if at.IsZero() {
		at = time.Now()
	}
	style := cfg.Style()
	h, m, s := clock.TimeOf(at)
	face := clock.Generate(h, m, s, style)

	c.stroke(clock.Dial(style), 1, style.HourStep.Color)
	for _, t := range face.Ticks {
		c.strokeLine(t.Line, 1, t.Color)
	}
	for _, hand := range face.Hands {
		c.strokeLine(hand.Line(style.Center), hand.Width, hand.Color)
	}
	return nil
}
