package clock

import "github.com/gogpu/pathfx"

// Style configures the geometry and colors of a clock face. Lengths are in
// the same units as Center.
type Style struct {
	// Center is the middle of the dial.
	Center pathfx.Point
	// Radius is the dial radius; ticks end on it.
	Radius float64

	Background pathfx.RGBA

	HourHand   HandStyle
	MinuteHand HandStyle
	SecondHand HandStyle

	// HourStep styles the twelve long ticks, MinuteStep the others.
	HourStep   StepStyle
	MinuteStep StepStyle
}

// HandStyle is the look of one clock hand.
type HandStyle struct {
	Length float64
	Width  float64
	Color  pathfx.RGBA
}

// StepStyle is the look of one tick class.
type StepStyle struct {
	Length float64
	Color  pathfx.RGBA
}

// DefaultStyle returns the stock clock: a 100 unit dial centred in a
// 200x200 box, black hour and minute hands and a red second hand.
func DefaultStyle() Style {
	const radius = 100
	return Style{
		Center:     pathfx.Pt(radius, radius),
		Radius:     radius,
		Background: pathfx.White,
		HourHand:   HandStyle{Length: 150, Width: 4, Color: pathfx.Black},
		MinuteHand: HandStyle{Length: 170, Width: 3, Color: pathfx.Black},
		SecondHand: HandStyle{Length: 185, Width: 2, Color: pathfx.Red},
		HourStep:   StepStyle{Length: 20, Color: pathfx.Hex("#444444")},
		MinuteStep: StepStyle{Length: 15, Color: pathfx.Hex("#cccccc")},
	}
}
