// Package clock computes the geometry of an analog clock face: sixty tick
// marks around the dial and the angles of the three hands.
//
// Generate is a pure function of the time reading. Advancing the time is
// left to the caller; TimeOf converts a time.Time into the fractional
// reading Generate expects.
package clock

import (
	"fmt"
	"time"

	"github.com/gogpu/pathfx"
)

// NumTicks is the number of tick marks on a dial.
const NumTicks = 60

// TickKind classifies a tick mark.
type TickKind uint8

const (
	// Normal ticks mark minutes.
	Normal TickKind = iota
	// FiveStep ticks mark every fifth minute, i.e. the hours.
	FiveStep
)

func (k TickKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case FiveStep:
		return "five-step"
	}
	return fmt.Sprintf("TickKind(%d)", uint8(k))
}

// HandKind identifies a clock hand.
type HandKind uint8

// The three hands, in the order Face.Hands stores them.
const (
	Hours HandKind = iota
	Minutes
	Seconds
)

func (k HandKind) String() string {
	switch k {
	case Hours:
		return "hours"
	case Minutes:
		return "minutes"
	case Seconds:
		return "seconds"
	}
	return fmt.Sprintf("HandKind(%d)", uint8(k))
}

// Tick is one mark on the dial.
type Tick struct {
	Index        int
	Kind         TickKind
	AngleDegrees float64
	// Line runs from the inner end of the tick outwards to the dial edge.
	Line  pathfx.Line
	Color pathfx.RGBA
}

// Hand is one clock hand.
//
// AngleDegrees rotates the hand clockwise on screen from its rest position,
// which points straight down from the centre. Hour and minute hands carry
// an extra 180 degrees so that a reading of 0 points them up; the second
// hand does not.
type Hand struct {
	Kind         HandKind
	AngleDegrees float64
	Length       float64
	Width        float64
	Color        pathfx.RGBA
}

// Transform returns the rotation of the hand about center.
func (h Hand) Transform(center pathfx.Point) pathfx.Matrix {
	return pathfx.RotateAbout(pathfx.Radians(h.AngleDegrees), center)
}

// Line returns the hand as a segment from center to its tip.
func (h Hand) Line(center pathfx.Point) pathfx.Line {
	rest := pathfx.NewLine(center, center.Add(pathfx.V2(0, h.Length)))
	return rest.Transform(h.Transform(center)).(pathfx.Line)
}

// Face is a computed clock face.
type Face struct {
	Ticks [NumTicks]Tick
	Hands [3]Hand
}

// Hand returns the hand of the given kind.
func (f *Face) Hand(k HandKind) Hand {
	return f.Hands[k]
}

// Generate computes the face for a reading of hours, minutes and seconds.
// The values are fractional and unbounded: 3.5 hours is half past three
// and 75 seconds is a quarter past the minute.
func Generate(hours, minutes, seconds float64, style Style) Face {
	var f Face
	for i := range f.Ticks {
		f.Ticks[i] = tick(i, style)
	}
	f.Hands = [3]Hand{
		hand(Hours, hours*(360.0/12)+180, style.HourHand),
		hand(Minutes, minutes*(360.0/60)+180, style.MinuteHand),
		hand(Seconds, seconds*(360.0/60), style.SecondHand),
	}
	return f
}

func tick(i int, style Style) Tick {
	kind, step := Normal, style.MinuteStep
	if i%5 == 0 {
		kind, step = FiveStep, style.HourStep
	}
	deg := float64(i) * (360.0 / NumTicks)
	dir := pathfx.V2(1, 0).Rotate(pathfx.Radians(deg))
	return Tick{
		Index:        i,
		Kind:         kind,
		AngleDegrees: deg,
		Line: pathfx.NewLine(
			style.Center.Add(dir.Mul(style.Radius-step.Length)),
			style.Center.Add(dir.Mul(style.Radius)),
		),
		Color: step.Color,
	}
}

func hand(k HandKind, deg float64, hs HandStyle) Hand {
	return Hand{Kind: k, AngleDegrees: deg, Length: hs.Length, Width: hs.Width, Color: hs.Color}
}

// Dial returns the outline of the dial.
func Dial(style Style) *pathfx.Path {
	return pathfx.BuildPath().Circle(style.Center.X, style.Center.Y, style.Radius).Build()
}

// TimeOf returns the fractional clock reading of t in its own location:
// hours on a 12 hour dial, minutes and seconds including their fractions.
func TimeOf(t time.Time) (hours, minutes, seconds float64) {
	ns := float64(t.Nanosecond()) / float64(time.Second)
	seconds = float64(t.Second()) + ns
	minutes = float64(t.Minute()) + seconds/60
	hours = float64(t.Hour()%12) + minutes/60
	return hours, minutes, seconds
}
