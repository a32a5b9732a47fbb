package pathfx

import (
	"errors"
	"math"
	"testing"
)

func TestNewDash(t *testing.T) {
	src := []float64{5, 3}
	d := NewDash(src...)
	src[0] = 100
	if d.Intervals[0] != 5 {
		t.Error("NewDash should copy its intervals")
	}
}

func TestDash_PatternLength(t *testing.T) {
	tests := []struct {
		name      string
		intervals []float64
		want      float64
	}{
		{"empty", nil, 0},
		{"even", []float64{5, 3}, 8},
		{"odd is doubled", []float64{5}, 10},
		{"odd three", []float64{1, 2, 3}, 12},
		{"zeros", []float64{0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewDash(tt.intervals...).PatternLength(); got != tt.want {
				t.Errorf("PatternLength() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDash_IsDashed(t *testing.T) {
	tests := []struct {
		intervals []float64
		want      bool
	}{
		{nil, false},
		{[]float64{0}, false},
		{[]float64{0, 0, 0}, false},
		{[]float64{0, 5}, true},
		{[]float64{5, 3}, true},
	}
	for _, tt := range tests {
		if got := NewDash(tt.intervals...).IsDashed(); got != tt.want {
			t.Errorf("IsDashed(%v) = %v, want %v", tt.intervals, got, tt.want)
		}
	}
}

func TestDash_NormalizedPhase(t *testing.T) {
	tests := []struct {
		name  string
		phase float64
		want  float64
	}{
		{"zero", 0, 0},
		{"inside", 4, 4},
		{"wraps", 17, 2},
		{"negative wraps", -5, 10},
		{"exact multiple", 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDash(10, 5).WithPhase(tt.phase)
			if got := d.NormalizedPhase(); math.Abs(got-tt.want) > epsilon {
				t.Errorf("NormalizedPhase() = %v, want %v", got, tt.want)
			}
		})
	}
	if NewDash().WithPhase(3).NormalizedPhase() != 0 {
		t.Error("empty pattern should normalize phase to 0")
	}
}

func TestDash_ScaleClone(t *testing.T) {
	d := NewDash(4, 2).WithPhase(1)
	s := d.Scale(2)
	if s.Intervals[0] != 8 || s.Intervals[1] != 4 || s.Phase != 2 {
		t.Errorf("Scale(2) = %+v", s)
	}
	if d.Scale(-1).Intervals[0] != 4 {
		t.Error("Scale with a negative factor should be a no-op")
	}

	c := d.Clone()
	c.Intervals[0] = 99
	if d.Intervals[0] != 4 {
		t.Error("Clone shares intervals")
	}
}

// dashLengths applies d to p and returns the length of every output contour.
func dashLengths(t *testing.T, d Dash, p *Path) []float64 {
	t.Helper()
	out, err := ApplyPath(d, p)
	if err != nil {
		t.Fatalf("ApplyPath: %v", err)
	}
	var lengths []float64
	for _, c := range out.Contours() {
		lengths = append(lengths, pathLength(t, newPath([]Contour{c})))
	}
	return lengths
}

func TestDash_Apply(t *testing.T) {
	line := BuildPath().MoveTo(0, 0).LineTo(100, 0).Build()

	tests := []struct {
		name string
		dash Dash
		want []float64
	}{
		{"basic", NewDash(10, 5), []float64{10, 10, 10, 10, 10, 10, 10}},
		{"phase inside on", NewDash(10, 5).WithPhase(5), []float64{5, 10, 10, 10, 10, 10, 10}},
		{"phase inside off", NewDash(10, 5).WithPhase(12), []float64{10, 10, 10, 10, 10, 10, 7}},
		{"negative phase", NewDash(10, 5).WithPhase(-5), []float64{10, 10, 10, 10, 10, 10, 5}},
		{"odd pattern", NewDash(10), []float64{10, 10, 10, 10, 10}},
		{"long dash", NewDash(500, 1), []float64{100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dashLengths(t, tt.dash, line)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d dashes %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("dash %d length = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDash_NegativePhaseStartsOff(t *testing.T) {
	// Phase -5 on [10, 5] is phase 10: the path starts in the gap.
	line := BuildPath().MoveTo(0, 0).LineTo(100, 0).Build()
	out, err := ApplyPath(NewDash(10, 5).WithPhase(-5), line)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Contour(0).Start(); !pointsEqual(got, Pt(5, 0), 1e-9) {
		t.Errorf("first dash starts at %v, want (5, 0)", got)
	}
}

func TestDash_Unchanged(t *testing.T) {
	p := BuildPath().Circle(0, 0, 10).Build()
	for _, d := range []Dash{NewDash(), NewDash(0, 0), {Intervals: []float64{0}, Phase: 3}} {
		out, err := ApplyPath(d, p)
		if err != nil {
			t.Fatal(err)
		}
		if out != p {
			t.Errorf("dash %v should return the input path", d.Intervals)
		}
	}

	out, err := ApplyPath(NewDash(5, 5), BuildPath().Build())
	if err != nil || !out.IsEmpty() {
		t.Errorf("empty input: out=%v err=%v", out, err)
	}
}

func TestDash_InvalidInterval(t *testing.T) {
	p := BuildPath().MoveTo(0, 0).LineTo(10, 0).Build()
	for _, d := range []Dash{NewDash(5, -1), NewDash(math.NaN(), 2)} {
		if _, err := ApplyPath(d, p); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("dash %v: err = %v, want ErrInvalidParameter", d.Intervals, err)
		}
	}
}

func TestDash_ClosedSeam(t *testing.T) {
	// Perimeter 160, pattern 50: on at 0-30, 50-80, 100-130, 150-160.
	// The last dash continues through the seam into the first one.
	rect := BuildPath().Rect(0, 0, 40, 40).Build()
	got := dashLengths(t, NewDash(30, 20), rect)
	want := []float64{40, 30, 30}
	if len(got) != len(want) {
		t.Fatalf("got dashes %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("dash %d length = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDash_RestartsPerContour(t *testing.T) {
	p := BuildPath().
		MoveTo(0, 0).LineTo(25, 0).
		MoveTo(0, 10).LineTo(25, 10).
		Build()
	got := dashLengths(t, NewDash(10, 10), p)
	want := []float64{10, 5, 10, 5}
	if len(got) != len(want) {
		t.Fatalf("got dashes %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("dash %d length = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDash_TooDense(t *testing.T) {
	p := BuildPath().MoveTo(0, 0).LineTo(1e6, 0).Build()
	out, err := ApplyPath(NewDash(1e-3, 1e-3), p)
	if err != nil {
		t.Fatal(err)
	}
	if out.NumContours() != 1 || out.NumSegments() != 1 {
		t.Errorf("dense pattern should leave the contour solid, got %d contours", out.NumContours())
	}
}

func BenchmarkDash_Circle(b *testing.B) {
	p := BuildPath().Circle(0, 0, 200).Build()
	d := NewDash(12, 6)
	for b.Loop() {
		_, _ = ApplyPath(d, p)
	}
}
