package pathfx

import (
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	tests := []struct {
		name   string
		got    Vec2
		expect Vec2
	}{
		{"add", V2(1, 2).Add(V2(3, 4)), V2(4, 6)},
		{"sub", V2(5, 7).Sub(V2(2, 3)), V2(3, 4)},
		{"mul", V2(1, -2).Mul(3), V2(3, -6)},
		{"neg", V2(1, -2).Neg(), V2(-1, 2)},
		{"perp", V2(1, 0).Perp(), V2(0, 1)},
		{"rotate 90", V2(1, 0).Rotate(math.Pi / 2), V2(0, 1)},
		{"normalize", V2(3, 4).Normalize(), V2(0.6, 0.8)},
		{"normalize zero", V2(0, 0).Normalize(), V2(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Approx(tt.expect, 1e-10) {
				t.Errorf("got %v, want %v", tt.got, tt.expect)
			}
		})
	}
}

func TestVec2_Scalars(t *testing.T) {
	tests := []struct {
		name   string
		got    float64
		expect float64
	}{
		{"dot", V2(1, 2).Dot(V2(3, 4)), 11},
		{"cross", V2(1, 0).Cross(V2(0, 1)), 1},
		{"length", V2(3, 4).Length(), 5},
		{"length sq", V2(3, 4).LengthSq(), 25},
		{"atan2 right", V2(1, 0).Atan2(), 0},
		{"atan2 down", V2(0, 1).Atan2(), math.Pi / 2},
		{"angle ccw", V2(1, 0).Angle(V2(0, 1)), math.Pi / 2},
		{"angle cw", V2(1, 0).Angle(V2(0, -1)), -math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expect) > 1e-10 {
				t.Errorf("got %v, want %v", tt.got, tt.expect)
			}
		})
	}
}

func TestVec2_IsZero(t *testing.T) {
	if !V2(0, 0).IsZero() {
		t.Error("V2(0, 0).IsZero() = false")
	}
	if V2(1e-300, 0).IsZero() {
		t.Error("tiny vector reported as zero")
	}
}

func TestPoint(t *testing.T) {
	p, q := Pt(0, 0), Pt(3, 4)

	if d := p.Distance(q); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
	if m := p.Midpoint(q); !m.Approx(Pt(1.5, 2), 1e-12) {
		t.Errorf("Midpoint = %v", m)
	}
	if l := p.Lerp(q, 0.25); !l.Approx(Pt(0.75, 1), 1e-12) {
		t.Errorf("Lerp = %v", l)
	}
	if v := q.Sub(p); v != V2(3, 4) {
		t.Errorf("Sub = %v", v)
	}
	if r := p.Add(V2(-1, 2)); r != Pt(-1, 2) {
		t.Errorf("Add = %v", r)
	}
}

func TestDistanceToLine(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"above middle", Pt(5, 3), Pt(0, 0), Pt(10, 0), 3},
		{"past end", Pt(13, 4), Pt(0, 0), Pt(10, 0), 5},
		{"degenerate", Pt(3, 4), Pt(0, 0), Pt(0, 0), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := distanceToLine(tt.p, tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("distanceToLine = %v, want %v", got, tt.want)
			}
		})
	}
}
