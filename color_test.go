package pathfx

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

// Verify at compile time that RGBA implements color.Color.
var _ color.Color = RGBA{}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#000", Black},
		{"fff", White},
		{"#ff0000", Red},
		{"#00ff0080", RGBA{0, 1, 0, 128.0 / 255}},
		{"#f008", RGBA{1, 0, 0, 136.0 / 255}},
		{"#7F7F7F", RGB(127.0/255, 127.0/255, 127.0/255)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got.R-tt.want.R) > 1e-9 || math.Abs(got.G-tt.want.G) > 1e-9 ||
				math.Abs(got.B-tt.want.B) > 1e-9 || math.Abs(got.A-tt.want.A) > 1e-9 {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#12345", "#ggg", "#12345g"} {
		if _, err := ParseHex(in); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("ParseHex(%q) err = %v, want ErrInvalidParameter", in, err)
		}
	}
	if Hex("nope") != Black {
		t.Error("Hex of an invalid string should be black")
	}
}

func TestRGBA_ColorInterface(t *testing.T) {
	tests := []struct {
		name                       string
		c                          RGBA
		wantR, wantG, wantB, wantA uint32
	}{
		{"opaque black", Black, 0, 0, 0, 65535},
		{"opaque white", White, 65535, 65535, 65535, 65535},
		{"transparent", Transparent, 0, 0, 0, 0},
		{"clamped", RGBA{2, -1, 0, 1}, 65535, 0, 0, 65535},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if r != tt.wantR || g != tt.wantG || b != tt.wantB || a != tt.wantA {
				t.Errorf("RGBA() = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
	if n := Red.WithAlpha(0.5).NRGBA(); n != (color.NRGBA{R: 255, A: 128}) {
		t.Errorf("NRGBA() = %v", n)
	}
}
