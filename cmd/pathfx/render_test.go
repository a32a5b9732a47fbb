package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/pathfx/config"
)

func mustParse(t *testing.T, src string) *config.Scene {
	t.Helper()
	s, err := config.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return s
}

func isRed(c color.RGBA) bool  { return c.R > 200 && c.G < 60 && c.B < 60 }
func isWhite(c color.RGBA) bool { return c.R == 255 && c.G == 255 && c.B == 255 }

func TestRenderStroke(t *testing.T) {
	s := mustParse(t, `
width = 100
height = 40

[[layer]]
d = "M10 20 L90 20"
stroke = "#ff0000"
width = 6
`)
	img, err := render(s, frame{progress: -1})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if got := img.RGBAAt(50, 20); !isRed(got) {
		t.Errorf("pixel on the line = %v, want red", got)
	}
	if got := img.RGBAAt(50, 5); !isWhite(got) {
		t.Errorf("pixel off the line = %v, want background", got)
	}
}

func TestRenderProgress(t *testing.T) {
	s := mustParse(t, `
width = 100
height = 40

[[layer]]
d = "M0 20 L100 20"
stroke = "#ff0000"
width = 6
`)
	img, err := render(s, frame{progress: 0.5})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if got := img.RGBAAt(25, 20); !isRed(got) {
		t.Errorf("pixel in the drawn half = %v, want red", got)
	}
	if got := img.RGBAAt(75, 20); !isWhite(got) {
		t.Errorf("pixel in the undrawn half = %v, want background", got)
	}
}

func TestRenderDash(t *testing.T) {
	s := mustParse(t, `
width = 100
height = 40

[[layer]]
d = "M0 20 L100 20"
stroke = "#ff0000"
width = 6

[[layer.effect]]
type = "dash"
intervals = [20, 20]
`)
	img, err := render(s, frame{progress: -1})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	tests := []struct {
		x    int
		want bool
	}{
		{10, true},
		{30, false},
		{50, true},
		{70, false},
	}
	for _, tt := range tests {
		if got := isRed(img.RGBAAt(tt.x, 20)); got != tt.want {
			t.Errorf("dash at x=%d: red = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestRenderStampsAndArrow(t *testing.T) {
	s := mustParse(t, `
width = 200
height = 200

[[layer]]
d = "M20 100 L180 100"
stroke = "#ff0000"
arrow = true

[[layer.effect]]
type = "stamp"
advance = 50
style = "rotate"
`)
	img, err := render(s, frame{progress: -1})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	// A stamp oval sits on the path start.
	if got := img.RGBAAt(20, 100); !isRed(got) {
		t.Errorf("stamp pixel = %v, want red", got)
	}
}

func TestRenderClock(t *testing.T) {
	s := mustParse(t, `
width = 200
height = 200

[clock]
x = 100
y = 100
radius = 100
time = "2024-01-01T03:00:00Z"
`)
	img, err := render(s, frame{progress: -1})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	// The minute hand points up at 3:00.
	if got := img.RGBAAt(100, 50); isWhite(got) {
		t.Errorf("minute hand pixel = %v, want ink", got)
	}
	// The second hand is red and points down at zero seconds.
	if got := img.RGBAAt(100, 150); !isRed(got) {
		t.Errorf("second hand pixel = %v, want red", got)
	}
}

func TestRenderClockOverride(t *testing.T) {
	s := mustParse(t, `
[clock]
x = 100
y = 100
`)
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	if _, err := render(s, frame{progress: -1, at: at}); err != nil {
		t.Fatalf("render() error = %v", err)
	}
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.toml")
	out := filepath.Join(dir, "out.png")
	src := "width = 32\nheight = 32\n\n[[layer]]\nd = \"M0 0 L32 32\"\n"
	if err := os.WriteFile(scene, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := renderFile(scene, out, frame{progress: -1}); err != nil {
		t.Fatalf("renderFile() error = %v", err)
	}
	fi, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if fi.Size() == 0 {
		t.Error("output is empty")
	}
}

func TestRenderFileMissing(t *testing.T) {
	err := renderFile(filepath.Join(t.TempDir(), "nope.toml"), "out.png", frame{progress: -1})
	if err == nil {
		t.Fatal("renderFile() error = nil, want error")
	}
}
