package config

import (
	"fmt"
	"strconv"

	"github.com/gogpu/pathfx"
)

// argCount is the number of values each path command consumes.
var argCount = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'Q': 4, 'T': 2, 'C': 6, 'S': 4,
	'Z': 0,
}

// ParsePathData parses SVG path data ("M10 10 L 20 20 Z") into a path.
//
// Supported commands are M, L, H, V, Q, T, C, S and Z in absolute and
// relative form, including implicit repetition of the previous command.
// Elliptical arcs are not supported.
func ParsePathData(d string) (*pathfx.Path, error) {
	sc := scanner{src: d}
	b := pathfx.BuildPath()

	var cur, start, ctrl pathfx.Point
	var prev byte
	for {
		sc.skipSeparators()
		if sc.done() {
			break
		}
		at := sc.pos
		cmd, ok := sc.command()
		if !ok {
			return nil, fmt.Errorf("offset %d: expected a command: %w", at, ErrSyntax)
		}
		rel := cmd >= 'a'
		op := cmd &^ 0x20
		n, known := argCount[op]
		if !known {
			return nil, fmt.Errorf("offset %d: unsupported command %q: %w", at, cmd, ErrSyntax)
		}
		if op == 'Z' {
			b.Close()
			cur, prev = start, 'Z'
			continue
		}

		var args [6]float64
		for first := true; first || sc.hasNumber(); first = false {
			for i := range n {
				v, err := sc.number()
				if err != nil {
					return nil, err
				}
				args[i] = v
			}
			if rel {
				for i := 0; i < n; i++ {
					switch {
					case op == 'H':
						args[i] += cur.X
					case op == 'V':
						args[i] += cur.Y
					case i%2 == 0:
						args[i] += cur.X
					default:
						args[i] += cur.Y
					}
				}
			}

			switch op {
			case 'M':
				cur = pathfx.Pt(args[0], args[1])
				start = cur
				b.MoveTo(cur.X, cur.Y)
				// Further pairs are implicit line-tos.
				op = 'L'
			case 'L':
				cur = pathfx.Pt(args[0], args[1])
				b.LineTo(cur.X, cur.Y)
			case 'H':
				cur.X = args[0]
				b.LineTo(cur.X, cur.Y)
			case 'V':
				cur.Y = args[0]
				b.LineTo(cur.X, cur.Y)
			case 'Q', 'T':
				if op == 'Q' {
					ctrl = pathfx.Pt(args[0], args[1])
					cur = pathfx.Pt(args[2], args[3])
				} else {
					ctrl = reflect(ctrl, cur, prev == 'Q' || prev == 'T')
					cur = pathfx.Pt(args[0], args[1])
				}
				b.QuadTo(ctrl.X, ctrl.Y, cur.X, cur.Y)
			case 'C', 'S':
				var c1 pathfx.Point
				if op == 'C' {
					c1 = pathfx.Pt(args[0], args[1])
					ctrl = pathfx.Pt(args[2], args[3])
					cur = pathfx.Pt(args[4], args[5])
				} else {
					c1 = reflect(ctrl, cur, prev == 'C' || prev == 'S')
					ctrl = pathfx.Pt(args[0], args[1])
					cur = pathfx.Pt(args[2], args[3])
				}
				b.CubicTo(c1.X, c1.Y, ctrl.X, ctrl.Y, cur.X, cur.Y)
			}
			prev = op
		}
	}
	return b.Build(), nil
}

// reflect mirrors the previous control point through cur, or returns cur
// when the previous command had no control point of the right kind.
func reflect(ctrl, cur pathfx.Point, smooth bool) pathfx.Point {
	if !smooth {
		return cur
	}
	return pathfx.Pt(2*cur.X-ctrl.X, 2*cur.Y-ctrl.Y)
}

// scanner tokenizes path data.
type scanner struct {
	src string
	pos int
}

func (s *scanner) done() bool { return s.pos >= len(s.src) }

func (s *scanner) skipSeparators() {
	for !s.done() {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) command() (byte, bool) {
	c := s.src[s.pos]
	if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
		s.pos++
		return c, true
	}
	return 0, false
}

// hasNumber reports whether the next token is a number.
func (s *scanner) hasNumber() bool {
	s.skipSeparators()
	if s.done() {
		return false
	}
	c := s.src[s.pos]
	return c == '-' || c == '+' || c == '.' || ('0' <= c && c <= '9')
}

// number reads one number. Numbers may follow each other without a
// separator when unambiguous, as in "10-5" or "0.5.5".
func (s *scanner) number() (float64, error) {
	s.skipSeparators()
	begin := s.pos
	if !s.done() && (s.src[s.pos] == '-' || s.src[s.pos] == '+') {
		s.pos++
	}
	digits := s.digits()
	if !s.done() && s.src[s.pos] == '.' {
		s.pos++
		digits += s.digits()
	}
	if digits == 0 {
		return 0, fmt.Errorf("offset %d: expected a number: %w", begin, ErrSyntax)
	}
	if !s.done() && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		mark := s.pos
		s.pos++
		if !s.done() && (s.src[s.pos] == '-' || s.src[s.pos] == '+') {
			s.pos++
		}
		if s.digits() == 0 {
			s.pos = mark
		}
	}
	v, err := strconv.ParseFloat(s.src[begin:s.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("offset %d: %w: %w", begin, ErrSyntax, err)
	}
	return v, nil
}

func (s *scanner) digits() int {
	n := 0
	for !s.done() && '0' <= s.src[s.pos] && s.src[s.pos] <= '9' {
		s.pos++
		n++
	}
	return n
}
