// Package pathfx measures 2D paths and rewrites them with path effects.
//
// # Overview
//
// pathfx is the geometry behind animated vector drawings: drawing a path
// progressively, moving a marker along it, dashing or rounding it, and
// stamping a shape along it. It produces geometry only. Colours are carried
// through untouched and rasterization is left to the caller.
//
// # Quick Start
//
//	import "github.com/gogpu/pathfx"
//
//	p := pathfx.BuildPath().
//	    MoveTo(100, 100).
//	    QuadTo(100, 400, 400, 400).
//	    Build()
//
//	m, err := pathfx.NewMeasure(p, pathfx.DefaultTolerance)
//	if err != nil {
//	    return err
//	}
//
//	// The first 75% of the path, and the marker transform at its end.
//	part := m.ExtractSegment(0, 0.75*m.Length())
//	marker := m.TransformAt(0.75 * m.Length())
//
//	// Dash it, then stamp an arrow every 30 units along the dashes.
//	fx := pathfx.Compose(
//	    pathfx.Stamp{Shape: arrow, Advance: 30, Style: pathfx.StampRotate},
//	    pathfx.NewDash(20, 10),
//	)
//	out, err := pathfx.Apply(fx, part)
//
// # Measuring
//
// A Measure flattens every curve to within a tolerance and records the
// cumulative arc length at each flattened vertex. Lookups by distance are
// binary searches over that table. Measures are immutable; an Engine caches
// them per path and tolerance and can build many in parallel.
//
// # Effects
//
// Dash, CornerRound and Stamp are the effects; Chain runs one effect on the
// output of another. Effects that yield paths may be chained freely. A
// Stamp yields placements rather than a path, so it can only be the
// outermost effect of a chain.
//
// # Coordinate System
//
// Screen coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians; positive angles turn clockwise on screen
//
// A stamp or marker shape is drawn pointing along its local up axis (0,-1),
// which TransformAt and the stamp transforms map onto the path tangent.
package pathfx
