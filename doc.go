// Package motif generates procedural line-art patterns and composites them.
//
// # Overview
//
// A pattern is drawn by a virtual pen (turtle) walking the plane. The pen
// records a [Path] of move, line, turn and color commands; the path is then
// stroked onto a 500x500 canvas with the gogpu/gg software renderer and
// finished by a chain of image effects.
//
// # Quick Start
//
//	import "github.com/gogpu/motif"
//
//	p := motif.DefaultParams(motif.ModeFractal)
//	p.FractalType = motif.FractalKoch
//	p.Iterations = 4
//	p.Symmetry.RotationCount = 3
//
//	img, err := motif.Generate(ctx, p)
//
// # Pattern Families
//
//   - geometric: nested rotated polygons shrinking by 5% each step
//   - fractal: tree, Koch snowflake, Sierpinski triangle, dragon curve
//   - spiral: polygonal spiral with a growing step
//
// Every family can be wrapped by a [Symmetry] (rotation, mirror,
// kaleidoscope) and colored by a linear [Gradient].
//
// # Pipeline
//
//	Params -> Normalize -> Trace (Pen + generator + symmetry) -> Rasterize
//	       -> Background (chroma key, soften, glow, flatten) -> *image.NRGBA
//
// [Combine] merges already rendered images with a [BlendMode] and opacity.
//
// # Coordinate System
//
// Turtle coordinates have the origin at the canvas center with y up.
// Headings are degrees, 0 is east and they grow counter-clockwise; a
// positive [Pen.Turn] is a right (clockwise) turn.
//
// # Concurrency
//
// Generate and Combine keep no shared state. Admission control, timeouts
// and process isolation live in package worker.
package motif
