package motif

import (
	"fmt"
	"math"
)

// treeBaseY is where fractal trees are rooted, below the canvas center.
const treeBaseY = -200

// Pattern is a traced job: the recorded path and how it was built.
type Pattern struct {
	Path     *Path
	Anchor   Pose
	Replicas int
}

// Trace normalizes params and replays the selected generator, wrapped by
// the symmetry transform, into a fresh Pen.
func Trace(params Params) (*Pattern, error) {
	p, err := params.Normalize()
	if err != nil {
		return nil, err
	}
	pal, err := p.palette()
	if err != nil {
		return nil, err
	}
	return trace(p, pal)
}

// trace expects normalized params.
func trace(p Params, pal palette) (*Pattern, error) {
	gen, anchor, err := generatorFor(p, Colorizer{
		Enabled: p.Gradient.Enabled,
		Start:   pal.start,
		End:     pal.end,
	})
	if err != nil {
		return nil, err
	}

	pen := NewPen(FixBlack(pal.stroke))
	pen.SetWidth(p.PenWidth)
	pen.Goto(anchor)
	n := Replicate(pen, p.Symmetry, gen)

	Logger().Debug("motif: traced pattern",
		"mode", p.Mode,
		"replicas", n,
		"commands", pen.Path().Len())

	return &Pattern{Path: pen.Path(), Anchor: anchor, Replicas: n}, nil
}

// generatorFor binds the generator of p's mode to its shape parameters
// and returns it with its anchor pose.
func generatorFor(p Params, c Colorizer) (Generator, Pose, error) {
	switch p.Mode {
	case ModeGeometric:
		return func(pen *Pen) {
			Geometric(pen, p.Sides, p.Depth, p.Size, p.Angle, c)
		}, Pose{}, nil

	case ModeSpiral:
		return func(pen *Pen) {
			Spiral(pen, p.Turns, p.Size, p.Increment, p.Angle, c)
		}, Pose{}, nil

	case ModeFractal:
		switch p.FractalType {
		case FractalTree, "":
			return func(pen *Pen) {
				Tree(pen, p.Size, p.Iterations, p.Angle, p.Reduction, c)
			}, Pose{Y: treeBaseY, Heading: 90}, nil

		case FractalKoch:
			// Upper left corner of a snowflake centered on the origin.
			h := p.Size * math.Sqrt(3) / 6
			return func(pen *Pen) {
				Koch(pen, p.Size, p.Iterations, c)
			}, Pose{X: -p.Size / 2, Y: h}, nil

		case FractalSierpinski:
			h := p.Size * math.Sqrt(3) / 6
			return func(pen *Pen) {
				Sierpinski(pen, p.Size, p.Iterations, c)
			}, Pose{X: -p.Size / 2, Y: -h}, nil

		case FractalDragon:
			return func(pen *Pen) {
				Dragon(pen, p.Size, p.Iterations, c)
			}, Pose{X: -p.Size / 2}, nil
		}
		return nil, Pose{}, fmt.Errorf("%w: unsupported fractal type %q", ErrInvalidParameters, p.FractalType)
	}
	return nil, Pose{}, fmt.Errorf("%w: unsupported mode %q", ErrInvalidParameters, p.Mode)
}
