package motif

import "math"

// Pose is a pen position and heading.
type Pose struct {
	X, Y    float64
	Heading float64
}

// PenState is the mutable state of a Pen.
//
// Heading is in degrees: 0 points east and headings grow counter-clockwise,
// so a positive Turn (a right turn) decreases it.
type PenState struct {
	Pose
	Down  bool
	Color Color
	Width float64
}

// Pen is the drawing context of one generation job. It walks a virtual
// pen through the plane and records what it does into a Path.
//
// A Pen is not safe for concurrent use; every job owns its own.
type Pen struct {
	state PenState
	path  Path
}

// NewPen returns a pen at the origin heading east, pen down, drawing
// with c at width 1.
func NewPen(c Color) *Pen {
	return &Pen{state: PenState{Down: true, Color: c, Width: 1}}
}

// State returns a copy of the current pen state.
func (p *Pen) State() PenState {
	return p.state
}

// Pose returns the current position and heading.
func (p *Pen) Pose() Pose {
	return p.state.Pose
}

// Path returns the recorded path.
func (p *Pen) Path() *Path {
	return &p.path
}

// MoveTo moves to (x, y), drawing a line when the pen is down.
func (p *Pen) MoveTo(x, y float64) {
	p.state.X, p.state.Y = x, y
	if p.state.Down {
		p.path.append(Command{Op: OpLine, X: x, Y: y, Color: p.state.Color, Width: p.state.Width})
		return
	}
	p.path.append(Command{Op: OpMove, X: x, Y: y})
}

// Forward advances distance along the current heading.
func (p *Pen) Forward(distance float64) {
	rad := p.state.Heading * math.Pi / 180
	p.MoveTo(p.state.X+distance*math.Cos(rad), p.state.Y+distance*math.Sin(rad))
}

// Backward moves distance against the current heading.
func (p *Pen) Backward(distance float64) {
	p.Forward(-distance)
}

// Turn rotates the heading clockwise by degrees; negative values turn
// counter-clockwise.
func (p *Pen) Turn(degrees float64) {
	p.SetHeading(p.state.Heading - degrees)
}

// Right turns clockwise.
func (p *Pen) Right(degrees float64) { p.Turn(degrees) }

// Left turns counter-clockwise.
func (p *Pen) Left(degrees float64) { p.Turn(-degrees) }

// SetHeading sets the absolute heading, normalized to [0, 360).
func (p *Pen) SetHeading(degrees float64) {
	h := math.Mod(degrees, 360)
	if h < 0 {
		h += 360
	}
	p.state.Heading = h
	p.path.append(Command{Op: OpTurn, Heading: h})
}

// PenUp stops drawing on subsequent moves.
func (p *Pen) PenUp() { p.state.Down = false }

// PenDown resumes drawing.
func (p *Pen) PenDown() { p.state.Down = true }

func (p *Pen) setDown(down bool) { p.state.Down = down }

// SetColor changes the stroke color.
func (p *Pen) SetColor(c Color) {
	if c == p.state.Color {
		return
	}
	p.state.Color = c
	p.path.append(Command{Op: OpColor, Color: c})
}

// SetWidth changes the stroke width.
func (p *Pen) SetWidth(w float64) {
	p.state.Width = w
}

// Goto moves to pose without drawing and restores the pen state.
func (p *Pen) Goto(pose Pose) {
	down := p.state.Down
	p.PenUp()
	p.MoveTo(pose.X, pose.Y)
	p.SetHeading(pose.Heading)
	p.setDown(down)
}
