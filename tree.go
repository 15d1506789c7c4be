package motif

// Tree draws a binary fractal tree with iterations levels. Each branch is
// length*reduction long and splits angle degrees to either side.
//
// The pen's pose is the same before and after the call.
func Tree(p *Pen, length float64, iterations int, angle, reduction float64, c Colorizer) {
	tree(p, length, iterations, iterations, angle, reduction, c)
}

func tree(p *Pen, length float64, level, levels int, angle, reduction float64, c Colorizer) {
	if level <= 0 {
		return
	}
	c.Apply(p, DepthFactor(levels-level, levels))
	p.Forward(length)

	p.Right(angle)
	tree(p, length*reduction, level-1, levels, angle, reduction, c)
	p.Turn(-2 * angle)
	tree(p, length*reduction, level-1, levels, angle, reduction, c)
	p.Right(angle)

	// Retrace to the branch point without drawing over the branch.
	down := p.state.Down
	p.PenUp()
	p.Backward(length)
	p.setDown(down)
}
