package motif

// SierpinskiMaxIterations bounds the Sierpinski recursion; the edge count
// grows as 3^(n+1).
const SierpinskiMaxIterations = 7

// SierpinskiEdges returns the number of triangle edges drawn for
// iterations levels.
func SierpinskiEdges(iterations int) int {
	n := 3
	for range iterations {
		n *= 3
	}
	return n
}

// Sierpinski draws a Sierpinski triangle with side size, counter-clockwise
// from the pen's position as the lower left corner.
//
// The pen's pose is the same before and after the call.
func Sierpinski(p *Pen, size float64, iterations int, c Colorizer) {
	iterations = min(iterations, SierpinskiMaxIterations)
	sierpinski(p, size, iterations, 0, SierpinskiEdges(iterations), c)
}

// sierpinski returns the index of the next edge.
func sierpinski(p *Pen, length float64, level, index, total int, c Colorizer) int {
	if level <= 0 {
		for range 3 {
			c.Apply(p, StepFactor(index, total))
			p.Forward(length)
			p.Left(120)
			index++
		}
		return index
	}

	half := length / 2
	down := p.state.Down

	// lower left
	index = sierpinski(p, half, level-1, index, total, c)

	// lower right
	p.PenUp()
	p.Forward(half)
	p.setDown(down)
	index = sierpinski(p, half, level-1, index, total, c)

	// top
	p.PenUp()
	p.Backward(half)
	p.Left(60)
	p.Forward(half)
	p.Right(60)
	p.setDown(down)
	index = sierpinski(p, half, level-1, index, total, c)

	// back to the lower left corner
	p.PenUp()
	p.Left(60)
	p.Backward(half)
	p.Right(60)
	p.setDown(down)
	return index
}
