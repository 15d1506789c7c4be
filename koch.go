package motif

// KochMaxIterations bounds the Koch recursion; the segment count grows
// as 3*4^n.
const KochMaxIterations = 6

// KochSegments returns the number of segments of a snowflake with
// iterations levels.
func KochSegments(iterations int) int {
	n := 3
	for range iterations {
		n *= 4
	}
	return n
}

// Koch draws a Koch snowflake with sides of length size. The three sides
// are drawn clockwise so the bumps point outward.
func Koch(p *Pen, size float64, iterations int, c Colorizer) {
	iterations = min(iterations, KochMaxIterations)
	total := KochSegments(iterations)
	index := 0
	for range 3 {
		index = koch(p, size, iterations, index, total, c)
		p.Right(120)
	}
}

// koch draws one Koch curve and returns the index of the next segment.
func koch(p *Pen, length float64, level, index, total int, c Colorizer) int {
	if level <= 0 {
		c.Apply(p, StepFactor(index, total))
		p.Forward(length)
		return index + 1
	}
	length /= 3
	index = koch(p, length, level-1, index, total, c)
	p.Left(60)
	index = koch(p, length, level-1, index, total, c)
	p.Right(120)
	index = koch(p, length, level-1, index, total, c)
	p.Left(60)
	return koch(p, length, level-1, index, total, c)
}
