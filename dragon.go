package motif

import "math"

// DragonSegments returns the number of segments of a dragon curve with
// iterations levels.
func DragonSegments(iterations int) int {
	return 1 << max(0, iterations)
}

// Dragon draws a Heighway dragon curve of DragonSegments(iterations)
// segments, each size/√2^iterations long.
func Dragon(p *Pen, size float64, iterations int, c Colorizer) {
	dragon(p, size, iterations, 1, 0, DragonSegments(iterations), c)
}

// dragon draws one level of the curve and returns the index of the next
// segment. dir is +1 for a right fold and -1 for a left fold.
func dragon(p *Pen, length float64, level, dir, index, total int, c Colorizer) int {
	if level <= 0 {
		c.Apply(p, StepFactor(index, total))
		p.Forward(length)
		return index + 1
	}
	length /= math.Sqrt2
	index = dragon(p, length, level-1, 1, index, total, c)
	p.Turn(90 * float64(dir))
	return dragon(p, length, level-1, -1, index, total, c)
}
