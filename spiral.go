package motif

import "math"

// SpiralSteps returns the number of steps of a spiral with the given
// number of turns. The count is floored, so when angle does not divide 360
// the last turn is cut short.
func SpiralSteps(turns int, angle float64) int {
	return int(math.Floor(float64(turns) * 360 / angle))
}

// Spiral draws an outward polygonal spiral: each step moves forward and
// turns right by angle, and the step length grows by increment per full
// turn.
func Spiral(p *Pen, turns int, size, increment, angle float64, c Colorizer) {
	steps := SpiralSteps(turns, angle)
	growth := increment / (360 / angle)
	for i := range steps {
		c.Apply(p, StepFactor(i, steps))
		p.Forward(size)
		p.Right(angle)
		size += growth
	}
}
