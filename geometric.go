package motif

// geometricDecay is the size ratio between consecutive polygons.
const geometricDecay = 0.95

// Geometric draws depth regular polygons with the given number of sides,
// turning right by angle and shrinking the edge length after each one.
func Geometric(p *Pen, sides, depth int, size, angle float64, c Colorizer) {
	exterior := 360 / float64(sides)
	for i := range depth {
		c.Apply(p, StepFactor(i, depth))
		for range sides {
			p.Forward(size)
			p.Right(exterior)
		}
		p.Right(angle)
		size *= geometricDecay
	}
}
