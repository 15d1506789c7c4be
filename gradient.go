package motif

// Colorizer assigns stroke colors along a pattern by interpolating from
// Start to End. A disabled Colorizer leaves the pen color alone.
type Colorizer struct {
	Enabled    bool
	Start, End Color
}

// At returns the color at factor f in [0, 1], with pure black replaced by
// its drawable substitute.
func (c Colorizer) At(f float64) Color {
	return FixBlack(c.Start.Lerp(c.End, f))
}

// Apply sets the pen color for factor f when the colorizer is enabled.
func (c Colorizer) Apply(p *Pen, f float64) {
	if c.Enabled {
		p.SetColor(c.At(f))
	}
}

// StepFactor is the gradient factor of step i out of n for iterative
// patterns: the first step is 0 and the last is 1.
func StepFactor(i, n int) float64 {
	return float64(i) / float64(max(1, n-1))
}

// DepthFactor is the gradient factor of recursion depth d for a recursion
// of maxDepth levels. The root is 0 and the deepest drawn level is
// (maxDepth-1)/maxDepth.
func DepthFactor(d, maxDepth int) float64 {
	return float64(d) / float64(max(1, maxDepth))
}
