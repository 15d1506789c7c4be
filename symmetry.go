package motif

// Generator draws one copy of a pattern starting at the pen's pose.
type Generator func(p *Pen)

// Kaleidoscope replication.
const (
	kaleidoscopeCount = 8
	kaleidoscopeStep  = 360.0 / kaleidoscopeCount
)

// Offsets returns the heading offsets, relative to the anchor heading, at
// which the base pattern is replicated.
//
// Kaleidoscope takes precedence over RotationCount, which takes precedence
// over a plain mirror. Mirror doubles every replica with a copy turned
// by 180 degrees.
func (s Symmetry) Offsets() []float64 {
	var base []float64
	switch {
	case s.Kaleidoscope:
		base = make([]float64, kaleidoscopeCount)
		for i := range base {
			base[i] = float64(i) * kaleidoscopeStep
		}
	case s.RotationCount > 1:
		base = make([]float64, s.RotationCount)
		step := 360 / float64(s.RotationCount)
		for i := range base {
			base[i] = float64(i) * step
		}
	default:
		base = []float64{0}
	}
	if !s.Mirror {
		return base
	}
	out := make([]float64, 0, 2*len(base))
	for _, h := range base {
		out = append(out, h, h+180)
	}
	return out
}

// Replicate runs gen once per symmetry replica. Before each replica the
// pen is lifted, moved back to the anchor pose it had on entry, turned to
// the replica heading and put down. It returns the number of replicas.
func Replicate(p *Pen, s Symmetry, gen Generator) int {
	anchor := p.Pose()
	offsets := s.Offsets()
	for _, off := range offsets {
		p.Goto(Pose{X: anchor.X, Y: anchor.Y, Heading: anchor.Heading + off})
		p.PenDown()
		gen(p)
	}
	return len(offsets)
}
