package motif

import (
	"math"
	"testing"
)

var plain = Colorizer{}

func TestGeometricSegments(t *testing.T) {
	p := NewPen(Black)
	Geometric(p, 6, 4, 100, 20, plain)
	if got, want := p.Path().Segments(), 24; got != want {
		t.Errorf("Geometric(6 sides, depth 4) segments = %d, want %d", got, want)
	}
}

func TestGeometricGradientEnds(t *testing.T) {
	start := Color{10, 20, 30}
	end := Color{200, 100, 50}
	p := NewPen(Black)
	Geometric(p, 3, 5, 50, 0, Colorizer{Enabled: true, Start: start, End: end})

	var lines []Command
	for _, c := range p.Path().Commands() {
		if c.Op == OpLine {
			lines = append(lines, c)
		}
	}
	if lines[0].Color != start {
		t.Errorf("first polygon color = %v, want %v", lines[0].Color, start)
	}
	if last := lines[len(lines)-1]; last.Color != end {
		t.Errorf("last polygon color = %v, want %v", last.Color, end)
	}
}

func TestTree(t *testing.T) {
	for _, n := range []int{1, 3, 6} {
		p := NewPen(Black)
		start := Pose{Y: -200, Heading: 90}
		p.Goto(start)
		Tree(p, 100, n, 30, 0.7, plain)

		if got, want := p.Path().Segments(), 1<<n-1; got != want {
			t.Errorf("Tree(%d) segments = %d, want %d", n, got, want)
		}
		if got := p.Pose(); !poseNear(got, start) {
			t.Errorf("Tree(%d) pose = %+v, want %+v", n, got, start)
		}
	}
}

func TestTreeDepthColors(t *testing.T) {
	p := NewPen(Black)
	c := Colorizer{Enabled: true, Start: Color{0, 0, 0}, End: Color{200, 200, 200}}
	Tree(p, 100, 2, 30, 0.7, c)

	var trunk, branch Color
	for _, cmd := range p.Path().Commands() {
		if cmd.Op != OpLine {
			continue
		}
		if trunk == (Color{}) {
			trunk = cmd.Color
			continue
		}
		branch = cmd.Color
	}
	if trunk != (Color{1, 1, 1}) {
		t.Errorf("trunk color = %v, want #010101", trunk)
	}
	if branch != (Color{100, 100, 100}) {
		t.Errorf("branch color = %v, want #646464", branch)
	}
}

func TestKoch(t *testing.T) {
	tests := []struct {
		iterations int
		want       int
	}{
		{0, 3},
		{1, 12},
		{3, 192},
		{KochMaxIterations + 2, KochSegments(KochMaxIterations)},
	}
	for _, tt := range tests {
		p := NewPen(Black)
		Koch(p, 150, tt.iterations, plain)
		if got := p.Path().Segments(); got != tt.want {
			t.Errorf("Koch(%d) segments = %d, want %d", tt.iterations, got, tt.want)
		}
		if got := p.Pose(); !poseNear(got, Pose{}) {
			t.Errorf("Koch(%d) does not close: pose = %+v", tt.iterations, got)
		}
	}
}

func TestSierpinski(t *testing.T) {
	for _, n := range []int{0, 1, 4} {
		p := NewPen(Black)
		start := Pose{X: -50, Y: -30, Heading: 0}
		p.Goto(start)
		Sierpinski(p, 100, n, plain)

		if got, want := p.Path().Segments(), SierpinskiEdges(n); got != want {
			t.Errorf("Sierpinski(%d) segments = %d, want %d", n, got, want)
		}
		if got := p.Pose(); !poseNear(got, start) {
			t.Errorf("Sierpinski(%d) pose = %+v, want %+v", n, got, start)
		}
	}
	if got := SierpinskiEdges(2); got != 27 {
		t.Errorf("SierpinskiEdges(2) = %d, want 27", got)
	}
}

func TestDragon(t *testing.T) {
	for _, n := range []int{0, 1, 5, 8} {
		p := NewPen(Black)
		Dragon(p, 100, n, plain)
		if got, want := p.Path().Segments(), 1<<n; got != want {
			t.Errorf("Dragon(%d) segments = %d, want %d", n, got, want)
		}
	}
}

func TestDragonGradientCoversRange(t *testing.T) {
	start := Color{0, 0, 200}
	end := Color{200, 0, 0}
	p := NewPen(Black)
	Dragon(p, 100, 4, Colorizer{Enabled: true, Start: start, End: end})

	var first, last Color
	for _, c := range p.Path().Commands() {
		if c.Op != OpLine {
			continue
		}
		if first == (Color{}) {
			first = c.Color
		}
		last = c.Color
	}
	if first != start || last != end {
		t.Errorf("gradient = %v..%v, want %v..%v", first, last, start, end)
	}
}

func TestSpiral(t *testing.T) {
	tests := []struct {
		turns int
		angle float64
		want  int
	}{
		{10, 10, 360},
		{3, 7, 154},
		{20, 45, 160},
	}
	for _, tt := range tests {
		if got := SpiralSteps(tt.turns, tt.angle); got != tt.want {
			t.Errorf("SpiralSteps(%d, %v) = %d, want %d", tt.turns, tt.angle, got, tt.want)
		}
		p := NewPen(Black)
		Spiral(p, tt.turns, 10, 5, tt.angle, plain)
		if got := p.Path().Segments(); got != tt.want {
			t.Errorf("Spiral(%d, %v) segments = %d, want %d", tt.turns, tt.angle, got, tt.want)
		}
	}
}

func TestSpiralGrowsPerTurn(t *testing.T) {
	p := NewPen(Black)
	Spiral(p, 3, 10, 6, 90, plain)

	// With four steps per turn the fifth step is one increment longer
	// than the first.
	cmds := lines(p.Path())
	first := dist(Pose{}, cmds[0])
	fifth := dist(cmds[3], cmds[4])
	if !near(fifth-first, 6) {
		t.Errorf("step growth per turn = %v, want 6", fifth-first)
	}
}

func lines(path *Path) []Pose {
	var out []Pose
	for _, c := range path.Commands() {
		if c.Op == OpLine {
			out = append(out, Pose{X: c.X, Y: c.Y})
		}
	}
	return out
}

func dist(a, b Pose) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
