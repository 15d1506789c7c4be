package motif

// Op identifies a path command.
type Op uint8

// Path commands.
const (
	// OpMove moves the pen to (X, Y) without drawing.
	OpMove Op = iota
	// OpLine draws from the current point to (X, Y) with Color and Width.
	OpLine
	// OpTurn records the new Heading.
	OpTurn
	// OpColor records the new Color.
	OpColor
)

// String returns the command name.
func (o Op) String() string {
	switch o {
	case OpMove:
		return "move"
	case OpLine:
		return "line"
	case OpTurn:
		return "turn"
	case OpColor:
		return "color"
	default:
		return "unknown"
	}
}

// Command is a single path entry.
// Line commands carry the stroke color and width active when they were
// emitted so the path can be replayed without the pen.
type Command struct {
	Op      Op
	X, Y    float64
	Heading float64
	Color   Color
	Width   float64
}

// Path is an append-only list of drawing commands in turtle coordinates
// (origin at the center, y up).
type Path struct {
	cmds []Command
}

// Commands returns the recorded commands. The slice must not be modified.
func (p *Path) Commands() []Command {
	return p.cmds
}

// Len returns the number of commands.
func (p *Path) Len() int {
	return len(p.cmds)
}

// Segments returns the number of drawn line segments.
func (p *Path) Segments() int {
	n := 0
	for _, c := range p.cmds {
		if c.Op == OpLine {
			n++
		}
	}
	return n
}

func (p *Path) append(c Command) {
	p.cmds = append(p.cmds, c)
}
