package motif

import (
	"fmt"
	"math"
)

// Mode selects the pattern family.
type Mode string

// Supported modes.
const (
	ModeGeometric Mode = "geometric"
	ModeFractal   Mode = "fractal"
	ModeSpiral    Mode = "spiral"
)

// FractalType selects the recursive generator used in ModeFractal.
type FractalType string

// Supported fractal types.
const (
	FractalTree       FractalType = "tree"
	FractalKoch       FractalType = "koch"
	FractalSierpinski FractalType = "sierpinski"
	FractalDragon     FractalType = "dragon"
)

// Default colors.
const (
	DefaultColorHex       = "#0070f3"
	DefaultBackgroundHex  = "#ffffff"
	DefaultGradientEndHex = "#ff4081"
)

// Params is the full parameter set of one generation job.
// Only the fields of the selected Mode are used; the JSON names match
// the HTTP wire format.
type Params struct {
	Mode Mode `json:"mode"`

	// geometric
	Sides int `json:"sides,omitempty"`
	Depth int `json:"depth,omitempty"`

	// shared by all modes
	Size  float64 `json:"size"`
	Angle float64 `json:"angle"`

	// fractal
	FractalType FractalType `json:"fractal_type,omitempty"`
	Iterations  int         `json:"iterations,omitempty"`
	Reduction   float64     `json:"reduction,omitempty"`

	// spiral
	Turns     int     `json:"turns,omitempty"`
	Increment float64 `json:"increment,omitempty"`

	Color           string   `json:"color"`
	BackgroundColor string   `json:"background_color"`
	PenWidth        float64  `json:"pen_width"`
	Gradient        Gradient `json:"gradient"`
	Glow            Glow     `json:"glow"`
	Symmetry        Symmetry `json:"symmetry"`
}

// Gradient configures per-segment color interpolation.
// Empty Start defaults to the stroke color.
type Gradient struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

// Glow configures the neon glow post-effect.
type Glow struct {
	Enabled   bool    `json:"enabled"`
	Intensity float64 `json:"intensity"`
}

// Symmetry configures replication of the base pattern around its anchor.
type Symmetry struct {
	Mirror        bool `json:"mirror"`
	RotationCount int  `json:"rotation_count"`
	Kaleidoscope  bool `json:"kaleidoscope"`
}

// Range is an inclusive numeric range used to clamp parameters.
type Range struct {
	Min, Max float64
}

// Clamp limits v to r.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

func (r Range) clampInt(v int) int {
	return int(r.Clamp(float64(v)))
}

// Documented parameter ranges.
var (
	SidesRange         = Range{3, 12}
	DepthRange         = Range{1, 50}
	GeometricSizeRange = Range{10, 300}
	GeometricAngle     = Range{0, 360}

	IterationsRange  = Range{1, 8}
	FractalSizeRange = Range{50, 200}
	FractalAngle     = Range{0, 180}
	ReductionRange   = Range{0.3, 0.9}

	TurnsRange       = Range{3, 20}
	SpiralSizeRange  = Range{5, 50}
	IncrementRange   = Range{1, 20}
	SpiralAngleRange = Range{1, 45}

	GlowIntensityRange = Range{0.1, 1.0}
	RotationRange      = Range{1, 12}
	PenWidthRange      = Range{1, 10}
)

// DefaultParams returns the default parameters for mode.
// Decoding a request on top of these values keeps the defaults for
// fields the request omits.
func DefaultParams(mode Mode) Params {
	p := Params{
		Mode:            mode,
		Color:           DefaultColorHex,
		BackgroundColor: DefaultBackgroundHex,
		PenWidth:        1,
		Glow:            Glow{Intensity: 0.5},
		Symmetry:        Symmetry{RotationCount: 1},
	}
	switch mode {
	case ModeFractal:
		p.FractalType = FractalTree
		p.Iterations = 4
		p.Size = 100
		p.Angle = 30
		p.Reduction = 0.7
	case ModeSpiral:
		p.Turns = 10
		p.Size = 10
		p.Increment = 5
		p.Angle = 10
	default:
		p.Sides = 5
		p.Depth = 10
		p.Size = 100
		p.Angle = 20
	}
	return p
}

// Normalize returns a copy of p with every numeric field clamped to its
// documented range and empty colors replaced by their defaults.
// It fails with ErrInvalidParameters on an unknown mode or fractal type
// and on malformed colors.
func (p Params) Normalize() (Params, error) {
	if p.Mode == "" {
		p.Mode = ModeGeometric
	}
	switch p.Mode {
	case ModeGeometric:
		p.Sides = SidesRange.clampInt(p.Sides)
		p.Depth = DepthRange.clampInt(p.Depth)
		p.Size = GeometricSizeRange.Clamp(p.Size)
		p.Angle = GeometricAngle.Clamp(p.Angle)
	case ModeFractal:
		if p.FractalType == "" {
			p.FractalType = FractalTree
		}
		switch p.FractalType {
		case FractalTree, FractalKoch, FractalSierpinski, FractalDragon:
		default:
			return p, fmt.Errorf("%w: unsupported fractal type %q", ErrInvalidParameters, p.FractalType)
		}
		p.Iterations = IterationsRange.clampInt(p.Iterations)
		switch p.FractalType {
		case FractalKoch:
			p.Iterations = min(p.Iterations, KochMaxIterations)
		case FractalSierpinski:
			p.Iterations = min(p.Iterations, SierpinskiMaxIterations)
		}
		p.Size = FractalSizeRange.Clamp(p.Size)
		p.Angle = FractalAngle.Clamp(p.Angle)
		p.Reduction = ReductionRange.Clamp(p.Reduction)
	case ModeSpiral:
		p.Turns = TurnsRange.clampInt(p.Turns)
		p.Size = SpiralSizeRange.Clamp(p.Size)
		p.Increment = IncrementRange.Clamp(p.Increment)
		p.Angle = SpiralAngleRange.Clamp(p.Angle)
	default:
		return p, fmt.Errorf("%w: unsupported mode %q", ErrInvalidParameters, p.Mode)
	}

	if p.Color == "" {
		p.Color = DefaultColorHex
	}
	if p.BackgroundColor == "" {
		p.BackgroundColor = DefaultBackgroundHex
	}
	if p.Gradient.Start == "" {
		p.Gradient.Start = p.Color
	}
	if p.Gradient.End == "" {
		p.Gradient.End = DefaultGradientEndHex
	}
	for _, s := range []string{p.Color, p.BackgroundColor, p.Gradient.Start, p.Gradient.End} {
		if _, err := ParseHex(s); err != nil {
			return p, err
		}
	}

	p.PenWidth = PenWidthRange.Clamp(p.PenWidth)
	p.Glow.Intensity = GlowIntensityRange.Clamp(p.Glow.Intensity)
	p.Symmetry.RotationCount = RotationRange.clampInt(p.Symmetry.RotationCount)
	return p, nil
}

// palette holds the parsed colors of normalized Params.
type palette struct {
	stroke     Color
	background Color
	start      Color
	end        Color
}

// palette parses the colors of p. p must be normalized.
func (p Params) palette() (palette, error) {
	var pal palette
	var err error
	if pal.stroke, err = ParseHex(p.Color); err != nil {
		return pal, err
	}
	if pal.background, err = ParseHex(p.BackgroundColor); err != nil {
		return pal, err
	}
	if pal.start, err = ParseHex(p.Gradient.Start); err != nil {
		return pal, err
	}
	if pal.end, err = ParseHex(p.Gradient.End); err != nil {
		return pal, err
	}
	return pal, nil
}

// usesBlack reports whether any color that reaches the pen is pure black,
// in which case the background stage must restore it after keying.
func (p Params) usesBlack(pal palette) bool {
	if p.Gradient.Enabled {
		return pal.start == Black || pal.end == Black
	}
	return pal.stroke == Black
}
