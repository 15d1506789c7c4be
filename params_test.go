package motif

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultParamsAreNormal(t *testing.T) {
	for _, mode := range []Mode{ModeGeometric, ModeFractal, ModeSpiral} {
		t.Run(string(mode), func(t *testing.T) {
			p := DefaultParams(mode)
			got, err := p.Normalize()
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			p.Gradient.Start = DefaultColorHex
			p.Gradient.End = DefaultGradientEndHex
			if got != p {
				t.Errorf("Normalize(DefaultParams(%s)) = %+v, want %+v", mode, got, p)
			}
		})
	}
}

func TestNormalizeClamps(t *testing.T) {
	tests := []struct {
		name  string
		in    Params
		check func(Params) bool
	}{
		{
			name:  "sides above max",
			in:    Params{Mode: ModeGeometric, Sides: 100, Depth: 10},
			check: func(p Params) bool { return p.Sides == 12 },
		},
		{
			name:  "depth below min",
			in:    Params{Mode: ModeGeometric, Sides: 5},
			check: func(p Params) bool { return p.Depth == 1 },
		},
		{
			name:  "fractal size",
			in:    Params{Mode: ModeFractal, Size: 1000},
			check: func(p Params) bool { return p.Size == 200 },
		},
		{
			name:  "reduction",
			in:    Params{Mode: ModeFractal, Reduction: 0.1},
			check: func(p Params) bool { return p.Reduction == 0.3 },
		},
		{
			name:  "iterations",
			in:    Params{Mode: ModeFractal, Iterations: 20},
			check: func(p Params) bool { return p.Iterations == 8 },
		},
		{
			name:  "koch iterations",
			in:    Params{Mode: ModeFractal, FractalType: FractalKoch, Iterations: 8},
			check: func(p Params) bool { return p.Iterations == KochMaxIterations },
		},
		{
			name:  "sierpinski iterations",
			in:    Params{Mode: ModeFractal, FractalType: FractalSierpinski, Iterations: 8},
			check: func(p Params) bool { return p.Iterations == SierpinskiMaxIterations },
		},
		{
			name:  "dragon iterations",
			in:    Params{Mode: ModeFractal, FractalType: FractalDragon, Iterations: 8},
			check: func(p Params) bool { return p.Iterations == 8 },
		},
		{
			name:  "spiral angle",
			in:    Params{Mode: ModeSpiral, Angle: 0},
			check: func(p Params) bool { return p.Angle == 1 },
		},
		{
			name:  "NaN size",
			in:    Params{Mode: ModeSpiral, Size: math.NaN()},
			check: func(p Params) bool { return p.Size == 5 },
		},
		{
			name:  "glow intensity",
			in:    Params{Glow: Glow{Enabled: true, Intensity: 5}},
			check: func(p Params) bool { return p.Glow.Intensity == 1 },
		},
		{
			name:  "rotation count",
			in:    Params{Symmetry: Symmetry{RotationCount: 30}},
			check: func(p Params) bool { return p.Symmetry.RotationCount == 12 },
		},
		{
			name:  "empty mode is geometric",
			in:    Params{},
			check: func(p Params) bool { return p.Mode == ModeGeometric },
		},
		{
			name:  "empty fractal type is tree",
			in:    Params{Mode: ModeFractal},
			check: func(p Params) bool { return p.FractalType == FractalTree },
		},
		{
			name: "gradient start follows stroke",
			in:   Params{Color: "#123456"},
			check: func(p Params) bool {
				return p.Gradient.Start == "#123456" && p.Gradient.End == DefaultGradientEndHex
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if !tt.check(got) {
				t.Errorf("Normalize() = %+v", got)
			}
		})
	}
}

func TestNormalizeInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   Params
	}{
		{"unknown mode", Params{Mode: "hexagon"}},
		{"unknown fractal", Params{Mode: ModeFractal, FractalType: "mandelbrot"}},
		{"bad color", Params{Color: "#zzzzzz"}},
		{"bad background", Params{BackgroundColor: "nope"}},
		{"bad gradient end", Params{Gradient: Gradient{Enabled: true, End: "#12"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.in.Normalize(); !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("Normalize() error = %v, want ErrInvalidParameters", err)
			}
		})
	}
}

func TestRangeClamp(t *testing.T) {
	r := Range{1, 10}
	tests := []struct {
		in, want float64
	}{
		{0, 1}, {5, 5}, {11, 10}, {math.Inf(1), 10}, {math.Inf(-1), 1}, {math.NaN(), 1},
	}
	for _, tt := range tests {
		if got := r.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUsesBlack(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want bool
	}{
		{"default", Params{}, false},
		{"black stroke", Params{Color: "#000000"}, true},
		{"black gradient end", Params{Gradient: Gradient{Enabled: true, End: "#000"}}, true},
		{"black stroke hidden by gradient", Params{Color: "#000000", Gradient: Gradient{Enabled: true, Start: "#ffffff"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.in.Normalize()
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			pal, err := p.palette()
			if err != nil {
				t.Fatalf("palette() error = %v", err)
			}
			if got := p.usesBlack(pal); got != tt.want {
				t.Errorf("usesBlack() = %v, want %v", got, tt.want)
			}
		})
	}
}
