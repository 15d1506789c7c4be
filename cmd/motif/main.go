// Command motif generates turtle-graphics patterns, blends them and
// serves the HTTP API.
//
// Usage:
//
//	motif [flags]                      render one pattern to a PNG
//	motif combine -i a.png,b.png       blend rendered patterns
//	motif serve -c motif.toml          run the HTTP API
//	motif worker job.json              render one job file (subprocess isolation)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/argp"

	"github.com/gogpu/motif"
	"github.com/gogpu/motif/api"
	"github.com/gogpu/motif/worker"
)

// Generate renders a single pattern. Zero-valued flags keep the defaults
// of the selected mode or the values of the params file.
type Generate struct {
	Params  string `short:"p" desc:"JSON params file"`
	Mode    string `short:"m" desc:"Pattern mode: geometric, fractal or spiral"`
	Type    string `short:"t" desc:"Fractal type: tree, koch, sierpinski or dragon"`
	Output  string `short:"o" default:"motif.png" desc:"Output PNG file"`
	Verbose bool   `short:"v" desc:"Log debug output to stderr"`

	Sides      int     `desc:"Polygon sides"`
	Depth      int     `desc:"Polygon count"`
	Size       float64 `desc:"Base size"`
	Angle      float64 `desc:"Turn angle in degrees"`
	Iterations int     `desc:"Fractal recursion depth"`
	Reduction  float64 `desc:"Tree branch reduction"`
	Turns      int     `desc:"Spiral turns"`
	Increment  float64 `desc:"Spiral growth per turn"`

	Color         string  `short:"c" desc:"Stroke color"`
	Background    string  `short:"b" desc:"Background color"`
	PenWidth      float64 `short:"w" desc:"Pen width"`
	Gradient      bool    `desc:"Enable gradient coloring"`
	GradientStart string  `desc:"Gradient start color"`
	GradientEnd   string  `desc:"Gradient end color"`
	Glow          bool    `desc:"Enable glow"`
	GlowIntensity float64 `desc:"Glow intensity"`
	Mirror        bool    `desc:"Mirror the pattern"`
	Rotations     int     `short:"r" desc:"Rotational copies"`
	Kaleidoscope  bool    `short:"k" desc:"Eight-way kaleidoscope"`
}

// Combine blends two or more images.
type Combine struct {
	Inputs  string  `short:"i" desc:"Comma-separated input images"`
	Mode    string  `short:"m" default:"normal" desc:"Blend mode: normal, multiply, screen or overlay"`
	Opacity float64 `default:"1.0" desc:"Layer opacity"`
	Output  string  `short:"o" default:"combined.png" desc:"Output PNG file"`
}

// Worker renders one job file written by the subprocess runner.
type Worker struct {
	Params string `index:"0" desc:"JSON params file"`
}

func main() {
	root := argp.NewCmd(&Generate{}, "Turtle-graphics pattern generator")
	root.AddCmd(&Combine{}, "combine", "Blend rendered patterns")
	root.AddCmd(&Serve{}, "serve", "Run the HTTP API")
	root.AddCmd(&Worker{}, "worker", "Render one job file")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Generate) Run() error {
	if cmd.Verbose {
		motif.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	p, err := cmd.params()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	img, err := motif.Generate(ctx, p)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, cmd.Output); err != nil {
		return err
	}
	fmt.Println("wrote", cmd.Output)
	return nil
}

// params builds the job parameters from the params file and the flags.
func (cmd *Generate) params() (motif.Params, error) {
	var body []byte
	if cmd.Params != "" {
		data, err := os.ReadFile(cmd.Params)
		if err != nil {
			return motif.Params{}, err
		}
		body = data
	} else {
		data, err := json.Marshal(map[string]string{"mode": cmd.Mode})
		if err != nil {
			return motif.Params{}, err
		}
		body = data
	}
	p, err := api.DecodeParams(body)
	if err != nil {
		return p, err
	}

	if cmd.Mode != "" {
		p.Mode = motif.Mode(cmd.Mode)
	}
	if cmd.Type != "" {
		p.FractalType = motif.FractalType(cmd.Type)
	}
	setInt(&p.Sides, cmd.Sides)
	setInt(&p.Depth, cmd.Depth)
	setFloat(&p.Size, cmd.Size)
	setFloat(&p.Angle, cmd.Angle)
	setInt(&p.Iterations, cmd.Iterations)
	setFloat(&p.Reduction, cmd.Reduction)
	setInt(&p.Turns, cmd.Turns)
	setFloat(&p.Increment, cmd.Increment)
	setString(&p.Color, cmd.Color)
	setString(&p.BackgroundColor, cmd.Background)
	setFloat(&p.PenWidth, cmd.PenWidth)
	setString(&p.Gradient.Start, cmd.GradientStart)
	setString(&p.Gradient.End, cmd.GradientEnd)
	setFloat(&p.Glow.Intensity, cmd.GlowIntensity)
	setInt(&p.Symmetry.RotationCount, cmd.Rotations)
	p.Gradient.Enabled = p.Gradient.Enabled || cmd.Gradient
	p.Glow.Enabled = p.Glow.Enabled || cmd.Glow
	p.Symmetry.Mirror = p.Symmetry.Mirror || cmd.Mirror
	p.Symmetry.Kaleidoscope = p.Symmetry.Kaleidoscope || cmd.Kaleidoscope
	return p.Normalize()
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (cmd *Combine) Run() error {
	if cmd.Inputs == "" {
		return argp.ShowUsage
	}
	mode, err := motif.ParseBlendMode(cmd.Mode)
	if err != nil {
		return err
	}

	var images []image.Image
	for _, name := range strings.Split(cmd.Inputs, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		img, err := imaging.Open(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		images = append(images, img)
	}

	out, err := motif.Combine(images, mode, cmd.Opacity)
	if err != nil {
		return err
	}
	if err := imaging.Save(out, cmd.Output); err != nil {
		return err
	}
	fmt.Println("wrote", cmd.Output)
	return nil
}

// Run renders the job and exits non-zero with the error on stderr, which
// the parent process reports as the job failure.
func (cmd *Worker) Run() error {
	if cmd.Params == "" {
		return argp.ShowUsage
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := worker.RunJobFile(ctx, cmd.Params)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return nil
}
