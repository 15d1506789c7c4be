package motif

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
)

// CanvasSize is the width and height of every raster image, in pixels.
// Drawings that extend beyond it are clipped.
const CanvasSize = 500

// Rasterize replays path onto a white CanvasSize x CanvasSize canvas.
//
// Turtle coordinates have their origin at the canvas center with y up.
// Connected line commands that share color and width are stroked as one
// polyline with round caps and joins.
func Rasterize(path *Path) (*image.NRGBA, error) {
	dc := gg.NewContext(CanvasSize, CanvasSize)
	defer dc.Close()

	dc.ClearWithColor(gg.White)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	r := replayer{dc: dc}
	for _, cmd := range path.Commands() {
		if err := r.apply(cmd); err != nil {
			return nil, err
		}
	}
	if err := r.flush(); err != nil {
		return nil, err
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("%w: flush: %v", ErrGenerationFailed, err)
	}
	return imaging.Clone(dc.Image()), nil
}

// replayer turns path commands into gg polylines.
type replayer struct {
	dc *gg.Context

	x, y  float64 // current point, turtle coordinates
	open  bool    // a polyline is being built
	color Color
	width float64
}

func (r *replayer) apply(cmd Command) error {
	switch cmd.Op {
	case OpMove:
		if err := r.flush(); err != nil {
			return err
		}
		r.x, r.y = cmd.X, cmd.Y
	case OpLine:
		if r.open && (cmd.Color != r.color || cmd.Width != r.width) {
			if err := r.flush(); err != nil {
				return err
			}
		}
		if !r.open {
			r.dc.MoveTo(toCanvas(r.x, r.y))
			r.open = true
			r.color = cmd.Color
			r.width = cmd.Width
		}
		r.dc.LineTo(toCanvas(cmd.X, cmd.Y))
		r.x, r.y = cmd.X, cmd.Y
	}
	return nil
}

func (r *replayer) flush() error {
	if !r.open {
		return nil
	}
	r.open = false
	r.dc.SetColor(r.color.NRGBA())
	r.dc.SetLineWidth(r.width)
	if err := r.dc.Stroke(); err != nil {
		return fmt.Errorf("%w: stroke: %v", ErrGenerationFailed, err)
	}
	return nil
}

// toCanvas maps turtle coordinates to pixel coordinates.
func toCanvas(x, y float64) (float64, float64) {
	const half = CanvasSize / 2
	return half + x, half - y
}
