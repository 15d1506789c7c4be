package motif

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// glowLayer is one blurred, brightened copy of the foreground.
type glowLayer struct {
	sigma float64
	base  float64 // brightness at zero intensity
	gain  float64 // brightness added per unit of intensity
}

// glowLayers are listed back to front.
var glowLayers = [...]glowLayer{
	{sigma: 10, base: 1.0, gain: 0.5},
	{sigma: 5, base: 1.1, gain: 0.4},
	{sigma: 2, base: 1.2, gain: 0.3},
}

// ApplyGlow gives the strokes of a transparent image a neon glow.
//
// Three copies are blurred with increasing sharpness and brightened by
// base+intensity*gain, composited from the widest to the sharpest, and
// the untouched image is composited on top. intensity is clamped to
// [0.1, 1].
func ApplyGlow(img image.Image, intensity float64) *image.NRGBA {
	k := GlowIntensityRange.Clamp(intensity)
	src := imaging.Clone(img)

	var out *image.NRGBA
	for _, l := range glowLayers {
		layer := Brighten(imaging.Blur(src, l.sigma), l.base+k*l.gain)
		if out == nil {
			out = layer
			continue
		}
		draw.Draw(out, out.Bounds(), layer, image.Point{}, draw.Over)
	}
	draw.Draw(out, out.Bounds(), src, image.Point{}, draw.Over)
	return out
}

// Brighten scales the color channels by factor, clamping at 255 and
// truncating. Alpha is left unchanged.
func Brighten(img image.Image, factor float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: scale8(c.R, factor),
			G: scale8(c.G, factor),
			B: scale8(c.B, factor),
			A: c.A,
		}
	})
}

func scale8(v uint8, f float64) uint8 {
	return uint8(math.Min(255, math.Max(0, float64(v)*f)))
}
