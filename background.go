package motif

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Chroma key thresholds.
const (
	// keyThreshold is the minimum value of every channel for a pixel to be
	// treated as background.
	keyThreshold = 250
	// keyGain scales the distance from white into alpha on anti-aliased
	// edges.
	keyGain = 50
	// blackThreshold is the maximum value of every channel for a pixel to
	// be restored to pure black.
	blackThreshold = 5
	// softenSigma is the blur applied after keying.
	softenSigma = 0.5
)

// Chromakey makes the white background of a raster transparent.
//
// A pixel whose channels are all >= 250 is background: pure white gets
// alpha 0 and anything else gets min(255, 50*max(255-R, 255-G, 255-B)) so
// anti-aliased edges fade out. All other pixels become opaque. When
// restoreBlack is set, opaque pixels with every channel <= 5 are turned
// back into pure black.
func Chromakey(img image.Image, restoreBlack bool) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		if c.R >= keyThreshold && c.G >= keyThreshold && c.B >= keyThreshold {
			c.A = edgeAlpha(c.R, c.G, c.B)
			return c
		}
		if restoreBlack && c.R <= blackThreshold && c.G <= blackThreshold && c.B <= blackThreshold {
			return color.NRGBA{A: 255}
		}
		c.A = 255
		return c
	})
}

func edgeAlpha(r, g, b uint8) uint8 {
	d := max(255-r, 255-g, 255-b)
	if d == 0 {
		return 0
	}
	return uint8(min(255, keyGain*int(d)))
}

// Soften applies the small Gaussian blur used to hide keying artifacts.
func Soften(img image.Image) *image.NRGBA {
	return imaging.Blur(img, softenSigma)
}

// Flatten composites img over a solid bg canvas of the same size and
// returns the opaque result.
func Flatten(img image.Image, bg Color) *image.NRGBA {
	b := img.Bounds()
	canvas := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg.NRGBA()), image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), img, b.Min, draw.Over)
	return canvas
}

// Opaque returns img as an opaque NRGBA image, dropping any alpha.
func Opaque(img image.Image) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.A = 255
		return c
	})
}

// Background is the post-rasterization stage of Generate. A white
// background without glow needs no keying; otherwise the strokes are
// keyed out, softened, optionally given a glow and flattened onto bg.
func Background(img image.Image, bg Color, restoreBlack bool, glow Glow) *image.NRGBA {
	if bg == White && !glow.Enabled {
		return Opaque(img)
	}
	fg := Soften(Chromakey(img, restoreBlack))
	if glow.Enabled {
		fg = ApplyGlow(fg, glow.Intensity)
	}
	return Flatten(fg, bg)
}
