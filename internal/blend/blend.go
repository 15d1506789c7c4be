// Package blend provides fixed-weight mixing of straight-alpha images.
//
// Operations work on *image.NRGBA (non-premultiplied, 0-255) and expect
// dst and src to have the same bounds; pixels outside the intersection are
// left untouched.
package blend

import (
	"image"
	"math"
)

// Mix linearly interpolates every channel, alpha included, from dst toward
// src by t in place: dst + (src-dst)*t, truncated.
func Mix(dst, src *image.NRGBA, t float64) {
	t = math.Max(0, math.Min(1, t))
	r := dst.Bounds().Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		d := dst.Pix[dst.PixOffset(r.Min.X, y):dst.PixOffset(r.Max.X, y)]
		s := src.Pix[src.PixOffset(r.Min.X, y):src.PixOffset(r.Max.X, y)]
		for i := range d {
			d[i] = uint8(float64(d[i]) + (float64(s[i])-float64(d[i]))*t)
		}
	}
}
