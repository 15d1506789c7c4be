package motif

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/gogpu/motif/internal/blend"
)

// BlendMode selects how Combine merges each image into the result.
type BlendMode string

// Supported blend modes.
//
// Multiply and Screen are fixed-weight linear mixes rather than the
// separable blend functions of the same name, and Overlay composites
// exactly like Normal.
const (
	BlendNormal   BlendMode = "normal"
	BlendMultiply BlendMode = "multiply"
	BlendScreen   BlendMode = "screen"
	BlendOverlay  BlendMode = "overlay"
)

// Linear mix weights of the incoming image.
const (
	multiplyWeight = 0.5
	screenWeight   = 0.6
)

// ParseBlendMode parses a blend mode name. The empty string is BlendNormal.
func ParseBlendMode(s string) (BlendMode, error) {
	switch m := BlendMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return BlendNormal, nil
	case BlendNormal, BlendMultiply, BlendScreen, BlendOverlay:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unsupported blend mode %q", ErrInvalidParameters, s)
	}
}

// Combine merges two or more images into one CanvasSize x CanvasSize image.
//
// Every image is resized to the canvas with a Lanczos filter. The first
// one is the starting accumulator; each following image has its alpha
// scaled by opacity (clamped to [0, 1]) and is merged according to mode.
func Combine(images []image.Image, mode BlendMode, opacity float64) (*image.NRGBA, error) {
	if len(images) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientImages, len(images))
	}
	mode, err := ParseBlendMode(string(mode))
	if err != nil {
		return nil, err
	}
	for i, img := range images {
		if img == nil {
			return nil, fmt.Errorf("%w: image %d is nil", ErrInvalidParameters, i)
		}
	}
	opacity = Range{0, 1}.Clamp(opacity)

	acc := fitCanvas(images[0])
	for _, img := range images[1:] {
		layer := fitCanvas(img)
		switch mode {
		case BlendMultiply:
			blend.Mix(acc, fadeAlpha(layer, opacity), multiplyWeight)
		case BlendScreen:
			blend.Mix(acc, fadeAlpha(layer, opacity), screenWeight)
		default:
			acc = imaging.Overlay(acc, layer, image.Point{}, opacity)
		}
	}
	Logger().Debug("motif: combined images", "count", len(images), "mode", mode, "opacity", opacity)
	return acc, nil
}

// fitCanvas returns a copy of img at canvas size with its origin at (0, 0).
func fitCanvas(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == CanvasSize && b.Dy() == CanvasSize {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, CanvasSize, CanvasSize, imaging.Lanczos)
}

// fadeAlpha returns img with its alpha multiplied by f, truncated.
func fadeAlpha(img image.Image, f float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.A = uint8(float64(c.A) * f)
		return c
	})
}
