package motif

import (
	"context"
	"fmt"
	"image"
	"time"
)

// Generate renders params into a CanvasSize x CanvasSize image.
//
// The parameters are normalized first, so Generate is safe to call with
// unchecked input. Each call owns its pen and canvas; concurrent calls
// share nothing. ctx is checked between pipeline stages.
func Generate(ctx context.Context, params Params) (*image.NRGBA, error) {
	start := time.Now()

	p, err := params.Normalize()
	if err != nil {
		return nil, err
	}
	pal, err := p.palette()
	if err != nil {
		return nil, err
	}

	pattern, err := trace(p, pal)
	if err != nil {
		return nil, err
	}
	if err := canceled(ctx); err != nil {
		return nil, err
	}

	raster, err := Rasterize(pattern.Path)
	if err != nil {
		return nil, err
	}
	if err := canceled(ctx); err != nil {
		return nil, err
	}

	out := Background(raster, pal.background, p.usesBlack(pal), p.Glow)

	Logger().Debug("motif: generated image",
		"mode", p.Mode,
		"segments", pattern.Path.Segments(),
		"elapsed", time.Since(start))
	return out, nil
}

func canceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return nil
}
