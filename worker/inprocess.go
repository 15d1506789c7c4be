package worker

import (
	"context"
	"image"

	"github.com/gogpu/motif"
)

// InProcess renders jobs in the calling process. Every job gets its own
// pen and canvas, so jobs need no further isolation.
type InProcess struct{}

// Run implements Runner.
func (InProcess) Run(ctx context.Context, p motif.Params) (*image.NRGBA, error) {
	return motif.Generate(ctx, p)
}
