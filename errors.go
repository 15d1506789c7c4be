package motif

import "errors"

// Error kinds surfaced by Generate, Combine and the worker runners.
// Callers match them with errors.Is; the wrapped message carries the detail.
var (
	// ErrInvalidParameters reports an unsupported mode, fractal type,
	// blend mode or malformed color.
	ErrInvalidParameters = errors.New("motif: invalid parameters")

	// ErrGenerationFailed reports a job that did not produce an image:
	// a worker exited non-zero, its output is missing, or it timed out.
	ErrGenerationFailed = errors.New("motif: generation failed")

	// ErrInsufficientImages reports a combine request with fewer than two images.
	ErrInsufficientImages = errors.New("motif: at least two images are required")

	// ErrDecodeFailed reports a malformed base64 or image payload.
	ErrDecodeFailed = errors.New("motif: decode failed")
)
