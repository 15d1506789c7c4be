package api

import (
	"encoding/base64"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/motif"
)

func TestDataURLRoundTrip(t *testing.T) {
	src := imaging.New(3, 2, color.NRGBA{10, 20, 30, 255})
	url, err := EncodeDataURL(src)
	require.NoError(t, err)
	assert.Contains(t, url, "data:image/png;base64,")

	got, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
	r, g, b, _ := got.At(2, 1).RGBA()
	assert.Equal(t, []uint32{10, 20, 30}, []uint32{r >> 8, g >> 8, b >> 8})

	// A bare base64 payload is accepted too.
	bare := url[len("data:image/png;base64,"):]
	_, err = DecodeDataURL(bare)
	assert.NoError(t, err)
}

func TestDecodeDataURLErrors(t *testing.T) {
	for _, in := range []string{
		"data:image/png;base64",
		"data:image/png,plain",
		"!!!",
		base64.StdEncoding.EncodeToString([]byte("not an image")),
	} {
		_, err := DecodeDataURL(in)
		assert.ErrorIs(t, err, motif.ErrDecodeFailed, in)
	}
}
