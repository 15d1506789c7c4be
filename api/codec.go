package api

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP for uploaded images

	"github.com/gogpu/motif"
)

const pngDataURLPrefix = "data:image/png;base64,"

// EncodeDataURL encodes img as a PNG data URL.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", err
	}
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURL decodes a base64 image, with or without a data URL
// header. PNG, JPEG, GIF, BMP, TIFF and WebP are accepted.
func DecodeDataURL(s string) (image.Image, error) {
	payload := strings.TrimSpace(s)
	if strings.HasPrefix(payload, "data:") {
		i := strings.Index(payload, ",")
		if i < 0 {
			return nil, fmt.Errorf("%w: malformed data URL", motif.ErrDecodeFailed)
		}
		if !strings.HasSuffix(payload[:i], ";base64") {
			return nil, fmt.Errorf("%w: data URL is not base64", motif.ErrDecodeFailed)
		}
		payload = payload[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", motif.ErrDecodeFailed, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: image: %v", motif.ErrDecodeFailed, err)
	}
	return img, nil
}
