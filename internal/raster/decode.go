// Package raster turns source bytes into the NRGBA pixel buffers the
// optimizer works on, and owns the dimension-fitting math.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode reports an unreadable or corrupt source image. Fatal for
// the run; there is no retry.
var ErrDecode = errors.New("decode image")

// Decode turns raw bytes into an NRGBA raster plus the detected source
// format name ("png", "jpeg", "webp", ...). The stdlib registry covers
// png/jpeg/gif plus the x/image formats; chai2010/webp is the fallback
// for webp files the x/image decoder rejects (lossy with alpha).
func Decode(data []byte) (*image.NRGBA, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		var werr error
		if img, werr = webp.Decode(bytes.NewReader(data)); werr == nil {
			return ToNRGBA(img), "webp", nil
		}
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return ToNRGBA(img), format, nil
}

// ToNRGBA converts any image to non-premultiplied RGBA8. Returns the
// input unchanged when it already is one.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
