package encoder

import (
	"bytes"
	"image"
	"image/png"
)

// PNGEncoder encodes images to PNG using Go's standard library.
// PNG is lossless, so quality is ignored; effort selects the deflate
// compression level.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() Format    { return PNG }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) Available() bool   { return true }

func (e *PNGEncoder) Encode(img image.Image, _, effort int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(512 * 1024) // pre-alloc 512KB

	enc := &png.Encoder{CompressionLevel: pngLevel(effort)}
	err := enc.Encode(&buf, img)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pngLevel maps the 0-9 effort scale onto the stdlib's three real
// compression levels.
func pngLevel(effort int) png.CompressionLevel {
	switch {
	case effort <= 2:
		return png.BestSpeed
	case effort <= 5:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
