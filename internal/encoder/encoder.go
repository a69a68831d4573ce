package encoder

import (
	"fmt"
	"image"
	"strings"
)

// Format identifies an output image format.
type Format string

const (
	// Auto defers format selection to the content analyzer and sequencer.
	Auto Format = "auto"
	PNG  Format = "png"
	JPEG Format = "jpeg"
	WebP Format = "webp"
	AVIF Format = "avif"
)

// Formats lists all concrete output formats in default priority order.
var Formats = []Format{AVIF, WebP, JPEG, PNG}

// ParseFormat parses a user-supplied format name. "auto" and the empty
// string both mean automatic selection.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return Auto, nil
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "webp":
		return WebP, nil
	case "avif":
		return AVIF, nil
	}
	return "", fmt.Errorf("unknown format %q (want auto, png, jpeg, webp or avif)", s)
}

// Family normalizes a decoded source format name to one of the known
// families. Unknown formats (gif, bmp, tiff, ...) return the empty Format,
// which the sequencer treats as "other".
func Family(s string) Format {
	switch strings.ToLower(s) {
	case "png":
		return PNG
	case "jpeg", "jpg":
		return JPEG
	case "webp":
		return WebP
	case "avif":
		return AVIF
	}
	return ""
}

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format this encoder produces.
	Format() Format

	// Encode converts the image to bytes at the given quality (1-100).
	// Effort is the codec-specific compression effort; higher means
	// slower but smaller output. Lossless codecs may ignore quality.
	Encode(img image.Image, quality, effort int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// External encoders (avifenc) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}

// DefaultEffort is used when the caller does not set an effort level.
const DefaultEffort = 6

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
