// Package analyzer inspects decoded rasters and reports the content
// characteristics that drive output format selection: whether the image
// uses transparency, and whether it looks photographic or graphic
// (screenshots, text, flat-color artwork).
package analyzer

import (
	"image"
)

// Characteristics is the analyzer's verdict for one raster. Computed
// once per optimizer run and read-only afterward.
type Characteristics struct {
	// HasTransparency reports that at least one sampled pixel has an
	// alpha value below full opacity.
	HasTransparency bool

	// IsPhoto reports photographic content (smooth gradients, many
	// distinct colors) as opposed to graphics with hard edges.
	IsPhoto bool
}

// Analyzer derives Characteristics from a raster. The zero value uses
// the default classification policy.
type Analyzer struct {
	classifier Classifier
}

// New creates an analyzer with the given classification policy.
// A nil classifier falls back to DefaultClassifier.
func New(c Classifier) *Analyzer {
	if c == nil {
		c = &DefaultClassifier{}
	}
	return &Analyzer{classifier: c}
}

// Analyze samples the raster and returns its characteristics.
// Deterministic for a given raster: sampling strides depend only on
// the pixel count. No side effects.
func (a *Analyzer) Analyze(img *image.NRGBA) Characteristics {
	c := a.classifier
	if c == nil {
		c = &DefaultClassifier{}
	}
	return Characteristics{
		HasTransparency: hasTransparency(img),
		IsPhoto:         c.IsPhoto(sampleStats(img)),
	}
}

// hasTransparency samples roughly 1% of pixels at a fixed stride and
// reports whether any sampled alpha is below 255. A statistical sample,
// not an exhaustive scan: transparent regions that fall entirely
// between strides are missed, an accepted trade-off on large images.
func hasTransparency(img *image.NRGBA) bool {
	total := img.Bounds().Dx() * img.Bounds().Dy()
	if total == 0 {
		return false
	}

	samples := total / 100
	if samples < 1 {
		samples = 1
	}
	stride := total / samples

	for i := 0; i < total; i += stride {
		if img.Pix[i*4+3] < 255 {
			return true
		}
	}
	return false
}

// sampleStats walks up to 10,000 pixels at a fixed stride and collects
// the signals the classifier needs: distinct RGB triples (alpha
// ignored), and for each adjacent sample pair the summed absolute
// channel difference, bucketed into edges (>100) and gradients
// ((10,100]).
func sampleStats(img *image.NRGBA) SampleStats {
	total := img.Bounds().Dx() * img.Bounds().Dy()
	if total == 0 {
		return SampleStats{}
	}

	samples := total
	if samples > 10000 {
		samples = 10000
	}
	stride := total / samples

	unique := make(map[uint32]struct{}, samples)
	var taken, edges, gradients int
	var prevR, prevG, prevB int
	havePrev := false

	for i := 0; i < total; i += stride {
		off := i * 4
		r := int(img.Pix[off])
		g := int(img.Pix[off+1])
		b := int(img.Pix[off+2])

		unique[uint32(r)<<16|uint32(g)<<8|uint32(b)] = struct{}{}

		if havePrev {
			diff := abs(r-prevR) + abs(g-prevG) + abs(b-prevB)
			if diff > 100 {
				edges++
			} else if diff > 10 {
				gradients++
			}
		}
		prevR, prevG, prevB = r, g, b
		havePrev = true
		taken++
	}

	if taken == 0 {
		return SampleStats{}
	}
	stats := SampleStats{
		UniqueColorRatio: float64(len(unique)) / float64(taken),
	}
	if taken > 1 {
		pairs := float64(taken - 1)
		stats.EdgeFraction = float64(edges) / pairs
		stats.GradientFraction = float64(gradients) / pairs
	}
	return stats
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
