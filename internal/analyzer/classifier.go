package analyzer

// SampleStats summarizes one sampling pass over a raster.
type SampleStats struct {
	// UniqueColorRatio is distinct RGB triples divided by samples taken.
	UniqueColorRatio float64

	// EdgeFraction is the share of adjacent sample pairs whose summed
	// absolute channel difference exceeds the edge threshold.
	EdgeFraction float64

	// GradientFraction is the share of pairs whose difference sits
	// between the gradient and edge thresholds.
	GradientFraction float64
}

// Classifier decides whether sampled content is photographic.
// Pluggable so the thresholds can be tuned or replaced without
// touching the search engine.
type Classifier interface {
	IsPhoto(s SampleStats) bool
}

// DefaultClassifier calls content photographic when it shows enough
// color variety and more smooth transitions than hard edges. The
// thresholds are uncalibrated heuristics that work acceptably on
// typical web imagery.
type DefaultClassifier struct {
	// MinUniqueColorRatio below which content is considered graphic.
	// Zero means the default of 0.1.
	MinUniqueColorRatio float64
}

func (c *DefaultClassifier) IsPhoto(s SampleStats) bool {
	minRatio := c.MinUniqueColorRatio
	if minRatio == 0 {
		minRatio = 0.1
	}
	return s.UniqueColorRatio > minRatio && s.GradientFraction > s.EdgeFraction
}
