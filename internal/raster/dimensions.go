package raster

import "math"

// FitDimensions computes output width/height for an image of origW x
// origH constrained by optional maxW/maxH (0 = unconstrained).
//
// With preserveAspect, when both bounds are given and the image exceeds
// either, the binding constraint is chosen by comparing the box aspect
// ratio against the image aspect ratio: a box wider than the image's
// shape makes height binding, otherwise width binds. Without
// preserveAspect each side clamps independently, which can distort.
// Results round to the nearest integer and never drop below 1.
func FitDimensions(origW, origH, maxW, maxH int, preserveAspect bool) (int, int) {
	if origW <= 0 || origH <= 0 {
		return atLeastOne(origW), atLeastOne(origH)
	}
	if maxW <= 0 && maxH <= 0 {
		return origW, origH
	}

	if !preserveAspect {
		w, h := origW, origH
		if maxW > 0 && w > maxW {
			w = maxW
		}
		if maxH > 0 && h > maxH {
			h = maxH
		}
		return w, h
	}

	imageRatio := float64(origW) / float64(origH)

	var scale float64 = 1
	switch {
	case maxW > 0 && maxH > 0:
		if origW > maxW || origH > maxH {
			boxRatio := float64(maxW) / float64(maxH)
			if boxRatio > imageRatio {
				// Box is wider than the image: height binds.
				scale = float64(maxH) / float64(origH)
			} else {
				scale = float64(maxW) / float64(origW)
			}
		}
	case maxW > 0:
		if origW > maxW {
			scale = float64(maxW) / float64(origW)
		}
	default:
		if origH > maxH {
			scale = float64(maxH) / float64(origH)
		}
	}

	w := int(math.Round(float64(origW) * scale))
	h := int(math.Round(float64(origH) * scale))
	return atLeastOne(w), atLeastOne(h)
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
