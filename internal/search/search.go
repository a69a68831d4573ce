// Package search finds an encoding quality whose output size lands in a
// target byte window. It treats the encoder as a black box: probe a
// quality, look at the byte count, narrow the range. When no quality
// satisfies the window, the lower bound is progressively relaxed; the
// upper bound never widens.
package search

import (
	"context"
	"errors"
	"fmt"
)

const (
	// maxProbes bounds encode calls per tolerance round. Together with
	// the relaxation ceiling this caps total work per format at a small
	// constant number of encodes.
	maxProbes = 10

	// relaxationStep is how many percentage points the lower-bound
	// reduction grows per round.
	relaxationStep = 5

	// relaxationCeiling is the maximum lower-bound reduction percent.
	relaxationCeiling = 50

	minQuality = 1
	maxQuality = 100
)

// ErrNotFound reports that no quality produced an acceptable size for
// this format. The caller moves on to the next candidate format.
var ErrNotFound = errors.New("no encoding within target window")

// EncodeFunc encodes the raster at the given quality and returns the
// compressed bytes. Called by the engine; any failure marks the format
// as not viable.
type EncodeFunc func(quality int) ([]byte, error)

// Params configures one search run. The caller validates ranges;
// the engine trusts them.
type Params struct {
	// TargetBytes is the desired output size.
	TargetBytes int

	// InitialQuality is the first probe, in [1,100].
	InitialQuality int

	// LowerTolerancePct is the starting lower-bound reduction (>= 10).
	LowerTolerancePct float64

	// UpperTolerancePct is the allowed overshoot (0-50).
	UpperTolerancePct float64

	// StrictUpperLimit forces the upper bound to the target exactly,
	// regardless of UpperTolerancePct.
	StrictUpperLimit bool
}

// Attempt is one accepted encoding: the probed quality and its output.
type Attempt struct {
	Quality int
	Data    []byte
	Size    int
}

// Find runs the tolerance relaxation loop around the binary quality
// search and returns the best in-window attempt. Returns ErrNotFound
// (possibly wrapped around the encoder's failure) when the format
// cannot hit the window at any quality.
func Find(ctx context.Context, encode EncodeFunc, p Params) (*Attempt, error) {
	target := float64(p.TargetBytes)

	// The upper bound is fixed for the whole run; relaxation only ever
	// widens the lower bound.
	upper := target * (1 + p.UpperTolerancePct/100)
	if p.StrictUpperLimit {
		upper = target
	}

	reduction := p.LowerTolerancePct
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lower := target * (1 - reduction/100)

		qs := &qualitySearch{
			encode:  encode,
			lower:   lower,
			upper:   upper,
			floor:   minQuality,
			ceiling: maxQuality,
			quality: clamp(p.InitialQuality, minQuality, maxQuality),
		}
		if err := qs.run(ctx); err != nil {
			return nil, err
		}
		if qs.best != nil {
			return qs.best, nil
		}

		if reduction >= relaxationCeiling {
			break
		}
		reduction += relaxationStep
		if reduction > relaxationCeiling {
			reduction = relaxationCeiling
		}
	}

	// Last resort: minimum quality, accepted only if it stays under the
	// upper bound. The lower bound no longer matters here.
	data, err := encode(minQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if float64(len(data)) <= upper {
		return &Attempt{Quality: minQuality, Data: data, Size: len(data)}, nil
	}
	return nil, ErrNotFound
}

// qualitySearch is one binary search over quality for a fixed window.
type qualitySearch struct {
	encode EncodeFunc

	lower, upper float64 // acceptance window in bytes

	floor, ceiling int // remaining quality range
	quality        int // next probe
	probes         int

	best  *Attempt
	state state
}

// run probes until the state machine leaves searching. The probe budget
// is checked first on every iteration: the in-window bound update is
// asymmetric (floor rises to the probed quality, next probe at the
// midpoint) and can revisit the same quality when floor == ceiling, so
// range collapse alone must not be the only exit.
func (s *qualitySearch) run(ctx context.Context) error {
	for s.state == searching {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.probes >= maxProbes {
			s.finish()
			return nil
		}

		data, err := s.encode(s.quality)
		if err != nil {
			return fmt.Errorf("%w: quality %d: %w", ErrNotFound, s.quality, err)
		}
		s.probes++
		size := float64(len(data))

		switch {
		case size > s.upper:
			// Too large: drop the ceiling below this quality.
			s.ceiling = s.quality - 1
		case size < s.lower:
			// Too small: raise the floor above this quality.
			s.floor = s.quality + 1
		default:
			// In window. Prefer the highest quality that still fits,
			// so keep probing upward from here.
			if s.best == nil || s.quality > s.best.Quality {
				s.best = &Attempt{Quality: s.quality, Data: data, Size: len(data)}
			}
			s.floor = s.quality
		}

		if s.ceiling < s.floor {
			s.finish()
			return nil
		}
		if s.best != nil && s.ceiling-s.floor <= 1 {
			s.state = converged
			return nil
		}
		s.quality = clamp((s.floor+s.ceiling)/2, minQuality, maxQuality)
	}
	return nil
}

// finish resolves the terminal state once probing stops.
func (s *qualitySearch) finish() {
	if s.best != nil {
		s.state = converged
	} else {
		s.state = exhausted
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
