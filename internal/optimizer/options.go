package optimizer

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/imgfit/internal/encoder"
)

// ErrInvalidOptions reports caller-supplied options that violate their
// stated constraints. Surfaced before any encoding work begins.
var ErrInvalidOptions = errors.New("invalid options")

// Options configures one optimizer run.
type Options struct {
	// TargetSize is the desired output size in bytes. Required, > 0.
	TargetSize int

	// Format is the requested output format. Auto selects from the
	// priority table; anything else is attempted with no fallback.
	Format encoder.Format

	// Quality is the initial probe quality, 1-100.
	Quality int

	// MaxWidth and MaxHeight constrain output dimensions. 0 = none.
	MaxWidth  int
	MaxHeight int

	// PreserveAspect scales to the binding constraint instead of
	// clamping each side independently.
	PreserveAspect bool

	// Effort is the codec-specific compression effort, 0-9.
	Effort int

	// LowerTolerancePct is the starting allowed undershoot, >= 10.
	LowerTolerancePct float64

	// UpperTolerancePct is the allowed overshoot, 0-50.
	UpperTolerancePct float64

	// StrictUpperLimit forces the effective upper tolerance to 0, so
	// the output never exceeds TargetSize.
	StrictUpperLimit bool
}

// DefaultOptions returns the standard configuration for a target size:
// auto format, 10% tolerance both ways, aspect-preserving resize.
func DefaultOptions(targetSize int) Options {
	return Options{
		TargetSize:        targetSize,
		Format:            encoder.Auto,
		Quality:           80,
		PreserveAspect:    true,
		Effort:            encoder.DefaultEffort,
		LowerTolerancePct: 10,
		UpperTolerancePct: 10,
	}
}

// Validate checks all option constraints. Every violation wraps
// ErrInvalidOptions.
func (o Options) Validate() error {
	if o.TargetSize <= 0 {
		return fmt.Errorf("%w: target size must be positive, got %d", ErrInvalidOptions, o.TargetSize)
	}
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("%w: quality must be in [1,100], got %d", ErrInvalidOptions, o.Quality)
	}
	if o.MaxWidth < 0 || o.MaxHeight < 0 {
		return fmt.Errorf("%w: max dimensions must not be negative", ErrInvalidOptions)
	}
	if o.LowerTolerancePct < 10 {
		return fmt.Errorf("%w: lower tolerance must be >= 10%%, got %g", ErrInvalidOptions, o.LowerTolerancePct)
	}
	if o.UpperTolerancePct < 0 || o.UpperTolerancePct > 50 {
		return fmt.Errorf("%w: upper tolerance must be in [0,50], got %g", ErrInvalidOptions, o.UpperTolerancePct)
	}
	if _, err := encoder.ParseFormat(string(o.Format)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// EffectiveUpperTolerance is the overshoot actually applied: strict
// mode always wins over the stored value.
func (o Options) EffectiveUpperTolerance() float64 {
	if o.StrictUpperLimit {
		return 0
	}
	return o.UpperTolerancePct
}
