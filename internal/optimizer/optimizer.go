// Package optimizer drives the size-constrained encoding run: resize
// once, analyze content, build the candidate format sequence, then walk
// it with the quality search engine until one format lands in the
// target window.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/imgfit/internal/analyzer"
	"github.com/AnyUserName/imgfit/internal/encoder"
	"github.com/AnyUserName/imgfit/internal/hasher"
	"github.com/AnyUserName/imgfit/internal/raster"
	"github.com/AnyUserName/imgfit/internal/search"
	"github.com/AnyUserName/imgfit/internal/sequence"
)

// Result is the final encoding chosen for a run. Immutable; owned by
// the caller afterward.
type Result struct {
	// Format actually chosen.
	Format encoder.Format

	// Quality the winning probe used (0 for quality-less codecs).
	Quality int

	// Data is the encoded file: a standard PNG/JPEG/WebP/AVIF stream.
	Data []byte

	// Size is len(Data).
	Size int

	// Width and Height of the encoded output.
	Width, Height int

	// Hash is the xxhash64 content hash of Data (16 hex chars).
	Hash string

	// Characteristics derived from the resized raster.
	Characteristics analyzer.Characteristics

	// Tried lists every format attempted, in order, including the one
	// that succeeded.
	Tried []encoder.Format
}

// NoViableEncodingError reports that every candidate format exhausted
// its tolerance relaxation without a satisfying result.
type NoViableEncodingError struct {
	Tried []encoder.Format
}

func (e *NoViableEncodingError) Error() string {
	names := make([]string, len(e.Tried))
	for i, f := range e.Tried {
		names[i] = string(f)
	}
	return fmt.Sprintf("no viable encoding: tried %s", strings.Join(names, ", "))
}

// Optimizer holds the collaborators shared across runs. Safe for
// concurrent use: runs share only the read-only registry and policy.
type Optimizer struct {
	registry *encoder.Registry
	analyzer *analyzer.Analyzer
	verbose  bool
}

// New creates an optimizer with the default encoder registry and
// classification policy.
func New() *Optimizer {
	return NewWith(encoder.NewRegistry(), nil, false)
}

// NewWith creates an optimizer with explicit collaborators. A nil
// classifier uses the default thresholds.
func NewWith(reg *encoder.Registry, classifier analyzer.Classifier, verbose bool) *Optimizer {
	return &Optimizer{
		registry: reg,
		analyzer: analyzer.New(classifier),
		verbose:  verbose,
	}
}

// Process encodes src into the target size window. srcFormat is the
// decoded source format name ("png", "jpeg", ...), which seeds the
// candidate sequence. Fails with ErrInvalidOptions before any encoding
// work, or with *NoViableEncodingError after the whole sequence is
// exhausted. Cancellation via ctx is all-or-nothing: no partial result.
func (o *Optimizer) Process(ctx context.Context, src *image.NRGBA, srcFormat string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	origW := src.Bounds().Dx()
	origH := src.Bounds().Dy()
	outW, outH := raster.FitDimensions(origW, origH, opts.MaxWidth, opts.MaxHeight, opts.PreserveAspect)

	// Resize once, before format iteration. Every attempt encodes the
	// same raster; src itself is never mutated.
	resized := src
	if outW != origW || outH != origH {
		resized = imaging.Resize(src, outW, outH, imaging.Lanczos)
		o.logf("resized %dx%d -> %dx%d", origW, origH, outW, outH)
	}

	chars := o.analyzer.Analyze(resized)
	candidates := sequence.Build(srcFormat, opts.Format, chars)
	o.logf("characteristics: transparency=%v photo=%v sequence=%v",
		chars.HasTransparency, chars.IsPhoto, candidates)

	params := search.Params{
		TargetBytes:       opts.TargetSize,
		InitialQuality:    opts.Quality,
		LowerTolerancePct: opts.LowerTolerancePct,
		UpperTolerancePct: opts.EffectiveUpperTolerance(),
		StrictUpperLimit:  opts.StrictUpperLimit,
	}

	tried := make([]encoder.Format, 0, len(candidates))
	for _, format := range candidates {
		tried = append(tried, format)

		enc := o.registry.Get(format)
		if enc == nil {
			o.logf("skip %s: no encoder available", format)
			continue
		}

		attempt, err := search.Find(ctx, func(q int) ([]byte, error) {
			return enc.Encode(resized, q, opts.Effort)
		}, params)
		if err != nil {
			if errors.Is(err, search.ErrNotFound) {
				// Format not viable at any quality; next candidate.
				o.logf("%s: %v", format, err)
				continue
			}
			return nil, err
		}

		o.logf("%s: quality=%d size=%d", format, attempt.Quality, attempt.Size)
		return &Result{
			Format:          format,
			Quality:         attempt.Quality,
			Data:            attempt.Data,
			Size:            attempt.Size,
			Width:           outW,
			Height:          outH,
			Hash:            hasher.ContentHash(attempt.Data, 16),
			Characteristics: chars,
			Tried:           tried,
		}, nil
	}

	return nil, &NoViableEncodingError{Tried: tried}
}

// logf prints a verbose diagnostic line to stderr.
func (o *Optimizer) logf(format string, args ...any) {
	if o.verbose {
		fmt.Fprintf(os.Stderr, "[imgfit] "+format+"\n", args...)
	}
}
