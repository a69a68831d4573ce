// Package pipeline fits whole directories of images to a target size,
// running the optimizer across a bounded worker pool and collecting the
// outcomes into a JSON report.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/imgfit/internal/encoder"
	"github.com/AnyUserName/imgfit/internal/optimizer"
	"github.com/AnyUserName/imgfit/internal/report"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Options   optimizer.Options
	Workers   int
	Verbose   bool
}

// Pipeline orchestrates batch size fitting.
type Pipeline struct {
	cfg Config
	opt *optimizer.Optimizer
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{
		cfg: cfg,
		opt: optimizer.NewWith(encoder.NewRegistry(), nil, cfg.Verbose),
	}
}

// Run executes the batch and returns the report. Individual file
// failures are recorded in the report; Run only fails outright when
// nothing could be processed at all.
func (p *Pipeline) Run(ctx context.Context) (*report.Report, error) {
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[imgfit] found %d images\n", len(sources))
	}

	entries := make([]report.Entry, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[imgfit] processing: %s\n", s.Key)
			}

			entries[idx] = p.processOne(ctx, s)
		}(i, src)
	}
	wg.Wait()

	r := report.New(p.cfg.Options.TargetSize)
	r.Entries = entries

	failed := 0
	for _, e := range entries {
		if e.Output == nil {
			failed++
			fmt.Fprintf(os.Stderr, "[imgfit] error: %s: %s\n", e.Source.Path, e.Error)
		}
	}
	if failed == len(entries) {
		return nil, fmt.Errorf("all %d images failed to process", failed)
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "[imgfit] warning: %d of %d images had errors\n",
			failed, len(entries))
	}

	r.ComputeStats()
	return r, nil
}
