package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/imgfit/internal/optimizer"
	"github.com/AnyUserName/imgfit/internal/raster"
	"github.com/AnyUserName/imgfit/internal/report"
)

// processOne handles a single source image: read, decode, fit, write.
// Failures are captured in the entry, never propagated; one bad file
// must not sink the batch.
func (p *Pipeline) processOne(ctx context.Context, src Source) report.Entry {
	entry := report.Entry{
		Source: report.Source{Path: src.RelPath, Size: src.Size},
	}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		entry.Error = fmt.Sprintf("read: %v", err)
		return entry
	}

	img, format, err := raster.Decode(data)
	if err != nil {
		entry.Error = fmt.Sprintf("decode: %v", err)
		return entry
	}
	entry.Source.Format = format
	entry.Source.Width = img.Bounds().Dx()
	entry.Source.Height = img.Bounds().Dy()

	res, err := p.opt.Process(ctx, img, format, p.cfg.Options)
	if err != nil {
		var nv *optimizer.NoViableEncodingError
		if errors.As(err, &nv) {
			entry.Tried = formatNames(nv.Tried)
		}
		entry.Error = err.Error()
		return entry
	}
	entry.Tried = formatNames(res.Tried)

	// Content-addressed output name: key.WxH.hash.ext
	fileName := fmt.Sprintf("%s.%dx%d.%s.%s",
		filepath.Base(src.Key), res.Width, res.Height, res.Hash[:8], res.Format)
	keyDir := filepath.Dir(src.Key)
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(p.cfg.OutputDir, keyDir), 0o755); err != nil {
			entry.Error = fmt.Sprintf("mkdir: %v", err)
			return entry
		}
	}
	outPath := filepath.Join(p.cfg.OutputDir, relPath)
	if err := os.WriteFile(outPath, res.Data, 0o644); err != nil {
		entry.Error = fmt.Sprintf("write %s: %v", relPath, err)
		return entry
	}

	entry.Output = &report.Output{
		Format:  string(res.Format),
		Quality: res.Quality,
		Width:   res.Width,
		Height:  res.Height,
		Size:    int64(res.Size),
		Hash:    res.Hash,
		Path:    relPath,
	}
	return entry
}
