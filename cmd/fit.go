package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnyUserName/imgfit/internal/encoder"
	"github.com/AnyUserName/imgfit/internal/optimizer"
	"github.com/AnyUserName/imgfit/internal/raster"
	"github.com/spf13/cobra"
)

var (
	fitOut       string
	fitTarget    int
	fitPreset    string
	fitFormat    string
	fitQuality   int
	fitMaxWidth  int
	fitMaxHeight int
	fitNoAspect  bool
	fitEffort    int
	fitLowerTol  float64
	fitUpperTol  float64
	fitStrict    bool
)

var fitCmd = &cobra.Command{
	Use:   "fit <image>",
	Short: "Encode one image into the target size window",
	Long: `Decodes the image, resizes it to the max dimensions, analyzes its
content (transparency, photo vs graphic), and tries candidate output
formats in priority order until one hits the target size window.

With --format the chosen format is forced and no fallback happens.`,
	Args: cobra.ExactArgs(1),
	RunE: runFit,
}

func init() {
	fitCmd.Flags().StringVarP(&fitOut, "out", "o", "", "output file (default: <input>.fitted.<ext>)")
	fitCmd.Flags().IntVarP(&fitTarget, "target-size", "t", 0, "target size in bytes (overrides preset)")
	fitCmd.Flags().StringVarP(&fitPreset, "preset", "p", "web", "options preset (thumbnail, web, strict-web, email)")
	fitCmd.Flags().StringVarP(&fitFormat, "format", "f", "auto", "output format: auto, png, jpeg, webp, avif")
	fitCmd.Flags().IntVarP(&fitQuality, "quality", "q", 0, "initial quality probe 1-100 (0 = preset default)")
	fitCmd.Flags().IntVar(&fitMaxWidth, "max-width", 0, "max output width (0 = preset default)")
	fitCmd.Flags().IntVar(&fitMaxHeight, "max-height", 0, "max output height (0 = preset default)")
	fitCmd.Flags().BoolVar(&fitNoAspect, "no-preserve-aspect", false, "clamp width/height independently")
	fitCmd.Flags().IntVar(&fitEffort, "effort", encoder.DefaultEffort, "compression effort 0-9")
	fitCmd.Flags().Float64Var(&fitLowerTol, "lower-tolerance", 10, "allowed undershoot percent (>= 10)")
	fitCmd.Flags().Float64Var(&fitUpperTol, "upper-tolerance", 10, "allowed overshoot percent (0-50)")
	fitCmd.Flags().BoolVar(&fitStrict, "strict", false, "never exceed the target size")
	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	start := time.Now()

	opts, err := buildFitOptions()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	img, srcFormat, err := raster.Decode(data)
	if err != nil {
		return err
	}
	logVerbose("input: %s (%s, %dx%d, %s)",
		inputPath, srcFormat, img.Bounds().Dx(), img.Bounds().Dy(),
		formatBytes(int64(len(data))))

	opt := optimizer.NewWith(encoder.NewRegistry(), nil, verbose)
	res, err := opt.Process(cmd.Context(), img, srcFormat, opts)
	if err != nil {
		return err
	}

	outPath := fitOut
	if outPath == "" {
		ext := filepath.Ext(inputPath)
		outPath = strings.TrimSuffix(inputPath, ext) + ".fitted." + string(res.Format)
	}
	if err := os.WriteFile(outPath, res.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printFitReport(inputPath, outPath, int64(len(data)), res, time.Since(start))
	return nil
}

// buildFitOptions expands the preset and applies flag overrides.
func buildFitOptions() (optimizer.Options, error) {
	opts := optimizer.GetPreset(fitPreset).Options()

	if fitTarget > 0 {
		opts.TargetSize = fitTarget
	}
	format, err := encoder.ParseFormat(fitFormat)
	if err != nil {
		return opts, err
	}
	opts.Format = format
	if fitQuality > 0 {
		opts.Quality = fitQuality
	}
	if fitMaxWidth > 0 {
		opts.MaxWidth = fitMaxWidth
	}
	if fitMaxHeight > 0 {
		opts.MaxHeight = fitMaxHeight
	}
	opts.PreserveAspect = !fitNoAspect
	opts.Effort = fitEffort
	opts.LowerTolerancePct = fitLowerTol
	opts.UpperTolerancePct = fitUpperTol
	opts.StrictUpperLimit = fitStrict
	return opts, nil
}

func printFitReport(inPath, outPath string, inSize int64, res *optimizer.Result, elapsed time.Duration) {
	saved := float64(0)
	if inSize > 0 {
		saved = (1 - float64(res.Size)/float64(inSize)) * 100
	}
	tried := make([]string, len(res.Tried))
	for i, f := range res.Tried {
		tried[i] = string(f)
	}

	fmt.Printf("  Input:    %s (%s)\n", inPath, formatBytes(inSize))
	fmt.Printf("  Output:   %s\n", outPath)
	fmt.Printf("  Format:   %s (tried: %s)\n", res.Format, strings.Join(tried, ", "))
	if res.Quality > 0 {
		fmt.Printf("  Quality:  %d\n", res.Quality)
	}
	fmt.Printf("  Size:     %s (%+.1f%%)\n", formatBytes(int64(res.Size)), -saved)
	fmt.Printf("  Pixels:   %dx%d\n", res.Width, res.Height)
	fmt.Printf("  Hash:     %s\n", res.Hash)
	fmt.Printf("  Time:     %s\n", elapsed.Round(time.Millisecond))
}
