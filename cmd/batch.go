package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/imgfit/internal/encoder"
	"github.com/AnyUserName/imgfit/internal/optimizer"
	"github.com/AnyUserName/imgfit/internal/pipeline"
	"github.com/AnyUserName/imgfit/internal/report"
	"github.com/spf13/cobra"
)

var (
	batchOutDir  string
	batchTarget  int
	batchPreset  string
	batchFormat  string
	batchWorkers int
	batchStrict  bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Fit every image in a directory to the target size",
	Long: `Scans the input directory for images (png, jpg, jpeg, webp, gif,
bmp, tiff), fits each to the target size window in parallel, writes
content-addressed outputs, and emits a JSON report.

Output filenames: <key>.<w>x<h>.<hash>.<ext>`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./imgfit_out", "output directory")
	batchCmd.Flags().IntVarP(&batchTarget, "target-size", "t", 0, "target size in bytes (overrides preset)")
	batchCmd.Flags().StringVarP(&batchPreset, "preset", "p", "web", "options preset")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "auto", "output format: auto, png, jpeg, webp, avif")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	batchCmd.Flags().BoolVar(&batchStrict, "strict", false, "never exceed the target size")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	opts := optimizer.GetPreset(batchPreset).Options()
	if batchTarget > 0 {
		opts.TargetSize = batchTarget
	}
	format, err := encoder.ParseFormat(batchFormat)
	if err != nil {
		return err
	}
	opts.Format = format
	opts.StrictUpperLimit = batchStrict

	logVerbose("input:  %s", absInput)
	logVerbose("output: %s", absOutput)
	logVerbose("target: %s (preset %s)", formatBytes(int64(opts.TargetSize)), batchPreset)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Options:   opts,
		Workers:   batchWorkers,
		Verbose:   verbose,
	})

	r, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	reportPath := filepath.Join(absOutput, "imgfit.report.json")
	if err := report.WriteJSON(r, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printBatchReport(r, time.Since(start))
	return nil
}

func printBatchReport(r *report.Report, elapsed time.Duration) {
	fmt.Println()
	fmt.Printf("  Fitted:      %d images\n", r.Stats.Fitted)
	if r.Stats.Failed > 0 {
		fmt.Printf("  Failed:      %d images\n", r.Stats.Failed)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(r.Stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(r.Stats.TotalOutputBytes))
	if r.Stats.TotalInputBytes > 0 {
		ratio := float64(r.Stats.TotalOutputBytes) / float64(r.Stats.TotalInputBytes) * 100
		fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("  Report:      imgfit.report.json\n")
	fmt.Println()
}
