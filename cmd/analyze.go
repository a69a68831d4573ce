package cmd

import (
	"fmt"
	"os"

	"github.com/AnyUserName/imgfit/internal/analyzer"
	"github.com/AnyUserName/imgfit/internal/raster"
	"github.com/AnyUserName/imgfit/internal/sequence"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Show content characteristics and the candidate format order",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	img, srcFormat, err := raster.Decode(data)
	if err != nil {
		return err
	}

	chars := analyzer.New(nil).Analyze(img)
	candidates := sequence.Build(srcFormat, "auto", chars)

	kind := "graphic"
	if chars.IsPhoto {
		kind = "photo"
	}

	fmt.Printf("  File:         %s\n", args[0])
	fmt.Printf("  Format:       %s\n", srcFormat)
	fmt.Printf("  Dimensions:   %dx%d\n", img.Bounds().Dx(), img.Bounds().Dy())
	fmt.Printf("  Size:         %s\n", formatBytes(int64(len(data))))
	fmt.Printf("  Transparency: %v\n", chars.HasTransparency)
	fmt.Printf("  Content:      %s\n", kind)
	fmt.Printf("  Sequence:     %v\n", candidates)
	return nil
}
