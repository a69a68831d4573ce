package cmd

import (
	"fmt"

	"github.com/AnyUserName/imgfit/internal/encoder"
	"github.com/spf13/cobra"
)

var encodersCmd = &cobra.Command{
	Use:   "encoders",
	Short: "List available output encoders",
	Long: `Probes each encoder once and lists the output formats this host can
produce. PNG, JPEG and WebP are always available; AVIF requires avifenc
on the PATH (brew install libavif / apt install libavif-bin).`,
	Args: cobra.NoArgs,
	RunE: runEncoders,
}

func init() {
	rootCmd.AddCommand(encodersCmd)
}

func runEncoders(cmd *cobra.Command, args []string) error {
	reg := encoder.NewRegistry()
	for _, f := range encoder.Formats {
		status := "unavailable"
		if reg.Get(f) != nil {
			status = "ok"
		}
		fmt.Printf("  %-5s %s\n", f, status)
	}
	return nil
}
