package pipeline

import (
	"github.com/AnyUserName/imgfit/internal/encoder"
)

func formatNames(formats []encoder.Format) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
