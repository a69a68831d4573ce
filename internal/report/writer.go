package report

import (
	"encoding/json"
	"os"
	"time"
)

// New creates an empty report for one batch run.
func New(targetSize int) *Report {
	return &Report{
		Version:     SupportedReportVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		TargetSize:  targetSize,
	}
}

// ComputeStats recalculates aggregate statistics from entries.
func (r *Report) ComputeStats() {
	var s Stats
	for _, e := range r.Entries {
		s.TotalInputBytes += e.Source.Size
		if e.Output != nil {
			s.TotalOutputBytes += e.Output.Size
			s.Fitted++
		} else {
			s.Failed++
		}
	}
	r.Stats = s
}

// WriteJSON serializes the report to a JSON file.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
