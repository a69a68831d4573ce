package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestReportRoundtrip(t *testing.T) {
	r := New(50000)
	r.Entries = append(r.Entries, Entry{
		Source: Source{
			Path: "photos/cat.jpg", Format: "jpeg",
			Width: 800, Height: 600, Size: 150000,
		},
		Output: &Output{
			Format: "webp", Quality: 72, Width: 800, Height: 600,
			Size: 48211, Hash: "abcd1234ef567890",
			Path: "photos/cat.800x600.abcd1234.webp",
		},
		Tried: []string{"jpeg", "webp"},
	})
	r.Entries = append(r.Entries, Entry{
		Source: Source{Path: "broken.png", Size: 10},
		Error:  "decode: unexpected EOF",
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "imgfit.report.json")
	if err := WriteJSON(r, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var r2 Report
	if err := json.Unmarshal(data, &r2); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if r2.Version != SupportedReportVersion {
		t.Errorf("version: got %d, want %d", r2.Version, SupportedReportVersion)
	}
	if r2.TargetSize != 50000 {
		t.Errorf("target_size: got %d", r2.TargetSize)
	}
	if len(r2.Entries) != 2 {
		t.Fatalf("entries: got %d", len(r2.Entries))
	}
	if r2.Entries[0].Output == nil || r2.Entries[0].Output.Format != "webp" {
		t.Errorf("first entry output: got %+v", r2.Entries[0].Output)
	}
	if r2.Entries[1].Output != nil {
		t.Error("failed entry should have no output")
	}
	if r2.Entries[1].Error == "" {
		t.Error("failed entry should carry its error")
	}

	// Stats computed at write time.
	if r2.Stats.Fitted != 1 || r2.Stats.Failed != 1 {
		t.Errorf("stats: got %+v", r2.Stats)
	}
	if r2.Stats.TotalInputBytes != 150010 {
		t.Errorf("total input: got %d", r2.Stats.TotalInputBytes)
	}
	if r2.Stats.TotalOutputBytes != 48211 {
		t.Errorf("total output: got %d", r2.Stats.TotalOutputBytes)
	}
}

func TestReportIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"generated_at": "2026-01-01T00:00:00Z",
		"target_size": 1000,
		"future_field": true,
		"entries": [],
		"stats": { "total_input_bytes": 0, "total_output_bytes": 0, "fitted": 0, "new_stat": 7 }
	}`

	var r Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if r.Version != 1 || r.TargetSize != 1000 {
		t.Errorf("parsed: %+v", r)
	}
}
