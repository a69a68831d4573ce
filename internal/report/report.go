package report

// Report is the top-level output of an imgfit batch run.
type Report struct {
	Version     int     `json:"version"`
	GeneratedAt string  `json:"generated_at"`
	TargetSize  int     `json:"target_size"`
	Entries     []Entry `json:"entries"`
	Stats       Stats   `json:"stats"`
}

// Entry records the outcome for a single source image.
type Entry struct {
	Source Source   `json:"source"`
	Output *Output  `json:"output,omitempty"` // nil when the file failed
	Tried  []string `json:"tried,omitempty"`  // formats attempted, in order
	Error  string   `json:"error,omitempty"`
}

// Source holds metadata about the input image.
type Source struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}

// Output describes the encoding that satisfied the target window.
type Output struct {
	Format  string `json:"format"` // "avif", "webp", "jpeg", "png"
	Quality int    `json:"quality"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Size    int64  `json:"size"` // bytes on disk
	Hash    string `json:"hash"` // first 16 hex chars of xxhash64
	Path    string `json:"path"` // relative to the output directory
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	Fitted           int   `json:"fitted"`
	Failed           int   `json:"failed,omitempty"`
}

// SupportedReportVersion is the current schema version.
const SupportedReportVersion = 1
