package domain

import "time"

// ScanStats are the counters owned by a single scan run. They are reset
// at the start of each run and folded into the Report at the end; no
// scanning state survives between runs.
type ScanStats struct {
	FilesDiscovered int           `json:"files_discovered"`
	FilesScanned    int           `json:"files_scanned"`
	FilesSkipped    int           `json:"files_skipped"`
	LinesScanned    int           `json:"lines_scanned"`
	MatchErrors     int           `json:"match_errors"`
	Elapsed         time.Duration `json:"elapsed_ns"`
}
