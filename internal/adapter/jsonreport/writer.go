package jsonreport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bytemomo/dredge/internal/domain"
)

// Writer renders a report as indented JSON with a stable schema. Field
// order follows the struct definition and map keys marshal sorted, so
// re-running on the same findings reproduces the file byte for byte,
// timestamp aside.
type Writer struct {
	OutDir string
}

// New creates a JSON report writer targeting outDir.
func New(outDir string) *Writer {
	return &Writer{OutDir: outDir}
}

// Write marshals the report to <outdir>/report.json. A write failure
// leaves the in-memory report intact so the caller may retry elsewhere.
func (w *Writer) Write(report *domain.Report) (string, error) {
	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(w.OutDir, "report.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
