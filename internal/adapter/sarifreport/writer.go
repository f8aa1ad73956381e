// Package sarifreport renders findings as a SARIF 2.1.0 log so the scan
// plugs into code-scanning UIs that ingest the standard format.
package sarifreport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bytemomo/dredge/internal/domain"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}
type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}
type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}
type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules,omitempty"`
}
type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name,omitempty"`
	ShortDescription sarifMessage `json:"shortDescription"`
}
type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}
type sarifMessage struct {
	Text string `json:"text"`
}
type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}
type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}
type sarifArtifactLocation struct {
	URI string `json:"uri"`
}
type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// severityLevels maps scan severities onto the SARIF level vocabulary.
var severityLevels = map[domain.Severity]string{
	domain.SeverityCritical: "error",
	domain.SeverityHigh:     "error",
	domain.SeverityMedium:   "warning",
	domain.SeverityLow:      "note",
	domain.SeverityInfo:     "note",
}

// Writer renders a report as a SARIF log file.
type Writer struct {
	OutDir string
}

// New creates a SARIF report writer targeting outDir.
func New(outDir string) *Writer {
	return &Writer{OutDir: outDir}
}

// Write renders the report to <outdir>/report.sarif.
func (w *Writer) Write(report *domain.Report) (string, error) {
	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	results := make([]sarifResult, 0, len(report.Findings))
	seenRules := make(map[string]struct{})
	var rules []sarifRule

	for _, f := range report.Findings {
		if _, ok := seenRules[f.RuleID]; !ok {
			seenRules[f.RuleID] = struct{}{}
			rules = append(rules, sarifRule{
				ID:               f.RuleID,
				ShortDescription: sarifMessage{Text: f.Title},
			})
		}
		results = append(results, sarifResult{
			RuleID:  f.RuleID,
			Level:   severityLevels[f.Severity],
			Message: sarifMessage{Text: fmt.Sprintf("%s: %s", f.Title, f.Evidence)},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: f.FilePath},
					Region:           sarifRegion{StartLine: f.LineNumber},
				},
			}},
		})
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    "dredge",
				Version: report.Metadata.ToolVersion,
				Rules:   rules,
			}},
			Results: results,
		}},
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sarif: %w", err)
	}

	path := filepath.Join(w.OutDir, "report.sarif")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write sarif: %w", err)
	}
	return path, nil
}
