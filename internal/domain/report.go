package domain

import "time"

// Metadata describes one scan run.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Root        string    `json:"root"`
	ToolVersion string    `json:"tool_version"`
	RuleCount   int       `json:"rule_count"`
	Dedup       bool      `json:"dedup"`
}

// RemediationPriority is one entry of the prioritized remediation list,
// grouped by severity with a fixed timeline.
type RemediationPriority struct {
	Priority    int      `json:"priority"`
	Category    string   `json:"category"`
	Severity    Severity `json:"severity"`
	Count       int      `json:"count"`
	Timeline    string   `json:"timeline"`
	Description string   `json:"description"`
}

// Report is the terminal artifact of a scan run: immutable once
// generated, and the sole hand-off to CI systems and human reviewers.
// Findings are kept in canonical (path, line, rule) order.
type Report struct {
	Metadata              Metadata              `json:"metadata"`
	Statistics            ScanStats             `json:"statistics"`
	FindingsBySeverity    map[Severity]int      `json:"findings_by_severity"`
	FindingsByCategory    map[Category]int      `json:"findings_by_category"`
	Findings              []Finding             `json:"findings"`
	Verdict               Verdict               `json:"verdict"`
	RemediationPriorities []RemediationPriority `json:"remediation_priority"`
	Summary               string                `json:"summary"`
}

// TotalFindings returns the number of findings in the report.
func (r *Report) TotalFindings() int {
	return len(r.Findings)
}
