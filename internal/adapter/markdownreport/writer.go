package markdownreport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bytemomo/dredge/internal/domain"
)

// Writer renders the executive summary as a Markdown document, the
// human-readable counterpart of the JSON report.
type Writer struct {
	OutDir string
}

// New creates a Markdown report writer targeting outDir.
func New(outDir string) *Writer {
	return &Writer{OutDir: outDir}
}

// Write renders the report to <outdir>/summary.md.
func (w *Writer) Write(report *domain.Report) (string, error) {
	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(w.OutDir, "summary.md")
	if err := os.WriteFile(path, []byte(render(report)), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}

func render(report *domain.Report) string {
	var sb strings.Builder

	sb.WriteString("# Security Scan Executive Summary\n\n")
	fmt.Fprintf(&sb, "**Scanned:** `%s`  \n", report.Metadata.Root)
	fmt.Fprintf(&sb, "**Generated:** %s  \n", report.Metadata.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "**Tool version:** %s  \n\n", report.Metadata.ToolVersion)

	sb.WriteString("## Overview\n\n")
	fmt.Fprintf(&sb, "**Security status:** %s  \n", report.Verdict.Status)
	ready := "NO"
	if report.Verdict.DeploymentReady {
		ready = "YES"
	}
	fmt.Fprintf(&sb, "**Deployment ready:** %s  \n", ready)
	fmt.Fprintf(&sb, "**Total findings:** %d  \n\n", report.TotalFindings())
	fmt.Fprintf(&sb, "%s\n\n", report.Verdict.Recommendation)

	sb.WriteString("## Findings by Severity\n\n")
	sb.WriteString("| Severity | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, sev := range domain.Severities() {
		fmt.Fprintf(&sb, "| %s | %d |\n", sev, report.FindingsBySeverity[sev])
	}
	sb.WriteString("\n")

	sb.WriteString("## Findings by Category\n\n")
	sb.WriteString("| Category | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, cat := range domain.Categories() {
		if n := report.FindingsByCategory[cat]; n > 0 {
			fmt.Fprintf(&sb, "| %s | %d |\n", humanize(cat), n)
		}
	}
	sb.WriteString("\n")

	if len(report.RemediationPriorities) > 0 {
		sb.WriteString("## Remediation Priorities\n\n")
		for _, p := range report.RemediationPriorities {
			fmt.Fprintf(&sb, "### Priority %d: %s\n", p.Priority, p.Category)
			fmt.Fprintf(&sb, "- **Issue count:** %d\n", p.Count)
			fmt.Fprintf(&sb, "- **Timeline:** %s\n", p.Timeline)
			fmt.Fprintf(&sb, "- **Description:** %s\n\n", p.Description)
		}
	}

	criticals := topFindings(report.Findings, domain.SeverityCritical, 5)
	if len(criticals) > 0 {
		sb.WriteString("## Top Critical Findings\n\n")
		for i, f := range criticals {
			fmt.Fprintf(&sb, "%d. **%s** (`%s:%d`)\n", i+1, f.Title, f.FilePath, f.LineNumber)
			if f.Impact != "" {
				fmt.Fprintf(&sb, "   - Impact: %s\n", f.Impact)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Scan Statistics\n\n")
	fmt.Fprintf(&sb, "- Files discovered: %d\n", report.Statistics.FilesDiscovered)
	fmt.Fprintf(&sb, "- Files scanned: %d\n", report.Statistics.FilesScanned)
	fmt.Fprintf(&sb, "- Files skipped: %d\n", report.Statistics.FilesSkipped)
	fmt.Fprintf(&sb, "- Lines scanned: %d\n", report.Statistics.LinesScanned)
	fmt.Fprintf(&sb, "- Elapsed: %s\n\n", report.Statistics.Elapsed)

	sb.WriteString("---\n")
	sb.WriteString("*Generated by automated pattern analysis; supplement with manual review for complete assurance.*\n")

	return sb.String()
}

func topFindings(findings []domain.Finding, sev domain.Severity, limit int) []domain.Finding {
	var out []domain.Finding
	for _, f := range findings {
		if f.Severity != sev {
			continue
		}
		out = append(out, f)
		if len(out) == limit {
			break
		}
	}
	return out
}

func humanize(cat domain.Category) string {
	words := strings.Split(string(cat), "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
