// Package report assembles the terminal scan artifact. Generation is a
// pure function of its inputs: the same findings and verdict always
// produce the same report, timestamp aside.
package report

import (
	"fmt"
	"strings"

	"bytemomo/dredge/internal/domain"
)

// Generate folds statistics, findings, histograms and the verdict into
// an immutable Report. Findings are expected in canonical order already;
// the generator never re-sorts them.
func Generate(
	meta domain.Metadata,
	stats domain.ScanStats,
	findings []domain.Finding,
	bySeverity map[domain.Severity]int,
	byCategory map[domain.Category]int,
	verdict domain.Verdict,
) *domain.Report {
	return &domain.Report{
		Metadata:              meta,
		Statistics:            stats,
		FindingsBySeverity:    bySeverity,
		FindingsByCategory:    byCategory,
		Findings:              findings,
		Verdict:               verdict,
		RemediationPriorities: remediationPriorities(bySeverity),
		Summary:               summary(stats, findings, bySeverity, verdict),
	}
}

// remediationPriorities groups outstanding work by severity with the
// fixed timelines of the original audit process: criticals immediately,
// highs within the week. Lower severities are not prioritized.
func remediationPriorities(bySeverity map[domain.Severity]int) []domain.RemediationPriority {
	var priorities []domain.RemediationPriority

	if n := bySeverity[domain.SeverityCritical]; n > 0 {
		priorities = append(priorities, domain.RemediationPriority{
			Priority:    1,
			Category:    "Critical Security Fixes",
			Severity:    domain.SeverityCritical,
			Count:       n,
			Timeline:    "Immediate (0-24 hours)",
			Description: "Address all critical security vulnerabilities before any deployment",
		})
	}
	if n := bySeverity[domain.SeverityHigh]; n > 0 {
		priorities = append(priorities, domain.RemediationPriority{
			Priority:    len(priorities) + 1,
			Category:    "High Severity Fixes",
			Severity:    domain.SeverityHigh,
			Count:       n,
			Timeline:    "Urgent (1-7 days)",
			Description: "Resolve high severity issues to reduce security risk",
		})
	}
	return priorities
}

func summary(
	stats domain.ScanStats,
	findings []domain.Finding,
	bySeverity map[domain.Severity]int,
	verdict domain.Verdict,
) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Scanned %d files (%d lines): %d findings",
		stats.FilesScanned, stats.LinesScanned, len(findings))

	var parts []string
	for _, sev := range domain.Severities() {
		if n := bySeverity[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ToLower(string(sev))))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(parts, ", "))
	}

	fmt.Fprintf(&sb, ". Status: %s. %s", verdict.Status, verdict.Recommendation)
	return sb.String()
}
