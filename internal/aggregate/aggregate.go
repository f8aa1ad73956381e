package aggregate

import (
	"fmt"
	"sort"

	"bytemomo/dredge/internal/domain"
	"bytemomo/dredge/internal/registry"
)

// Result carries the structured findings plus the severity and category
// histograms for one scan run. The histograms always sum to the number
// of findings.
type Result struct {
	Findings   []domain.Finding
	BySeverity map[domain.Severity]int
	ByCategory map[domain.Category]int
}

// Aggregate promotes raw matches to findings, resolving each rule by ID
// and copying its severity and category onto the finding. When dedup is
// enabled, matches with identical (rule, file, line) collapse into one
// finding. Aggregation is commutative: worker completion order does not
// influence the result, because findings are sorted into canonical
// (path, line, rule) order at the end.
func Aggregate(matches []domain.RawMatch, reg *registry.Registry, dedup bool) (Result, error) {
	result := Result{
		BySeverity: make(map[domain.Severity]int),
		ByCategory: make(map[domain.Category]int),
	}

	var seen map[string]struct{}
	if dedup {
		seen = make(map[string]struct{}, len(matches))
	}

	for _, m := range matches {
		rule, ok := reg.Get(m.RuleID)
		if !ok {
			return Result{}, fmt.Errorf("raw match references unknown rule %q", m.RuleID)
		}

		if dedup {
			key := fmt.Sprintf("%s|%s|%d", m.RuleID, m.FilePath, m.LineNumber)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}

		result.Findings = append(result.Findings, domain.Finding{
			RuleID:      rule.ID,
			Category:    rule.Category,
			Severity:    rule.Severity,
			Title:       rule.Title,
			Description: rule.Description,
			FilePath:    m.FilePath,
			LineNumber:  m.LineNumber,
			Evidence:    m.Evidence,
			Impact:      rule.Impact,
			Remediation: rule.Remediation,
		})
		result.BySeverity[rule.Severity]++
		result.ByCategory[rule.Category]++
	}

	sort.SliceStable(result.Findings, func(i, j int) bool {
		a, b := result.Findings[i], result.Findings[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.LineNumber != b.LineNumber {
			return a.LineNumber < b.LineNumber
		}
		return a.RuleID < b.RuleID
	})

	return result, nil
}
