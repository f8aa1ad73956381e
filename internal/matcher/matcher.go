package matcher

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"bytemomo/dredge/internal/domain"
	"bytemomo/dredge/internal/walker"
)

// FileResult is the raw outcome of matching one file. Matching shares
// no mutable state between files, so independent files are matched from
// concurrent workers.
type FileResult struct {
	Matches    []domain.RawMatch
	Lines      int
	Skipped    bool
	RuleErrors int
}

// MatchFile reads one file and applies every in-scope rule to every
// line. A line may match several rules; there is no early exit. Files
// that are not valid UTF-8 are skipped and reported via Skipped rather
// than aborting the scan.
func MatchFile(entry walker.FileEntry, rules []*domain.Rule, maxEvidence int) (FileResult, error) {
	var result FileResult

	content, err := os.ReadFile(entry.Abs)
	if err != nil {
		result.Skipped = true
		return result, fmt.Errorf("read %s: %w", entry.Path, err)
	}
	if !utf8.Valid(content) {
		result.Skipped = true
		return result, nil
	}

	// File-level scope (glob, file_contains, file_lacks) is decided once
	// per file, not per line.
	inScope := rules[:0:0]
	for _, rule := range rules {
		if rule.AppliesTo(entry.Path, content) {
			inScope = append(inScope, rule)
		}
	}

	lines := strings.Split(string(content), "\n")
	result.Lines = len(lines)
	if len(inScope) == 0 {
		return result, nil
	}

	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		for _, rule := range inScope {
			matched, ruleErr := matchLine(rule, line)
			if ruleErr != nil {
				result.RuleErrors++
				continue
			}
			if matched {
				result.Matches = append(result.Matches, domain.RawMatch{
					RuleID:     rule.ID,
					FilePath:   entry.Path,
					LineNumber: i + 1,
					Evidence:   evidence(line, maxEvidence),
				})
			}
		}
	}
	return result, nil
}

// matchLine contains a panicking pattern evaluation to the single
// rule-file-line attempt instead of letting it abort the scan.
func matchLine(rule *domain.Rule, line string) (matched bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			matched = false
			err = fmt.Errorf("rule %q panicked: %v", rule.ID, r)
		}
	}()
	return rule.MatchLine(line), nil
}

func evidence(line string, maxLen int) string {
	trimmed := strings.TrimSpace(line)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
