package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// Rule is a single detection rule: a severity-tagged pattern with the
// remediation guidance that makes every match self-describing. Rules are
// built once at startup and never mutated afterwards.
type Rule struct {
	ID          string   `yaml:"id"`
	Category    Category `yaml:"category"`
	Severity    Severity `yaml:"severity"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Impact      string   `yaml:"impact,omitempty"`
	Remediation string   `yaml:"remediation,omitempty"`

	// Pattern is matched against each line. Case-insensitive unless
	// CaseSensitive is set.
	Pattern       string `yaml:"pattern"`
	CaseSensitive bool   `yaml:"case_sensitive,omitempty"`

	// Unless suppresses a line match when it also matches the same line.
	// Replaces the originals' "pattern without handler on the same line"
	// checks.
	Unless string `yaml:"unless,omitempty"`

	// FileGlob restricts the rule to files whose base name matches the
	// glob (e.g. "*.rs").
	FileGlob string `yaml:"file_glob,omitempty"`

	// FileContains / FileLacks gate the rule on whole-file content,
	// evaluated once per file. They replace the originals' cross-line
	// "pattern A and pattern B anywhere in the file" conflation with an
	// explicit condition.
	FileContains string `yaml:"file_contains,omitempty"`
	FileLacks    string `yaml:"file_lacks,omitempty"`

	re         *regexp.Regexp
	unlessRe   *regexp.Regexp
	containsRe *regexp.Regexp
	lacksRe    *regexp.Regexp
}

// Validate checks that the rule definition is complete.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule ID is required")
	}
	if r.Pattern == "" {
		return fmt.Errorf("rule %q: pattern is required", r.ID)
	}
	if !r.Severity.Valid() {
		return fmt.Errorf("rule %q: unknown severity %q", r.ID, r.Severity)
	}
	if !r.Category.Valid() {
		return fmt.Errorf("rule %q: unknown category %q", r.ID, r.Category)
	}
	if r.FileGlob != "" {
		if _, err := filepath.Match(r.FileGlob, "probe"); err != nil {
			return fmt.Errorf("rule %q: invalid file glob %q: %w", r.ID, r.FileGlob, err)
		}
	}
	return nil
}

// Compile precompiles all regular expressions of the rule. A compile
// failure is a fatal configuration error.
func (r *Rule) Compile() error {
	var err error
	if r.re, err = r.compileOne(r.Pattern); err != nil {
		return fmt.Errorf("rule %q: pattern: %w", r.ID, err)
	}
	if r.Unless != "" {
		if r.unlessRe, err = r.compileOne(r.Unless); err != nil {
			return fmt.Errorf("rule %q: unless: %w", r.ID, err)
		}
	}
	if r.FileContains != "" {
		if r.containsRe, err = r.compileOne(r.FileContains); err != nil {
			return fmt.Errorf("rule %q: file_contains: %w", r.ID, err)
		}
	}
	if r.FileLacks != "" {
		if r.lacksRe, err = r.compileOne(r.FileLacks); err != nil {
			return fmt.Errorf("rule %q: file_lacks: %w", r.ID, err)
		}
	}
	return nil
}

func (r *Rule) compileOne(pattern string) (*regexp.Regexp, error) {
	if !r.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// AppliesTo reports whether the rule is in scope for the given relative
// path and file content. The content conditions are evaluated once per
// file by the matcher, not per line.
func (r *Rule) AppliesTo(relPath string, content []byte) bool {
	if r.FileGlob != "" {
		ok, err := filepath.Match(r.FileGlob, filepath.Base(relPath))
		if err != nil || !ok {
			return false
		}
	}
	if r.containsRe != nil && !r.containsRe.Match(content) {
		return false
	}
	if r.lacksRe != nil && r.lacksRe.Match(content) {
		return false
	}
	return true
}

// MatchLine reports whether the rule fires on a single line.
func (r *Rule) MatchLine(line string) bool {
	if !r.re.MatchString(line) {
		return false
	}
	if r.unlessRe != nil && r.unlessRe.MatchString(line) {
		return false
	}
	return true
}
