package domain

// ScanConfig controls how a single scan run walks and matches sources.
type ScanConfig struct {
	// Extensions is the allow-list of file extensions to scan,
	// including the leading dot.
	Extensions []string `yaml:"extensions,omitempty"`

	// ExcludeGlobs skips any directory or file whose base name matches
	// one of the globs (build output, vendored trees, backups).
	ExcludeGlobs []string `yaml:"exclude,omitempty"`

	// SkipTestFiles skips files with a test suffix for their language
	// (_test.rs, .test.ts, .spec.ts).
	SkipTestFiles bool `yaml:"skip_test_files,omitempty"`

	// MaxParallelFiles bounds concurrent file matching.
	// Default: 8
	MaxParallelFiles int `yaml:"max_parallel_files,omitempty"`

	// Dedup collapses matches with identical (rule, file, line) into a
	// single finding. Default: false, matching the original audits.
	Dedup bool `yaml:"dedup,omitempty"`

	// MaxEvidenceLen bounds the evidence excerpt kept per finding.
	MaxEvidenceLen int `yaml:"max_evidence_len,omitempty"`
}

// DefaultScanConfig returns the configuration used when a profile sets
// nothing: the extensions of the audited ecosystem and its usual build
// and vendor directories.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Extensions:       []string{".rs", ".sol", ".ts", ".tsx", ".js"},
		ExcludeGlobs:     []string{"target", "node_modules", "vendor", "dist", "build", ".security_backup", ".git"},
		SkipTestFiles:    false,
		MaxParallelFiles: 8,
		Dedup:            false,
		MaxEvidenceLen:   200,
	}
}

// Merge combines this config with defaults, preferring explicit values.
func (c *ScanConfig) Merge(defaults ScanConfig) ScanConfig {
	result := defaults

	if len(c.Extensions) > 0 {
		result.Extensions = c.Extensions
	}
	if len(c.ExcludeGlobs) > 0 {
		result.ExcludeGlobs = c.ExcludeGlobs
	}
	if c.SkipTestFiles {
		result.SkipTestFiles = true
	}
	if c.MaxParallelFiles > 0 {
		result.MaxParallelFiles = c.MaxParallelFiles
	}
	if c.Dedup {
		result.Dedup = true
	}
	if c.MaxEvidenceLen > 0 {
		result.MaxEvidenceLen = c.MaxEvidenceLen
	}

	return result
}
