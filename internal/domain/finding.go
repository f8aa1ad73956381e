package domain

// RawMatch is one rule-to-line hit as produced by the matcher, before
// aggregation. It carries only the rule ID; severity and category are
// resolved when the match is promoted to a Finding.
type RawMatch struct {
	RuleID     string
	FilePath   string
	LineNumber int
	Evidence   string
}

// Finding is a confirmed security finding. Severity and category are
// copied from the rule at creation time, so later catalog edits cannot
// retroactively change findings already produced.
type Finding struct {
	RuleID      string   `json:"rule_id"`
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	FilePath    string   `json:"file"`
	LineNumber  int      `json:"line"`
	Evidence    string   `json:"evidence"`
	Impact      string   `json:"impact,omitempty"`
	Remediation string   `json:"remediation,omitempty"`
}
