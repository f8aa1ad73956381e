package domain

// Severity classifies how dangerous a finding is.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// severityRank orders severities from most to least dangerous.
// Unknown severities rank below INFO.
var severityRank = map[Severity]int{
	SeverityCritical: 5,
	SeverityHigh:     4,
	SeverityMedium:   3,
	SeverityLow:      2,
	SeverityInfo:     1,
}

// Rank returns the ordering weight of s. Higher is more severe.
func (s Severity) Rank() int {
	return severityRank[s]
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// Severities lists all known severities from most to least severe.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// Category groups rules by the security concern they detect.
type Category string

const (
	CategoryCryptography        Category = "cryptography"
	CategoryCertificateMgmt     Category = "certificate_management"
	CategoryConsensusValidation Category = "consensus_validation"
	CategoryAPISecurity         Category = "api_security"
	CategoryConfiguration       Category = "configuration"
	CategoryProductionReadiness Category = "production_readiness"
)

// Categories lists all known categories in reporting order.
func Categories() []Category {
	return []Category{
		CategoryCryptography,
		CategoryCertificateMgmt,
		CategoryConsensusValidation,
		CategoryAPISecurity,
		CategoryConfiguration,
		CategoryProductionReadiness,
	}
}

var knownCategories = func() map[Category]struct{} {
	m := make(map[Category]struct{})
	for _, c := range Categories() {
		m[c] = struct{}{}
	}
	return m
}()

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := knownCategories[c]
	return ok
}
