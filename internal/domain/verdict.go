package domain

// Status is the aggregate risk status of a completed scan.
type Status string

const (
	StatusCritical   Status = "CRITICAL_VULNERABILITIES_FOUND"
	StatusHighRisk   Status = "HIGH_RISK_VULNERABILITIES_FOUND"
	StatusAcceptable Status = "ACCEPTABLE_RISK_LEVEL"
)

// Verdict is the deployment decision derived from the severity histogram.
type Verdict struct {
	Status          Status `json:"status"`
	DeploymentReady bool   `json:"deployment_ready"`
	Recommendation  string `json:"recommendation"`
}

// recommendations maps each status to its fixed deployment guidance.
var recommendations = map[Status]string{
	StatusCritical:   "DEPLOYMENT BLOCKED - Critical security vulnerabilities must be resolved",
	StatusHighRisk:   "DEPLOYMENT AT RISK - High severity vulnerabilities should be resolved",
	StatusAcceptable: "DEPLOYMENT APPROVED - Security requirements met",
}

// ComputeVerdict derives the verdict from a severity histogram. The
// precedence is fixed: any CRITICAL blocks deployment, otherwise any
// HIGH blocks deployment, otherwise the risk level is acceptable.
// Identical histograms always yield identical verdicts.
func ComputeVerdict(severityCounts map[Severity]int) Verdict {
	var status Status
	switch {
	case severityCounts[SeverityCritical] > 0:
		status = StatusCritical
	case severityCounts[SeverityHigh] > 0:
		status = StatusHighRisk
	default:
		status = StatusAcceptable
	}
	return Verdict{
		Status:          status,
		DeploymentReady: status == StatusAcceptable,
		Recommendation:  recommendations[status],
	}
}
