package domain

// ReportWriter renders a completed report to some destination and
// returns the path it was written to.
type ReportWriter interface {
	Write(report *Report) (string, error)
}
