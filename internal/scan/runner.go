package scan

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"bytemomo/dredge/internal/aggregate"
	"bytemomo/dredge/internal/domain"
	"bytemomo/dredge/internal/matcher"
	"bytemomo/dredge/internal/registry"
	"bytemomo/dredge/internal/report"
	"bytemomo/dredge/internal/walker"
)

// Runner executes one scan: walk, match, aggregate, verdict, report.
// The registry is read-only during the run, so workers share it without
// locking. A Runner holds no cross-run state.
type Runner struct {
	Log     *logrus.Entry
	Rules   *registry.Registry
	Config  domain.ScanConfig
	Version string
}

type fileOutcome struct {
	entry  walker.FileEntry
	result matcher.FileResult
	err    error
}

// Execute runs the full pipeline against root. File matching fans out
// over a bounded worker pool; aggregation of the collected matches is
// commutative, so worker completion order never changes the report.
// When ctx is cancelled the run returns ctx.Err() and produces no
// report: a partial scan never pretends to be a verdict.
func (r Runner) Execute(ctx context.Context, root string) (*domain.Report, error) {
	start := time.Now()

	log := r.Log.WithField("root", root)
	log.WithFields(logrus.Fields{
		"rules":        r.Rules.Count(),
		"max_parallel": r.Config.MaxParallelFiles,
		"dedup":        r.Config.Dedup,
	}).Info("Starting scan")

	entries, err := walker.Walk(root, r.Config)
	if err != nil {
		return nil, err
	}

	var stats domain.ScanStats
	stats.FilesDiscovered = len(entries)
	log.WithField("files", len(entries)).Info("Walk finished")

	rules := r.Rules.All()
	sem := make(chan struct{}, max(1, r.Config.MaxParallelFiles))
	out := make(chan fileOutcome, len(entries))

	launched := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		launched++
		go func(entry walker.FileEntry) {
			defer func() { <-sem }()
			result, err := matcher.MatchFile(entry, rules, r.Config.MaxEvidenceLen)
			out <- fileOutcome{entry: entry, result: result, err: err}
		}(entry)
	}

	// Single receiver folds the outcomes, so stats need no locking.
	var matches []domain.RawMatch
	for i := 0; i < launched; i++ {
		o := <-out
		if o.err != nil {
			stats.FilesSkipped++
			log.WithField("file", o.entry.Path).WithError(o.err).Warn("Skipping unreadable file")
			continue
		}
		if o.result.Skipped {
			stats.FilesSkipped++
			log.WithField("file", o.entry.Path).Warn("Skipping undecodable file")
			continue
		}
		stats.FilesScanned++
		stats.LinesScanned += o.result.Lines
		stats.MatchErrors += o.result.RuleErrors
		matches = append(matches, o.result.Matches...)
	}

	if err := ctx.Err(); err != nil {
		log.Warn("Scan cancelled, no verdict emitted")
		return nil, err
	}

	agg, err := aggregate.Aggregate(matches, r.Rules, r.Config.Dedup)
	if err != nil {
		return nil, err
	}
	stats.Elapsed = time.Since(start)

	verdict := domain.ComputeVerdict(agg.BySeverity)
	meta := domain.Metadata{
		GeneratedAt: time.Now().UTC(),
		Root:        root,
		ToolVersion: r.Version,
		RuleCount:   r.Rules.Count(),
		Dedup:       r.Config.Dedup,
	}

	log.WithFields(logrus.Fields{
		"findings": len(agg.Findings),
		"status":   verdict.Status,
	}).Info("Scan finished")

	return report.Generate(meta, stats, agg.Findings, agg.BySeverity, agg.ByCategory, verdict), nil
}
