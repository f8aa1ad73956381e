package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bytemomo/dredge/internal/adapter/jsonreport"
	"bytemomo/dredge/internal/adapter/logger"
	"bytemomo/dredge/internal/adapter/markdownreport"
	"bytemomo/dredge/internal/adapter/sarifreport"
	"bytemomo/dredge/internal/adapter/yamlconfig"
	"bytemomo/dredge/internal/domain"
	"bytemomo/dredge/internal/registry"
	"bytemomo/dredge/internal/scan"
	"bytemomo/dredge/internal/walker"
)

var (
	profilePath  string
	rulePacks    []string
	outDir       string
	formats      []string
	maxParallel  int
	dedup        bool
	extensions   []string
	excludeGlobs []string
	skipTests    bool
	debugMode    bool
)

// Exit codes: 0 deployment-ready, 1 findings block deployment,
// 2 configuration error. CI gates on them.
const (
	exitReady  = 0
	exitRisk   = 1
	exitConfig = 2
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Scan a source tree and derive a deployment verdict",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := args[0]

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot create output directory: %v\n", err)
			os.Exit(exitConfig)
		}

		level := logrus.InfoLevel
		if debugMode {
			level = logrus.DebugLevel
		}
		logger.SetLoggerToStructured(level, filepath.Join(outDir, "dredge.log"))

		cfg, reg, err := buildConfiguration()
		if err != nil {
			logrus.WithError(err).Error("Configuration error")
			os.Exit(exitConfig)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		runner := scan.Runner{
			Log:     logrus.WithField("component", "scan"),
			Rules:   reg,
			Config:  cfg,
			Version: version,
		}

		report, err := runner.Execute(ctx, root)
		if err != nil {
			switch {
			case errors.Is(err, walker.ErrRootNotFound):
				logrus.WithError(err).Error("Scan root does not exist")
			case errors.Is(err, context.Canceled):
				logrus.Error("Scan cancelled before completion, no report produced")
			default:
				logrus.WithError(err).Error("Scan failed")
			}
			os.Exit(exitConfig)
		}

		if err := writeReports(report); err != nil {
			// The computed report stays in memory; the message tells the
			// operator where writing failed so they can retry elsewhere.
			logrus.WithError(err).Error("Failed to write report")
			os.Exit(exitConfig)
		}

		printSummary(report)

		if report.Verdict.DeploymentReady {
			os.Exit(exitReady)
		}
		os.Exit(exitRisk)
	},
}

func init() {
	scanCmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Scan profile YAML")
	scanCmd.Flags().StringSliceVar(&rulePacks, "rules", nil, "Additional rule pack YAML files")
	scanCmd.Flags().StringVarP(&outDir, "out", "o", "./dredge-results", "Output directory")
	scanCmd.Flags().StringSliceVarP(&formats, "format", "f", []string{"json", "markdown"}, "Report formats (json, markdown, sarif, all)")
	scanCmd.Flags().IntVar(&maxParallel, "max-parallel", 0, "Maximum files matched concurrently")
	scanCmd.Flags().BoolVar(&dedup, "dedup", false, "Collapse identical (rule, file, line) matches")
	scanCmd.Flags().StringSliceVar(&extensions, "ext", nil, "File extensions to scan (overrides defaults)")
	scanCmd.Flags().StringSliceVar(&excludeGlobs, "exclude", nil, "Directory/file globs to skip (overrides defaults)")
	scanCmd.Flags().BoolVar(&skipTests, "skip-tests", false, "Skip test files")
	scanCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(scanCmd)
}

// buildConfiguration resolves defaults, profile and flags (in that
// order) into the effective scan config and rule registry. All errors
// here are fatal configuration errors: nothing has been scanned yet.
func buildConfiguration() (domain.ScanConfig, *registry.Registry, error) {
	cfg := domain.DefaultScanConfig()

	var profile *yamlconfig.Profile
	if profilePath != "" {
		var err error
		profile, err = yamlconfig.LoadProfile(profilePath)
		if err != nil {
			return cfg, nil, fmt.Errorf("load profile: %w", err)
		}
		cfg = profile.Scan.Merge(cfg)
	}

	if len(extensions) > 0 {
		cfg.Extensions = extensions
	}
	if len(excludeGlobs) > 0 {
		cfg.ExcludeGlobs = excludeGlobs
	}
	if maxParallel > 0 {
		cfg.MaxParallelFiles = maxParallel
	}
	if dedup {
		cfg.Dedup = true
	}
	if skipTests {
		cfg.SkipTestFiles = true
	}

	reg, err := buildRegistry(profile)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, reg, nil
}

func buildRegistry(profile *yamlconfig.Profile) (*registry.Registry, error) {
	var reg *registry.Registry
	var err error

	if profile != nil && profile.DisableBuiltin {
		reg = registry.NewRegistry()
	} else if reg, err = registry.Builtin(); err != nil {
		return nil, err
	}

	if profile != nil {
		for _, pack := range profile.RulePacks {
			if err := reg.LoadFromFile(pack); err != nil {
				return nil, err
			}
		}
		for _, rule := range profile.Rules {
			if err := reg.Register(rule); err != nil {
				return nil, err
			}
		}
	}
	for _, pack := range rulePacks {
		if err := reg.LoadFromFile(pack); err != nil {
			return nil, err
		}
	}

	if reg.Count() == 0 {
		return nil, fmt.Errorf("rule catalog is empty")
	}
	return reg, nil
}

func writeReports(report *domain.Report) error {
	writers := map[string]domain.ReportWriter{
		"json":     jsonreport.New(outDir),
		"markdown": markdownreport.New(outDir),
		"sarif":    sarifreport.New(outDir),
	}

	selected := formats
	if len(formats) == 1 && strings.EqualFold(formats[0], "all") {
		selected = []string{"json", "markdown", "sarif"}
	}

	for _, format := range selected {
		w, ok := writers[strings.ToLower(format)]
		if !ok {
			return fmt.Errorf("unknown report format %q", format)
		}
		path, err := w.Write(report)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"format": format, "path": path}).Info("Report written")
	}
	return nil
}

func printSummary(report *domain.Report) {
	line := strings.Repeat("=", 60)

	fmt.Println("\n" + line)
	fmt.Println("SECURITY SCAN SUMMARY")
	fmt.Println(line)

	fmt.Printf("Root:           %s\n", report.Metadata.Root)
	fmt.Printf("Files scanned:  %d (%d skipped)\n", report.Statistics.FilesScanned, report.Statistics.FilesSkipped)
	fmt.Printf("Lines scanned:  %d\n", report.Statistics.LinesScanned)
	fmt.Printf("Elapsed:        %s\n", report.Statistics.Elapsed)

	fmt.Println("\nFINDINGS BY SEVERITY")
	for _, sev := range domain.Severities() {
		fmt.Printf("  %-8s %d\n", sev, report.FindingsBySeverity[sev])
	}
	fmt.Printf("  %-8s %d\n", "TOTAL", report.TotalFindings())

	criticals := 0
	fmt.Println()
	for _, f := range report.Findings {
		if f.Severity != domain.SeverityCritical {
			continue
		}
		if criticals == 0 {
			fmt.Println("TOP CRITICAL FINDINGS")
		}
		criticals++
		fmt.Printf("  %d. %s\n     %s:%d\n", criticals, f.Title, f.FilePath, f.LineNumber)
		if criticals == 5 {
			break
		}
	}

	fmt.Println("\nDEPLOYMENT DECISION")
	fmt.Printf("  Status: %s\n", report.Verdict.Status)
	fmt.Printf("  %s\n", report.Verdict.Recommendation)
	fmt.Println(line)
}
