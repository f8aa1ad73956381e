package scan

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bytemomo/dredge/internal/domain"
	"bytemomo/dredge/internal/registry"
)

func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func testRunner(t *testing.T, rules ...*domain.Rule) Runner {
	t.Helper()
	reg := registry.NewRegistry()
	for _, rule := range rules {
		require.NoError(t, reg.Register(rule))
	}
	return Runner{
		Log:     testLogger(),
		Rules:   reg,
		Config:  domain.DefaultScanConfig(),
		Version: "test",
	}
}

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestExecute_CriticalFindingBlocksDeployment(t *testing.T) {
	root := t.TempDir()
	var src strings.Builder
	for i := 1; i < 12; i++ {
		src.WriteString("// padding\n")
	}
	src.WriteString("    Ok(vec![0u8; 64])\n")
	writeSource(t, root, "src/signer.rs", src.String())

	runner := testRunner(t, &domain.Rule{
		ID:       "crypto-dummy-signature",
		Category: domain.CategoryCryptography,
		Severity: domain.SeverityCritical,
		Title:    "Dummy signature",
		Pattern:  `Ok\(vec!\[0u8; 64\]\)`,
	})

	rep, err := runner.Execute(context.Background(), root)
	require.NoError(t, err)
	require.NotNil(t, rep)

	require.Len(t, rep.Findings, 1)
	f := rep.Findings[0]
	assert.Equal(t, "src/signer.rs", f.FilePath)
	assert.Equal(t, 12, f.LineNumber)
	assert.Equal(t, domain.SeverityCritical, f.Severity)

	assert.Equal(t, domain.StatusCritical, rep.Verdict.Status)
	assert.False(t, rep.Verdict.DeploymentReady)
	assert.Contains(t, rep.Verdict.Recommendation, "DEPLOYMENT BLOCKED")
}

func TestExecute_CleanTreeIsDeployable(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/lib.rs", "pub fn add(a: u32, b: u32) -> u32 { a + b }\n")
	writeSource(t, root, "web/app.ts", "export const version = '1.0';\n")

	runner := testRunner(t, &domain.Rule{
		ID:       "crypto-dummy-signature",
		Category: domain.CategoryCryptography,
		Severity: domain.SeverityCritical,
		Title:    "Dummy signature",
		Pattern:  `Ok\(vec!\[0u8; 64\]\)`,
	})

	rep, err := runner.Execute(context.Background(), root)
	require.NoError(t, err)

	assert.Empty(t, rep.Findings)
	assert.Equal(t, domain.StatusAcceptable, rep.Verdict.Status)
	assert.True(t, rep.Verdict.DeploymentReady)
	assert.Equal(t, 2, rep.Statistics.FilesScanned)
	assert.Empty(t, rep.RemediationPriorities)
}

func TestExecute_HighOnlyVerdict(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/hash.rs", "let digest = md5::compute(data);\n")

	runner := testRunner(t, &domain.Rule{
		ID:       "crypto-weak-algorithm",
		Category: domain.CategoryCryptography,
		Severity: domain.SeverityHigh,
		Title:    "Weak algorithm",
		Pattern:  `\bmd5\b`,
	})

	rep, err := runner.Execute(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusHighRisk, rep.Verdict.Status)
	assert.False(t, rep.Verdict.DeploymentReady)
	require.Len(t, rep.RemediationPriorities, 1)
	assert.Equal(t, "Urgent (1-7 days)", rep.RemediationPriorities[0].Timeline)
	assert.Equal(t, 1, rep.RemediationPriorities[0].Priority)
}

// Two runs over the same tree must serialize identically apart from
// timestamps and elapsed time.
func TestExecute_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "a/one.rs", "let x = data.unwrap();\nlet y = data.unwrap();\n")
	writeSource(t, root, "b/two.rs", "let z = data.unwrap();\n")
	writeSource(t, root, "c/three.ts", "fetch('/api');\n")

	runner := testRunner(t,
		&domain.Rule{ID: "prod-unwrap", Category: domain.CategoryProductionReadiness, Severity: domain.SeverityMedium, Title: "unwrap", Pattern: `\.unwrap\(\)`},
		&domain.Rule{ID: "api-fetch", Category: domain.CategoryAPISecurity, Severity: domain.SeverityHigh, Title: "fetch", Pattern: `fetch\(`},
	)
	runner.Config.MaxParallelFiles = 4

	normalize := func(rep *domain.Report) string {
		rep.Metadata.GeneratedAt = time.Time{}
		rep.Statistics.Elapsed = 0
		data, err := json.Marshal(rep)
		require.NoError(t, err)
		return string(data)
	}

	first, err := runner.Execute(context.Background(), root)
	require.NoError(t, err)
	second, err := runner.Execute(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, normalize(first), normalize(second))
}

func TestExecute_RootNotFound(t *testing.T) {
	runner := testRunner(t)
	_, err := runner.Execute(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestExecute_CancelledContext(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		writeSource(t, root, filepath.Join("src", "file"+string(rune('a'+i))+".rs"), "let x = 1;\n")
	}

	runner := testRunner(t, &domain.Rule{
		ID:       "r",
		Category: domain.CategoryConfiguration,
		Severity: domain.SeverityLow,
		Title:    "t",
		Pattern:  `x`,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := runner.Execute(ctx, root)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rep, "a cancelled run must not emit a report")
}
