package domain

import "testing"

func TestDefaultScanConfig(t *testing.T) {
	cfg := DefaultScanConfig()

	if cfg.MaxParallelFiles != 8 {
		t.Errorf("default MaxParallelFiles should be 8, got %d", cfg.MaxParallelFiles)
	}
	if cfg.Dedup {
		t.Error("dedup should default to false")
	}
	if cfg.MaxEvidenceLen != 200 {
		t.Errorf("default MaxEvidenceLen should be 200, got %d", cfg.MaxEvidenceLen)
	}

	wantExts := map[string]bool{".rs": true, ".sol": true, ".ts": true, ".tsx": true, ".js": true}
	for _, ext := range cfg.Extensions {
		if !wantExts[ext] {
			t.Errorf("unexpected default extension %q", ext)
		}
		delete(wantExts, ext)
	}
	for ext := range wantExts {
		t.Errorf("missing default extension %q", ext)
	}
}

func TestScanConfig_Merge(t *testing.T) {
	defaults := DefaultScanConfig()

	t.Run("empty keeps defaults", func(t *testing.T) {
		empty := ScanConfig{}
		merged := empty.Merge(defaults)
		if merged.MaxParallelFiles != defaults.MaxParallelFiles {
			t.Errorf("expected default parallelism, got %d", merged.MaxParallelFiles)
		}
		if len(merged.Extensions) != len(defaults.Extensions) {
			t.Errorf("expected default extensions, got %v", merged.Extensions)
		}
	})

	t.Run("explicit values win", func(t *testing.T) {
		user := ScanConfig{
			Extensions:       []string{".go"},
			MaxParallelFiles: 2,
			Dedup:            true,
		}
		merged := user.Merge(defaults)
		if len(merged.Extensions) != 1 || merged.Extensions[0] != ".go" {
			t.Errorf("expected user extensions, got %v", merged.Extensions)
		}
		if merged.MaxParallelFiles != 2 {
			t.Errorf("expected user parallelism 2, got %d", merged.MaxParallelFiles)
		}
		if !merged.Dedup {
			t.Error("expected dedup enabled")
		}
		if len(merged.ExcludeGlobs) == 0 {
			t.Error("unset excludes should fall back to defaults")
		}
	})
}
