package walker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bytemomo/dredge/internal/domain"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("fn main() {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalk_RootNotFound(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "missing"), domain.DefaultScanConfig())
	if !errors.Is(err, ErrRootNotFound) {
		t.Fatalf("expected ErrRootNotFound, got %v", err)
	}
}

func TestWalk_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.rs")
	writeFile(t, file)

	_, err := Walk(file, domain.DefaultScanConfig())
	if !errors.Is(err, ErrRootNotFound) {
		t.Fatalf("expected ErrRootNotFound for non-directory root, got %v", err)
	}
}

func TestWalk_ExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib.rs"))
	writeFile(t, filepath.Join(dir, "app.ts"))
	writeFile(t, filepath.Join(dir, "notes.md"))
	writeFile(t, filepath.Join(dir, "Cargo.toml"))

	entries, err := Walk(dir, domain.DefaultScanConfig())
	if err != nil {
		t.Fatal(err)
	}

	got := map[string]bool{}
	for _, e := range entries {
		got[e.Path] = true
	}
	if !got["lib.rs"] || !got["app.ts"] {
		t.Errorf("allowed extensions missing: %v", got)
	}
	if got["notes.md"] || got["Cargo.toml"] {
		t.Errorf("disallowed extensions included: %v", got)
	}
}

func TestWalk_ExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "lib.rs"))
	writeFile(t, filepath.Join(dir, "target", "debug", "lib.rs"))
	writeFile(t, filepath.Join(dir, "node_modules", "pkg", "index.js"))
	writeFile(t, filepath.Join(dir, ".security_backup", "old.rs"))

	entries, err := Walk(dir, domain.DefaultScanConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Path != "src/lib.rs" {
		t.Fatalf("expected only src/lib.rs, got %v", entries)
	}
}

func TestWalk_SkipTestFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib.rs"))
	writeFile(t, filepath.Join(dir, "lib_test.rs"))
	writeFile(t, filepath.Join(dir, "app.spec.ts"))

	cfg := domain.DefaultScanConfig()
	cfg.SkipTestFiles = true
	entries, err := Walk(dir, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Path != "lib.rs" {
		t.Fatalf("expected only lib.rs, got %v", entries)
	}

	cfg.SkipTestFiles = false
	entries, err = Walk(dir, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries without test skipping, got %d", len(entries))
	}
}

// A cyclic directory symlink must not cause infinite traversal, and the
// files behind it must be reported once.
func TestWalk_SymlinkCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "lib.rs"))

	if err := os.Symlink(filepath.Join(dir, "a"), filepath.Join(dir, "a", "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	entries, err := Walk(dir, domain.DefaultScanConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Path != "a/lib.rs" {
		t.Fatalf("expected a/lib.rs exactly once, got %v", entries)
	}
}

func TestWalk_FollowsSymlinkedDirectory(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "shared.rs"))

	if err := os.Symlink(outside, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	entries, err := Walk(dir, domain.DefaultScanConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Path != "linked/shared.rs" {
		t.Fatalf("expected linked/shared.rs, got %v", entries)
	}
}
