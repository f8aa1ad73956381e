package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"bytemomo/dredge/internal/domain"
)

// ErrRootNotFound is returned when the scan root does not exist or is
// not a directory.
var ErrRootNotFound = errors.New("scan root not found")

// FileEntry describes one candidate source file, with its path relative
// to the scan root.
type FileEntry struct {
	Path string
	Abs  string
	Ext  string
}

// Walk enumerates the files to scan under root, applying the extension
// allow-list and exclusion globs of cfg. Directory symlinks are
// followed, with a visited-canonical-path guard so cyclic links cannot
// cause infinite traversal. Each call restarts from scratch; the walker
// keeps no state between runs.
func Walk(root string, cfg domain.ScanConfig) ([]FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}

	w := &walk{
		cfg:     cfg,
		allowed: make(map[string]struct{}, len(cfg.Extensions)),
		visited: make(map[string]struct{}),
	}
	for _, ext := range cfg.Extensions {
		w.allowed[strings.ToLower(ext)] = struct{}{}
	}

	if err := w.dir(absRoot, ""); err != nil {
		return nil, err
	}
	return w.entries, nil
}

type walk struct {
	cfg     domain.ScanConfig
	allowed map[string]struct{}
	visited map[string]struct{}
	entries []FileEntry
}

func (w *walk) dir(abs, rel string) error {
	// The canonical path is the cycle guard: a symlink loop resolves to
	// a directory already seen and is skipped instead of recursed.
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil
	}
	if _, seen := w.visited[canon]; seen {
		return nil
	}
	w.visited[canon] = struct{}{}

	dirEntries, err := os.ReadDir(abs)
	if err != nil {
		// Unreadable directories are skipped, not fatal.
		return nil
	}

	for _, entry := range dirEntries {
		name := entry.Name()
		if w.excluded(name) {
			continue
		}

		childAbs := filepath.Join(abs, name)
		childRel := name
		if rel != "" {
			childRel = rel + "/" + name
		}

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(childAbs)
			if err != nil {
				continue
			}
			isDir = target.IsDir()
		}

		if isDir {
			if err := w.dir(childAbs, childRel); err != nil {
				return err
			}
			continue
		}

		w.file(childAbs, childRel, name)
	}
	return nil
}

func (w *walk) file(abs, rel, name string) {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := w.allowed[ext]; !ok {
		return
	}
	if w.cfg.SkipTestFiles && isTestFile(name) {
		return
	}
	w.entries = append(w.entries, FileEntry{Path: rel, Abs: abs, Ext: ext})
}

func (w *walk) excluded(name string) bool {
	for _, glob := range w.cfg.ExcludeGlobs {
		if ok, err := filepath.Match(glob, name); err == nil && ok {
			return true
		}
	}
	return false
}

var testSuffixes = []string{
	"_test.rs",
	".test.ts", ".test.tsx", ".test.js",
	".spec.ts", ".spec.tsx", ".spec.js",
	".t.sol",
}

func isTestFile(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range testSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
