package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"bytemomo/dredge/internal/domain"
)

// Registry holds the detection rule catalog. It is populated eagerly at
// startup and read-only afterwards, so the matcher can consult it from
// concurrent workers without locking.
type Registry struct {
	rules []*domain.Rule
	byID  map[string]*domain.Rule
}

// NewRegistry creates a new empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]*domain.Rule),
	}
}

// Register validates, compiles and adds a rule. Duplicate IDs and
// uncompilable patterns are configuration errors and fail fast.
func (r *Registry) Register(rule *domain.Rule) error {
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}
	if _, exists := r.byID[rule.ID]; exists {
		return fmt.Errorf("duplicate rule ID %q", rule.ID)
	}
	if err := rule.Compile(); err != nil {
		return err
	}
	r.rules = append(r.rules, rule)
	r.byID[rule.ID] = rule
	return nil
}

// Get retrieves a rule by ID.
func (r *Registry) Get(id string) (*domain.Rule, bool) {
	rule, ok := r.byID[id]
	return rule, ok
}

// All returns the rules in registration order.
func (r *Registry) All() []*domain.Rule {
	return r.rules
}

// ForCategory returns the rules of one category, in registration order.
func (r *Registry) ForCategory(cat domain.Category) []*domain.Rule {
	var out []*domain.Rule
	for _, rule := range r.rules {
		if rule.Category == cat {
			out = append(out, rule)
		}
	}
	return out
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	return len(r.rules)
}

// LoadFromFile loads a rule pack from a YAML file containing a list of
// rule definitions.
func (r *Registry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var rules []*domain.Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return fmt.Errorf("failed to parse rule pack %q: %w", path, err)
	}

	for i, rule := range rules {
		if rule == nil {
			return fmt.Errorf("rule pack %q: entry %d is empty", path, i)
		}
		if err := r.Register(rule); err != nil {
			return fmt.Errorf("rule pack %q: %w", path, err)
		}
	}
	return nil
}

// LoadFromDirectory loads every .yaml/.yml rule pack in a directory.
func (r *Registry) LoadFromDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read rules directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if err := r.LoadFromFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
