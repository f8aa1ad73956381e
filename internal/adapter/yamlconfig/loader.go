package yamlconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"bytemomo/dredge/internal/domain"
)

// Profile is a reusable scan configuration: walker/matcher settings,
// extra rule packs and inline rule definitions. Profiles let CI keep
// one checked-in file instead of a flag soup.
type Profile struct {
	Name string            `yaml:"name,omitempty"`
	Scan domain.ScanConfig `yaml:"scan,omitempty"`

	// RulePacks are YAML rule files loaded on top of the builtin
	// catalog. Relative paths resolve against the profile file.
	RulePacks []string `yaml:"rule_packs,omitempty"`

	// Rules are additional inline rule definitions.
	Rules []*domain.Rule `yaml:"rules,omitempty"`

	// DisableBuiltin drops the builtin catalog so the profile's own
	// rules stand alone.
	DisableBuiltin bool `yaml:"disable_builtin,omitempty"`
}

// LoadProfile reads and validates a scan profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %q: %w", path, err)
	}

	profileDir := filepath.Dir(path)
	for i, pack := range profile.RulePacks {
		if !filepath.IsAbs(pack) {
			profile.RulePacks[i] = filepath.Join(profileDir, pack)
		}
	}

	for i, rule := range profile.Rules {
		if rule == nil {
			return nil, fmt.Errorf("profile %q: rule %d is empty", path, i)
		}
	}

	if profile.DisableBuiltin && len(profile.Rules) == 0 && len(profile.RulePacks) == 0 {
		return nil, fmt.Errorf("profile %q disables builtin rules but supplies none", path)
	}

	return &profile, nil
}
