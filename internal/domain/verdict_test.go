package domain

import "testing"

func TestComputeVerdict_Precedence(t *testing.T) {
	tests := []struct {
		name       string
		counts     map[Severity]int
		expected   Status
		deployable bool
	}{
		{
			name:       "critical dominates everything",
			counts:     map[Severity]int{SeverityCritical: 1, SeverityHigh: 10, SeverityMedium: 3},
			expected:   StatusCritical,
			deployable: false,
		},
		{
			name:       "high without critical",
			counts:     map[Severity]int{SeverityHigh: 2, SeverityLow: 7},
			expected:   StatusHighRisk,
			deployable: false,
		},
		{
			name:       "medium and below are acceptable",
			counts:     map[Severity]int{SeverityMedium: 5, SeverityLow: 2, SeverityInfo: 9},
			expected:   StatusAcceptable,
			deployable: true,
		},
		{
			name:       "empty histogram",
			counts:     map[Severity]int{},
			expected:   StatusAcceptable,
			deployable: true,
		},
		{
			name:       "nil histogram",
			counts:     nil,
			expected:   StatusAcceptable,
			deployable: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := ComputeVerdict(tc.counts)
			if v.Status != tc.expected {
				t.Errorf("expected status %q, got %q", tc.expected, v.Status)
			}
			if v.DeploymentReady != tc.deployable {
				t.Errorf("expected deployment_ready=%v, got %v", tc.deployable, v.DeploymentReady)
			}
			if v.Recommendation == "" {
				t.Error("recommendation must never be empty")
			}
		})
	}
}

func TestComputeVerdict_Deterministic(t *testing.T) {
	counts := map[Severity]int{SeverityCritical: 3, SeverityHigh: 1}
	first := ComputeVerdict(counts)
	for i := 0; i < 10; i++ {
		if got := ComputeVerdict(counts); got != first {
			t.Fatalf("verdict changed between runs: %+v vs %+v", got, first)
		}
	}
}

// Adding a critical finding to any histogram must never turn an
// undeployable verdict into a deployable one.
func TestComputeVerdict_CriticalMonotonicity(t *testing.T) {
	histograms := []map[Severity]int{
		{},
		{SeverityHigh: 1},
		{SeverityMedium: 4},
		{SeverityCritical: 2},
	}

	for _, h := range histograms {
		before := ComputeVerdict(h)
		h[SeverityCritical]++
		after := ComputeVerdict(h)
		if after.DeploymentReady {
			t.Errorf("adding a critical made histogram %v deployable", h)
		}
		if !before.DeploymentReady && after.DeploymentReady {
			t.Errorf("deployment flag flipped false->true for %v", h)
		}
	}
}

func TestSeverity_Rank(t *testing.T) {
	order := Severities()
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() <= order[i].Rank() {
			t.Errorf("severity %s should rank above %s", order[i-1], order[i])
		}
	}
	if Severity("BOGUS").Rank() != 0 {
		t.Error("unknown severity should rank 0")
	}
}
