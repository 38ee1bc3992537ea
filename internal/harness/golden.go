package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/rpath/internal/render"
)

// Snapshot is the golden form of a scenario outcome.
type Snapshot struct {
	ScenarioName string `json:"scenario_name"`
	Expression   string `json:"expression"`
	Value        any    `json:"value"`
	Error        string `json:"error,omitempty"`
}

// toCanonicalMap converts a Snapshot to a map for canonical JSON. Absent
// results render as a null value.
func (s *Snapshot) toCanonicalMap() map[string]any {
	out := map[string]any{
		"scenario_name": s.ScenarioName,
		"expression":    s.Expression,
		"value":         s.Value,
	}
	if s.Error != "" {
		out["error"] = s.Error
	}
	return out
}

// GoldenBytes renders the golden snapshot of a scenario result.
func GoldenBytes(name string, result *Result) ([]byte, error) {
	snapshot := Snapshot{
		ScenarioName: name,
		Expression:   result.Expression,
		Value:        result.Value,
		Error:        result.ErrorCode,
	}
	return render.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its outcome against a
// golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario cannot be executed. Test failure (via
// goldie) occurs if the outcome doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against the golden file for
// scenarioName without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := GoldenBytes(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
