package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rpath/internal/plan"
	"github.com/roach88/rpath/pkg/adapters"
)

// Scenario defines a conformance scenario: one expression evaluated on one
// graph.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Adapter is the built-in adapter to evaluate with. If empty it is
	// chosen from the graph: the file extension for Graph, map_graph for
	// MapGraph.
	Adapter string `yaml:"adapter,omitempty"`

	// Graph is the path of the graph file or directory. Relative paths are
	// resolved against the scenario file's directory by LoadScenario.
	Graph string `yaml:"graph,omitempty"`

	// MapGraph is an inline JSON-shaped graph.
	MapGraph map[string]any `yaml:"map_graph,omitempty"`

	// Steps build the expression. No steps means the root itself.
	Steps []plan.Step `yaml:"steps"`

	// Expect states the required outcome.
	Expect Expect `yaml:"expect"`
}

// Expect is the required outcome of a scenario. Exactly one field is set.
type Expect struct {
	// Value is the rendered result, compared as canonical JSON.
	Value any `yaml:"value,omitempty"`

	// Absent requires an absent result.
	Absent bool `yaml:"absent,omitempty"`

	// Error requires an error with this code.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Graph != "" && !filepath.IsAbs(scenario.Graph) {
		scenario.Graph = filepath.Join(filepath.Dir(path), scenario.Graph)
	}
	if scenario.Graph != "" {
		if _, err := os.Stat(scenario.Graph); err != nil {
			return nil, fmt.Errorf("invalid scenario: graph not found: %s", scenario.Graph)
		}
	}

	return scenario, nil
}

// ParseScenario parses a scenario document. Graph paths are left as
// written.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches typos like "step:" vs "steps:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Graph == "" && s.MapGraph == nil:
		return fmt.Errorf("one of graph or map_graph is required")
	case s.Graph != "" && s.MapGraph != nil:
		return fmt.Errorf("graph and map_graph are mutually exclusive")
	}

	if s.Adapter != "" && !slices.Contains(adapters.Names(), s.Adapter) {
		return fmt.Errorf("unknown adapter %q (known: %v)", s.Adapter, adapters.Names())
	}

	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
	}

	set := 0
	if s.Expect.Value != nil {
		set++
	}
	if s.Expect.Absent {
		set++
	}
	if s.Expect.Error != "" {
		set++
	}
	if set != 1 {
		return fmt.Errorf("expect: exactly one of value, absent or error is required")
	}

	return nil
}
