package harness

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/roach88/rpath/internal/metrics"
	"github.com/roach88/rpath/internal/plan"
	"github.com/roach88/rpath/internal/render"
	"github.com/roach88/rpath/pkg/adapters"
	"github.com/roach88/rpath/pkg/errs"
	"github.com/roach88/rpath/pkg/expr"
	"github.com/roach88/rpath/pkg/registry"
)

// Harness holds the collaborators shared by scenario runs.
type Harness struct {
	fs     afero.Fs
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithFs reads graph files from fs instead of the host filesystem.
func WithFs(fs afero.Fs) Option {
	return func(h *Harness) {
		h.fs = fs
	}
}

// WithLogger logs scenario progress to l. The default discards logs.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = l
	}
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Load the graph and pick the adapter
//  2. Build the expression from the scenario steps
//  3. Evaluate it with an instrumented adapter in a fresh registry
//  4. Render the result and compare it with the expect clause
//
// An error is returned only when the scenario cannot be executed (graph
// or steps invalid). Evaluation errors are part of the Result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	h := &Harness{
		fs:     afero.NewOsFs(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h.run(scenario)
}

func (h *Harness) run(scenario *Scenario) (*Result, error) {
	graph, name, err := h.loadGraph(scenario)
	if err != nil {
		return nil, err
	}

	e, err := plan.Build(scenario.Steps)
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	base, err := adapters.New(name)
	if err != nil {
		return nil, err
	}

	collector := metrics.NewCollector()
	reg := registry.New()
	id := reg.Register(metrics.Instrument(base, collector), registry.ID(name))

	start := time.Now()
	value, evalErr := e.Eval(graph, id, expr.WithRegistry(reg))
	collector.ObserveEval(start, value, evalErr)

	result := NewResult()
	result.Expression = e.String()

	switch {
	case evalErr != nil:
		result.ErrorCode = string(errs.CodeOf(evalErr))
		result.Error = evalErr.Error()
	case value == nil:
		result.Absent = true
	default:
		// Rendering goes through the bare adapter so Calls reflects the
		// evaluation only.
		rendered, err := render.Value(e, value, base)
		if err != nil {
			return nil, fmt.Errorf("failed to render result: %w", err)
		}
		result.Value = rendered
	}

	calls, err := collector.Calls()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}
	result.Calls = calls

	for _, msg := range CheckExpect(scenario.Expect, result) {
		result.AddError(msg)
	}

	h.logger.Info("scenario evaluated",
		"scenario", scenario.Name,
		"adapter", name,
		"expression", result.Expression,
		"pass", result.Pass,
	)
	return result, nil
}

// loadGraph returns the scenario graph and the built-in adapter name to
// evaluate it with.
func (h *Harness) loadGraph(scenario *Scenario) (any, string, error) {
	if scenario.MapGraph != nil {
		name := scenario.Adapter
		if name == "" {
			name = adapters.NameMapGraph
		}
		return scenario.MapGraph, name, nil
	}

	graph, inferred, err := adapters.Load(h.fs, scenario.Graph)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load graph: %w", err)
	}
	if scenario.Adapter != "" {
		return graph, scenario.Adapter, nil
	}
	return graph, inferred, nil
}
