// Package metrics counts adapter capability calls and evaluation outcomes
// with Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roach88/rpath/pkg/adapter"
)

// Evaluation outcomes.
const (
	OutcomeValue  = "value"
	OutcomeAbsent = "absent"
	OutcomeError  = "error"
)

// Collector owns a Prometheus registry and the rpath metrics registered in
// it. Each Collector is independent, so tests can create their own.
type Collector struct {
	Registry *prometheus.Registry

	// AdapterCalls counts capability calls made through Instrument,
	// labeled by capability (name, adjacent, attribute, content, root).
	AdapterCalls *prometheus.CounterVec

	// Evaluations counts evaluations by outcome (value, absent, error).
	Evaluations *prometheus.CounterVec

	// EvalDuration measures evaluation time.
	EvalDuration prometheus.Histogram
}

// NewCollector creates a Collector with a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		Registry: reg,
		AdapterCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpath_adapter_calls_total",
				Help: "Total number of adapter capability calls",
			},
			[]string{"capability"},
		),
		Evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpath_evaluations_total",
				Help: "Total number of expression evaluations by outcome",
			},
			[]string{"outcome"},
		),
		EvalDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rpath_eval_duration_seconds",
				Help:    "Duration of expression evaluations in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
	}
}

// ObserveEval records the outcome of one evaluation that started at start.
func (c *Collector) ObserveEval(start time.Time, result any, err error) {
	c.EvalDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.Evaluations.WithLabelValues(OutcomeError).Inc()
	case result == nil:
		c.Evaluations.WithLabelValues(OutcomeAbsent).Inc()
	default:
		c.Evaluations.WithLabelValues(OutcomeValue).Inc()
	}
}

// Calls returns the current call counts keyed by capability.
func (c *Collector) Calls() (map[string]float64, error) {
	families, err := c.Registry.Gather()
	if err != nil {
		return nil, err
	}

	out := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "rpath_adapter_calls_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "capability" {
					out[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	return out, nil
}

// Instrument wraps a so every capability call is counted in c. The wrapper
// implements adapter.AttributeLister when a does.
func Instrument(a adapter.Adapter, c *Collector) adapter.Adapter {
	in := &instrumented{inner: a, calls: c.AdapterCalls}
	if lister, ok := a.(adapter.AttributeLister); ok {
		return &instrumentedLister{instrumented: in, lister: lister}
	}
	return in
}

type instrumented struct {
	inner adapter.Adapter
	calls *prometheus.CounterVec
}

func (i *instrumented) AdaptsTo(graph any) bool {
	return i.inner.AdaptsTo(graph)
}

func (i *instrumented) Root(graph any) adapter.Vertex {
	i.calls.WithLabelValues("root").Inc()
	return i.inner.Root(graph)
}

func (i *instrumented) Name(v adapter.Vertex) (string, error) {
	i.calls.WithLabelValues(adapter.CapName).Inc()
	return i.inner.Name(v)
}

func (i *instrumented) Adjacent(v adapter.Vertex) ([]adapter.Vertex, error) {
	i.calls.WithLabelValues(adapter.CapAdjacent).Inc()
	return i.inner.Adjacent(v)
}

func (i *instrumented) Attribute(v adapter.Vertex, name string) (any, error) {
	i.calls.WithLabelValues(adapter.CapAttribute).Inc()
	return i.inner.Attribute(v, name)
}

func (i *instrumented) Content(v adapter.Vertex) (any, error) {
	i.calls.WithLabelValues(adapter.CapContent).Inc()
	return i.inner.Content(v)
}

type instrumentedLister struct {
	*instrumented
	lister adapter.AttributeLister
}

func (i *instrumentedLister) Attributes(v adapter.Vertex) (map[string]any, error) {
	i.calls.WithLabelValues("attributes").Inc()
	return i.lister.Attributes(v)
}
