// Package harness runs rpath conformance scenarios.
//
// A scenario evaluates one expression, given as plan steps, on one graph
// and states what the evaluation must produce.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: second_book_title
//	description: "At(1) picks the second matching child"
//	adapter: xml                  # built-in name, inferred from graph extension if omitted
//	graph: graphs/library.xml     # relative to the scenario file
//	steps:
//	  - op: child
//	    name: library
//	  - op: child
//	    name: book
//	  - op: at
//	    index: 1
//	  - op: attr
//	    name: id
//	expect:
//	  value: "b2"
//
// Instead of graph, map_graph embeds a JSON-shaped graph evaluated with the
// map_graph adapter. expect takes exactly one of:
//
//   - value: the rendered result (see render.Value)
//   - absent: true
//   - error: an error code such as UNSUPPORTED_CAPABILITY
//
// # Golden Files
//
// RunWithGolden additionally snapshots the scenario outcome as canonical
// JSON under testdata/golden/<name>.golden:
//
//	go test ./internal/harness -update
//
// Each scenario runs against its own registry and metrics collector, so
// scenarios never observe each other's adapters or counters.
package harness
