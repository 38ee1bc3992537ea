// Package adapters provides the built-in rpath adapters.
//
//	Filesystem  path strings over an afero.Fs
//	XML         *xmltree.Document and *xmltree.Element
//	YAML        *yaml.Node
//	CUE         cue.Value
//	MapGraph    map[string]any (JSON-shaped)
//
// None of them are registered by default. Register them explicitly or by
// name with rpath.Use.
package adapters

import (
	"github.com/roach88/rpath/pkg/adapter"
	"github.com/roach88/rpath/pkg/errs"
)

// Built-in adapter names.
const (
	NameFilesystem = "filesystem"
	NameXML        = "xml"
	NameYAML       = "yaml"
	NameCUE        = "cue"
	NameMapGraph   = "map_graph"
)

var builtins = []struct {
	name string
	new  func() adapter.Adapter
}{
	{NameFilesystem, func() adapter.Adapter { return NewFilesystem(nil) }},
	{NameXML, func() adapter.Adapter { return XML{} }},
	{NameYAML, func() adapter.Adapter { return YAML{} }},
	{NameCUE, func() adapter.Adapter { return CUE{} }},
	{NameMapGraph, func() adapter.Adapter { return MapGraph{} }},
}

// Names returns the built-in adapter names in a stable order.
func Names() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.name
	}
	return names
}

// New creates the built-in adapter called name.
func New(name string) (adapter.Adapter, error) {
	for _, b := range builtins {
		if b.name == name {
			return b.new(), nil
		}
	}
	return nil, errs.NewUnknownBuiltin(name, Names())
}
