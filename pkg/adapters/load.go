package adapters

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/roach88/rpath/pkg/xmltree"
)

// Load reads the graph at path from fs and returns it together with the
// name of the built-in adapter that walks it:
//
//	directory     -> the path itself, filesystem
//	.xml          -> *xmltree.Document, xml
//	.yaml, .yml   -> *yaml.Node, yaml
//	.json         -> map[string]any, map_graph
//	.cue          -> cue.Value, cue
//
// A nil fs reads the host filesystem.
func Load(fs afero.Fs, path string) (any, string, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	info, err := fs.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("load graph: %w", err)
	}
	if info.IsDir() {
		return filepath.Clean(path), NameFilesystem, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, "", fmt.Errorf("load graph: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xml":
		doc, err := xmltree.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("load graph %s: %w", path, err)
		}
		return doc, NameXML, nil

	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, "", fmt.Errorf("load graph %s: %w", path, err)
		}
		return &node, NameYAML, nil

	case ".json":
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, "", fmt.Errorf("load graph %s: %w", path, err)
		}
		if m == nil {
			return nil, "", fmt.Errorf("load graph %s: document is not an object", path)
		}
		return m, NameMapGraph, nil

	case ".cue":
		v := cuecontext.New().CompileBytes(data, cue.Filename(path))
		if err := v.Err(); err != nil {
			return nil, "", fmt.Errorf("load graph %s: %w", path, err)
		}
		return v, NameCUE, nil

	default:
		return nil, "", fmt.Errorf("load graph %s: unsupported extension %q", path, ext)
	}
}
