package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/rpath/pkg/expr"
)

// File is the on-disk form of a plan.
type File struct {
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []Step `yaml:"steps" json:"steps"`
}

// Load reads a plan file. YAML (.yaml, .yml) and JSON (.json) are decoded
// with yaml.v3; CUE (.cue) is compiled and must be concrete.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	return Parse(data, filepath.Ext(path), path)
}

// Parse decodes a plan from data. ext selects the format as in Load; name is
// used in error messages and CUE positions.
func Parse(data []byte, ext, name string) (*File, error) {
	var f File

	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse plan %s: %w", name, err)
		}
	case ".cue":
		v := cuecontext.New().CompileBytes(data, cue.Filename(name))
		if err := v.Err(); err != nil {
			return nil, fmt.Errorf("compile plan %s: %w", name, err)
		}
		if err := v.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode plan %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("plan %s: unsupported extension %q", name, ext)
	}

	for i, step := range f.Steps {
		if step.Op == "" {
			return nil, fmt.Errorf("plan %s: step %d has no op", name, i)
		}
	}
	return &f, nil
}

// Expression builds the plan's expression.
func (f *File) Expression() (expr.Expression, error) {
	return Build(f.Steps)
}
