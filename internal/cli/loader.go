package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/rpath/internal/plan"
	"github.com/roach88/rpath/pkg/adapters"
	"github.com/roach88/rpath/pkg/expr"
	"github.com/roach88/rpath/pkg/registry"
)

// loadPlan reads a plan file and builds its expression.
func loadPlan(path string) (*plan.File, expr.Expression, error) {
	if path == "" {
		return nil, nil, NewExitError(ExitCommandError, "--plan is required")
	}

	f, err := plan.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, WrapExitError(ExitCommandError, fmt.Sprintf("plan not found: %s", path), err).WithCode(ErrCodeNotFound, path)
		}
		return nil, nil, WrapExitError(ExitCommandError, "failed to load plan", err).WithCode(ErrCodeLoadFailed, path)
	}

	e, err := f.Expression()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "invalid plan", err).WithCode(ErrCodeLoadFailed, path)
	}
	return f, e, nil
}

// loadGraph reads the graph at path and picks the adapter id to evaluate it
// with: the explicit id, else the config default, else the built-in matching
// the file type.
func (o *RootOptions) loadGraph(path, adapterID string) (any, registry.ID, error) {
	graph, builtin, err := adapters.Load(o.Fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", WrapExitError(ExitCommandError, fmt.Sprintf("graph not found: %s", path), err).WithCode(ErrCodeNotFound, path)
		}
		return nil, "", WrapExitError(ExitCommandError, "failed to load graph", err).WithCode(ErrCodeLoadFailed, path)
	}

	switch {
	case adapterID != "":
		return graph, registry.ID(adapterID), nil
	case o.config.DefaultAdapter != "":
		return graph, registry.ID(o.config.DefaultAdapter), nil
	default:
		return graph, registry.ID(builtin), nil
	}
}
