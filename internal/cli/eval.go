package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rpath/internal/metrics"
	"github.com/roach88/rpath/internal/render"
	"github.com/roach88/rpath/internal/store"
	"github.com/roach88/rpath/pkg/adapter"
	"github.com/roach88/rpath/pkg/errs"
	"github.com/roach88/rpath/pkg/expr"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Plan     string
	Adapter  string
	Stats    bool
	Database string
	Snapshot string
}

// EvalResult is the JSON payload of the eval command.
type EvalResult struct {
	Expression string             `json:"expression"`
	Value      any                `json:"value"`
	Absent     bool               `json:"absent,omitempty"`
	Calls      map[string]float64 `json:"calls,omitempty"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval [graph]",
		Short: "Evaluate a plan on a graph",
		Long: `Evaluate the expression described by a plan file on a graph.

The graph is a file (.xml, .yaml, .yml, .json, .cue) or a directory. The
adapter is chosen from the file type unless --adapter names a registered
adapter id. With --db and --snapshot the expression is evaluated on a
stored snapshot instead.

Absent results print <absent> (text) or "absent": true (json).

Exit codes:
  0 - Evaluated (including absent results)
  1 - Evaluation error
  2 - Command error (missing plan or graph, unknown adapter, etc.)

Examples:
  rpath eval library.xml --plan second-book.yaml
  rpath eval ./src --adapter filesystem --plan readme.yaml --stats
  rpath eval --db graphs.db --snapshot 0190... --plan second-book.yaml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Plan, "plan", "p", "", "plan file (.yaml, .yml, .json, .cue)")
	cmd.Flags().StringVarP(&opts.Adapter, "adapter", "a", "", "registered adapter id")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "report adapter calls")
	cmd.Flags().StringVar(&opts.Database, "db", "", "snapshot database")
	cmd.Flags().StringVar(&opts.Snapshot, "snapshot", "", "snapshot id (requires --db)")

	return cmd
}

func runEval(opts *EvalOptions, args []string, cmd *cobra.Command) error {
	if err := opts.prepare(); err != nil {
		return err
	}

	_, e, err := loadPlan(opts.Plan)
	if err != nil {
		return err
	}

	graph, a, cleanup, err := opts.resolveTarget(commandContext(cmd), args)
	if err != nil {
		return err
	}
	defer cleanup()

	var collector *metrics.Collector
	evalAdapter := a
	if opts.Stats {
		collector = metrics.NewCollector()
		evalAdapter = metrics.Instrument(a, collector)
	}

	start := time.Now()
	value, evalErr := e.Eval(graph, evalAdapter)
	if collector != nil {
		collector.ObserveEval(start, value, evalErr)
	}
	slog.Debug("evaluated", "expression", e.String(), "absent", value == nil, "error", evalErr)

	if evalErr != nil {
		return WrapExitError(ExitFailure, "evaluation failed", evalErr).
			WithCode(ErrCodeEvalFailed, map[string]string{"code": string(errs.CodeOf(evalErr))})
	}

	rendered, err := render.Value(e, value, a)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to render result", err)
	}

	result := EvalResult{
		Expression: e.String(),
		Value:      rendered,
		Absent:     value == nil,
	}
	if collector != nil {
		calls, err := collector.Calls()
		if err != nil {
			return err
		}
		result.Calls = calls
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(result)
	}
	return outputEvalText(cmd, result)
}

// resolveTarget returns the graph and adapter to evaluate on. cleanup
// releases the snapshot store, if one was opened.
func (o *EvalOptions) resolveTarget(ctx context.Context, args []string) (any, adapter.Adapter, func(), error) {
	noop := func() {}

	if o.Database != "" || o.Snapshot != "" {
		if o.Database == "" || o.Snapshot == "" {
			return nil, nil, noop, NewExitError(ExitCommandError, "--db and --snapshot must be given together")
		}
		if len(args) > 0 {
			return nil, nil, noop, NewExitError(ExitCommandError, "a graph argument cannot be combined with --snapshot")
		}

		st, err := store.Open(o.Database)
		if err != nil {
			return nil, nil, noop, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		snap, err := st.Snapshot(ctx, o.Snapshot)
		if err != nil {
			st.Close()
			if errors.Is(err, store.ErrSnapshotNotFound) {
				return nil, nil, noop, WrapExitError(ExitCommandError, "unknown snapshot", err).WithCode(ErrCodeNotFound, o.Snapshot)
			}
			return nil, nil, noop, err
		}
		return snap, store.NewSnapshotAdapter(st), func() { st.Close() }, nil
	}

	if len(args) == 0 {
		return nil, nil, noop, NewExitError(ExitCommandError, "a graph argument or --db/--snapshot is required")
	}

	graph, id, err := o.loadGraph(args[0], o.Adapter)
	if err != nil {
		return nil, nil, noop, err
	}
	a, err := expr.Resolve(graph, id, o.registry)
	if err != nil {
		return nil, nil, noop, WrapExitError(ExitCommandError, "unknown adapter", err)
	}
	return graph, a, noop, nil
}

func outputEvalText(cmd *cobra.Command, result EvalResult) error {
	w := cmd.OutOrStdout()

	text := render.Absent
	if !result.Absent {
		var err error
		text, err = render.Text(result.Value)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to render result", err)
		}
	}
	fmt.Fprintln(w, text)

	if result.Calls != nil {
		fmt.Fprintln(w, "calls:")
		for _, capability := range render.SortedKeys(result.Calls) {
			fmt.Fprintf(w, "  %s: %g\n", capability, result.Calls[capability])
		}
	}
	return nil
}
