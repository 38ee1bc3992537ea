package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/rpath/internal/store"
	"github.com/roach88/rpath/pkg/expr"
)

// SnapshotOptions holds flags for the snapshot commands.
type SnapshotOptions struct {
	*RootOptions
	Database    string
	Adapter     string
	Label       string
	MaxVertices int
}

// NewSnapshotCommand creates the snapshot command and its list and delete
// subcommands.
func NewSnapshotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SnapshotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "snapshot <graph>",
		Short: "Store a graph in a snapshot database",
		Long: `Walk a graph through its adapter and store every vertex, so plans can
later be evaluated on it with "rpath eval --db --snapshot".

The database is created if it doesn't exist.

Examples:
  rpath snapshot library.xml --db graphs.db --label nightly
  rpath snapshot list --db graphs.db
  rpath snapshot delete 0190... --db graphs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotSave(opts, args[0], cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")
	cmd.Flags().StringVarP(&opts.Adapter, "adapter", "a", "", "registered adapter id")
	cmd.Flags().StringVar(&opts.Label, "label", "", "snapshot label")
	cmd.Flags().IntVar(&opts.MaxVertices, "max-vertices", store.DefaultMaxVertices, "refuse graphs with more vertices")

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List stored snapshots",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotList(opts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a stored snapshot",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotDelete(opts, args[0], cmd)
		},
	})

	return cmd
}

func (o *SnapshotOptions) openStore() (*store.Store, error) {
	if o.Database == "" {
		return nil, NewExitError(ExitCommandError, "--db is required")
	}
	st, err := store.Open(o.Database, store.WithMaxVertices(o.MaxVertices))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runSnapshotSave(opts *SnapshotOptions, graphPath string, cmd *cobra.Command) error {
	if err := opts.prepare(); err != nil {
		return err
	}

	graph, id, err := opts.loadGraph(graphPath, opts.Adapter)
	if err != nil {
		return err
	}
	a, err := expr.Resolve(graph, id, opts.registry)
	if err != nil {
		return WrapExitError(ExitCommandError, "unknown adapter", err)
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	snap, err := st.SaveGraph(commandContext(cmd), graph, a, opts.Label)
	if err != nil {
		if errors.Is(err, store.ErrTooManyVertices) {
			return WrapExitError(ExitCommandError, "graph too large", err)
		}
		return WrapExitError(ExitFailure, "failed to save snapshot", err)
	}
	slog.Info("snapshot saved", "id", snap.ID, "vertices", snap.VertexCount, "adapter", id)

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(snap)
	}
	fmt.Fprintln(cmd.OutOrStdout(), snap.ID)
	return nil
}

func runSnapshotList(opts *SnapshotOptions, cmd *cobra.Command) error {
	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snapshots, err := st.Snapshots(commandContext(cmd))
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list snapshots", err)
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(snapshots)
	}

	w := cmd.OutOrStdout()
	if len(snapshots) == 0 {
		fmt.Fprintln(w, "No snapshots.")
		return nil
	}
	for _, s := range snapshots {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d vertices\t%s\n", s.Seq, s.ID, s.Adapter, s.VertexCount, s.Label)
	}
	return nil
}

func runSnapshotDelete(opts *SnapshotOptions, id string, cmd *cobra.Command) error {
	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteSnapshot(commandContext(cmd), id); err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			return WrapExitError(ExitCommandError, "unknown snapshot", err).WithCode(ErrCodeNotFound, id)
		}
		return WrapExitError(ExitFailure, "failed to delete snapshot", err)
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(map[string]string{"deleted": id})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	return nil
}
