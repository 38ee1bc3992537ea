package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AdapterInfo describes one registered adapter.
type AdapterInfo struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// NewAdaptersCommand creates the adapters command.
func NewAdaptersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "adapters",
		Short: "List registered adapters",
		Long: `List the registered adapter ids in registration order.

All built-in adapters are registered under their own names, followed by the
adapters declared in the config file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdapters(rootOpts, cmd)
		},
	}
}

func runAdapters(opts *RootOptions, cmd *cobra.Command) error {
	if err := opts.prepare(); err != nil {
		return err
	}

	ids := opts.registry.IDs()
	infos := make([]AdapterInfo, 0, len(ids))
	for _, id := range ids {
		infos = append(infos, AdapterInfo{
			ID:   string(id),
			Type: fmt.Sprintf("%T", opts.registry.Find(id)),
		})
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(infos)
	}

	w := cmd.OutOrStdout()
	for _, info := range infos {
		fmt.Fprintf(w, "%-12s %s\n", info.ID, info.Type)
	}
	return nil
}
