package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rpath/internal/plan"
)

// ExplainResult is the JSON payload of the explain command.
type ExplainResult struct {
	Description string      `json:"description,omitempty"`
	Expression  string      `json:"expression"`
	Steps       []plan.Step `json:"steps"`
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	var planPath string

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Print the expression a plan builds",
		Long: `Print the expression a plan file builds, without evaluating it.

Forwarded steps are made explicit: a child step on a vertex array shows the
implicit [0].

Example:
  rpath explain --plan second-book.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(rootOpts, planPath, cmd)
		},
	}

	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "plan file (.yaml, .yml, .json, .cue)")

	return cmd
}

func runExplain(opts *RootOptions, planPath string, cmd *cobra.Command) error {
	f, e, err := loadPlan(planPath)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		steps, err := plan.FromExpression(e)
		if err != nil {
			return err
		}
		return opts.formatter(cmd).Success(ExplainResult{
			Description: f.Description,
			Expression:  e.String(),
			Steps:       steps,
		})
	}

	w := cmd.OutOrStdout()
	if f.Description != "" {
		fmt.Fprintf(w, "# %s\n", f.Description)
	}
	fmt.Fprintln(w, e.String())
	return nil
}
