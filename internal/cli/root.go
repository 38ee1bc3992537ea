package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roach88/rpath/internal/config"
	"github.com/roach88/rpath/pkg/adapters"
	"github.com/roach88/rpath/pkg/registry"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Fs is where graphs and the config file are read from. Nil means the
	// host filesystem.
	Fs afero.Fs

	config   *config.Config
	registry *registry.Registry
}

// ValidFormats defines the allowed output formats.
var ValidFormats = config.Formats

// NewRootCommand creates the root command for the rpath CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

// Main runs the CLI with args and returns the process exit code. Errors
// are written as a JSON error response on stdout with --format json, and
// as an "Error:" line on stderr otherwise.
func Main(args []string, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	switch {
	case alreadyReported(err):
	case opts.Format == "json":
		f := &OutputFormatter{Format: "json", Writer: stdout}
		if writeErr := f.Error(ErrorCode(err), err.Error(), errorDetails(err)); writeErr != nil {
			fmt.Fprintln(stderr, "Error:", err)
		}
	default:
		fmt.Fprintln(stderr, "Error:", err)
	}
	return GetExitCode(err)
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rpath",
		Short: "rpath - graph queries over any adapter",
		Long:  "Evaluate rpath expressions on XML, YAML, CUE, JSON and filesystem graphs.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(opts, cmd.ErrOrStderr())

			if err := opts.prepare(); err != nil {
				return err
			}
			// A format from the config file applies unless given as a flag.
			if opts.config.Format != "" && !cmd.Flags().Changed("format") {
				opts.Format = opts.config.Format
			}
			if !isValidFormat(opts.Format) {
				err := NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
				// Main must not answer in an unknown format.
				opts.Format = "text"
				return err
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewAdaptersCommand(opts))
	cmd.AddCommand(NewSnapshotCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// prepare loads the config file and builds the adapter registry: every
// built-in under its own name, then the configured adapters in order.
// It runs once; commands constructed without the root call it lazily.
func (o *RootOptions) prepare() error {
	if o.registry != nil {
		return nil
	}
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}

	o.config = &config.Config{}
	if o.ConfigPath != "" {
		cfg, err := config.Load(o.Fs, o.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err).WithCode(ErrCodeLoadFailed, o.ConfigPath)
		}
		o.config = cfg
	}

	reg := registry.New()
	for _, name := range adapters.Names() {
		a, err := adapters.New(name)
		if err != nil {
			return err
		}
		reg.Register(a, registry.ID(name))
	}
	if _, err := o.config.Apply(reg); err != nil {
		return WrapExitError(ExitCommandError, "failed to register configured adapters", err)
	}

	o.registry = reg
	slog.Debug("registry ready", "adapters", len(reg.IDs()), "config", o.ConfigPath)
	return nil
}

// configureLogging installs the process logger: debug level when verbose,
// info otherwise.
func configureLogging(opts *RootOptions, w io.Writer) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: o.Verbose,
	}
}
