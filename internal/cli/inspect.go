package cli

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/roach88/fixtrig/internal/analysis"
	"github.com/roach88/fixtrig/internal/lookup"
	"github.com/roach88/fixtrig/internal/manifest"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	tableFlags
	Plot   bool
	Width  int
	Height int
}

// InspectResult is the json payload of the inspect command.
type InspectResult struct {
	analysis.Report
	Digest string `json:"digest"`
	Plot   string `json:"plot,omitempty"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Report table accuracy against the float reference",
		Long: `Report how far a table strays from the exact sine.

Errors are in units of the last place (one fixed-point step), for the
quarter table and for the whole reconstructed period. --plot draws one
period of the reconstructed sine.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, cmd)
		},
	}

	opts.tableFlags.register(cmd)
	cmd.Flags().BoolVar(&opts.Plot, "plot", false, "plot one period of the reconstructed sine")
	cmd.Flags().IntVar(&opts.Width, "width", 64, "plot width in samples")
	cmd.Flags().IntVar(&opts.Height, "height", 15, "plot height in rows")

	return cmd
}

func runInspect(opts *InspectOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	_, t, err := resolveTable(opts.RootOptions, &opts.tableFlags, cmd, formatter)
	if err != nil {
		return err
	}

	digest, err := manifest.Digest(t)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err, nil)
	}

	result := InspectResult{
		Report: analysis.Analyze(t),
		Digest: digest,
	}
	if opts.Plot {
		series := analysis.Series(lookup.New(t), opts.Width)
		result.Plot = asciigraph.Plot(series,
			asciigraph.Height(opts.Height),
			asciigraph.Width(opts.Width),
			asciigraph.Caption(fmt.Sprintf("sin, %d of %d angle indices", len(series), t.Resolution())),
		)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprint(formatter.Writer, result.Report.String())
	fmt.Fprintf(formatter.Writer, "digest: %s\n", digest)
	if result.Plot != "" {
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintln(formatter.Writer, result.Plot)
	}
	return nil
}
