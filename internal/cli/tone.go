package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/spf13/cobra"

	"github.com/roach88/fixtrig/internal/tone"
)

// ToneOptions holds flags for the tone command.
type ToneOptions struct {
	*RootOptions
	tableFlags
	Frequency float64
	Duration  time.Duration
	Fade      time.Duration
	Rate      int
	Output    string
}

// ToneResult is the json payload of the tone command.
type ToneResult struct {
	Output     string  `json:"output"`
	Frequency  float64 `json:"frequency"`
	SampleRate int     `json:"sample_rate"`
	Samples    int     `json:"samples"`
}

// NewToneCommand creates the tone command.
func NewToneCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ToneOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tone",
		Short: "Render a sine tone from table lookups to a WAV file",
		Long: `Render a sine tone whose every sample is a quadrant lookup.

Useful for hearing the quantization of coarse tables.

Example:
  fixtrig tone --preset coarse --freq 440 --duration 2s -o coarse.wav`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTone(opts, cmd)
		},
	}

	opts.tableFlags.register(cmd)
	cmd.Flags().Float64Var(&opts.Frequency, "freq", 440, "tone frequency in Hz")
	cmd.Flags().DurationVar(&opts.Duration, "duration", time.Second, "tone length")
	cmd.Flags().DurationVar(&opts.Fade, "fade", 10*time.Millisecond, "fade in and out length")
	cmd.Flags().IntVar(&opts.Rate, "rate", int(tone.DefaultSampleRate), "sample rate in Hz")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "WAV file to write (required)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runTone(opts *ToneOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Duration <= 0 || opts.Rate <= 0 {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, errors.New("duration and rate must be positive"), nil)
	}

	p, err := resolveProtocol(opts.RootOptions, &opts.tableFlags, cmd, formatter)
	if err != nil {
		return err
	}

	rate := beep.SampleRate(opts.Rate)
	osc, err := tone.NewOscillator(p, opts.Frequency, opts.Duration, rate)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err, nil)
	}

	slog.Debug("rendering tone", "freq", opts.Frequency, "samples", osc.Len(), "rate", opts.Rate)
	if err := tone.WriteFile(opts.Output, tone.Fade(osc, opts.Duration, opts.Fade, rate), rate); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err, nil)
	}

	result := ToneResult{
		Output:     opts.Output,
		Frequency:  opts.Frequency,
		SampleRate: opts.Rate,
		Samples:    osc.Len(),
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "Wrote %d samples of %g Hz at %d Hz to %s\n",
		result.Samples, result.Frequency, result.SampleRate, result.Output)
	return nil
}
