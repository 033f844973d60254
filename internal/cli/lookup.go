package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/fixtrig/internal/fixed"
	"github.com/roach88/fixtrig/internal/lookup"
)

// LookupOptions holds flags for the lookup command.
type LookupOptions struct {
	*RootOptions
	tableFlags
	Wrap  bool
	Turns float64
}

// LookupResult is the json payload of the lookup command.
type LookupResult struct {
	Index    int     `json:"index"`
	Quadrant string  `json:"quadrant"`
	Entry    int     `json:"entry"`
	Negative bool    `json:"negative"`
	Sin      int64   `json:"sin"`
	Cos      int64   `json:"cos"`
	SinFloat float64 `json:"sin_float"`
	CosFloat float64 `json:"cos_float"`
}

// AngleResult is the json payload of lookup --turns.
type AngleResult struct {
	Turns    float64 `json:"turns"`
	Angle    int64   `json:"angle"`
	Index    int     `json:"index"`
	Intra    int64   `json:"intra"`
	Sin      int64   `json:"sin"`
	Cos      int64   `json:"cos"`
	SinFloat float64 `json:"sin_float"`
	CosFloat float64 `json:"cos_float"`
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LookupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lookup <angle-index>",
		Short: "Look up sin and cos of an angle index",
		Long: `Look up sin and cos of an angle index through the quadrant protocol.

Angle indices run from 0 to 2^angle_precision_bits - 1. Out-of-range indices
are rejected unless --wrap is given. With --turns the angle is a fraction of
a full turn and the result is interpolated between neighbouring indices.

Example:
  fixtrig lookup --angle-bits 4 5
  fixtrig lookup --wrap -- -1
  fixtrig lookup --turns 0.125`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(opts, args, cmd)
		},
	}

	opts.tableFlags.register(cmd)
	cmd.Flags().BoolVar(&opts.Wrap, "wrap", false, "wrap the index into range instead of rejecting it")
	cmd.Flags().Float64Var(&opts.Turns, "turns", 0, "angle as a fraction of a full turn (interpolated)")

	return cmd
}

func runLookup(opts *LookupOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	useTurns := cmd.Flags().Changed("turns")
	if useTurns == (len(args) == 1) {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric,
			errors.New("give either an angle index or --turns"), nil)
	}

	p, err := resolveProtocol(opts.RootOptions, &opts.tableFlags, cmd, formatter)
	if err != nil {
		return err
	}

	if useTurns {
		return lookupTurns(formatter, p, opts.Turns)
	}

	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Errorf("invalid angle index %q: %w", args[0], err), nil)
	}
	if opts.Wrap {
		wrapped := p.Normalize(idx)
		if wrapped != idx {
			formatter.VerboseLog("wrapped %d to %d", idx, wrapped)
		}
		idx = wrapped
	}
	sin, err := p.SinChecked(idx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDomain, err, nil)
	}
	cos := p.Cos(idx)
	q, _ := p.QuadrantOf(idx)
	entry, negative := p.TableIndex(idx)

	one := float64(p.One())
	result := LookupResult{
		Index:    idx,
		Quadrant: q.String(),
		Entry:    entry,
		Negative: negative,
		Sin:      sin,
		Cos:      cos,
		SinFloat: float64(sin) / one,
		CosFloat: float64(cos) / one,
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	sign := "+"
	if negative {
		sign = "-"
	}
	fmt.Fprintf(formatter.Writer, "index %d (%s, %stable[%d])\n", idx, result.Quadrant, sign, entry)
	fmt.Fprintf(formatter.Writer, "  sin = %d (%.6f)\n", sin, result.SinFloat)
	fmt.Fprintf(formatter.Writer, "  cos = %d (%.6f)\n", cos, result.CosFloat)
	return nil
}

func lookupTurns(formatter *OutputFormatter, p *lookup.Protocol, turns float64) error {
	trig, err := fixed.NewTrig(p)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidParams, err, nil)
	}

	a := trig.AngleFromTurns(turns)
	idx, intra := trig.Index(a)
	sin, cos := trig.SinCos(a)
	result := AngleResult{
		Turns:    turns,
		Angle:    int64(a),
		Index:    idx,
		Intra:    intra,
		Sin:      int64(sin),
		Cos:      int64(cos),
		SinFloat: trig.Float64(sin),
		CosFloat: trig.Float64(cos),
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%g turns (angle %d, index %d + %d)\n", turns, result.Angle, idx, intra)
	fmt.Fprintf(formatter.Writer, "  sin = %d (%s)\n", result.Sin, trig.String(sin))
	fmt.Fprintf(formatter.Writer, "  cos = %d (%s)\n", result.Cos, trig.String(cos))
	return nil
}
