package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fixtrig/internal/lookup"
	"github.com/roach88/fixtrig/internal/manifest"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	tableFlags
}

// VerifyResult is the json payload of the verify command.
type VerifyResult struct {
	AngleBits int      `json:"angle_precision_bits"`
	ValueBits int      `json:"value_precision_bits"`
	Entries   int      `json:"entries"`
	Digest    string   `json:"digest"`
	Checks    []string `json:"checks"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Regenerate a table and check its invariants",
		Long: `Regenerate a table and check it.

Checks the table invariants (zero start, exact peak, strictly increasing)
and then every sine identity of the reconstructed period: zero crossings,
peaks, reflection about the peak, half-period antisymmetry and the cosine
phase shift. Exits 1 if any check fails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, cmd)
		},
	}

	opts.tableFlags.register(cmd)

	return cmd
}

func runVerify(opts *VerifyOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	_, t, err := resolveTable(opts.RootOptions, &opts.tableFlags, cmd, formatter)
	if err != nil {
		return err
	}

	checks := []string{"table invariants"}
	if err := t.Verify(); err != nil {
		return formatter.Fail(ExitFailure, ErrCodeInvariant, err, t.Params())
	}
	formatter.VerboseLog("table invariants hold for %d entries", t.Len())

	p := lookup.New(t)
	if err := p.Verify(); err != nil {
		return formatter.Fail(ExitFailure, ErrCodeInvariant, err, t.Params())
	}
	checks = append(checks, lookup.Properties()...)
	formatter.VerboseLog("symmetry holds over %d angle indices", p.Resolution())

	digest, err := manifest.Digest(t)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err, nil)
	}

	result := VerifyResult{
		AngleBits: t.AngleBits(),
		ValueBits: t.ValueBits(),
		Entries:   t.Len(),
		Digest:    digest,
		Checks:    checks,
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ angle_precision_bits=%d value_precision_bits=%d: %d entries, %d angle indices\n",
		result.AngleBits, result.ValueBits, result.Entries, p.Resolution())
	for _, c := range checks {
		fmt.Fprintf(formatter.Writer, "  ✓ %s\n", c)
	}
	fmt.Fprintf(formatter.Writer, "digest: %s\n", digest)
	return nil
}
