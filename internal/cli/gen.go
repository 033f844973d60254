package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/fixtrig/internal/config"
	"github.com/roach88/fixtrig/internal/emit"
	"github.com/roach88/fixtrig/internal/manifest"
	"github.com/roach88/fixtrig/internal/store"
)

// GenOptions holds flags for the gen command.
type GenOptions struct {
	*RootOptions
	tableFlags
	Target  string
	Prefix  string
	Package string
	Output  string
	DB      string
	Force   bool
}

// GenResult is the json payload of the gen command.
type GenResult struct {
	AngleBits int    `json:"angle_precision_bits"`
	ValueBits int    `json:"value_precision_bits"`
	Entries   int    `json:"entries"`
	Target    string `json:"target"`
	Digest    string `json:"digest"`
	Output    string `json:"output,omitempty"`
	Source    string `json:"source,omitempty"`
	RecordID  string `json:"record_id,omitempty"`
	RecordSeq int64  `json:"record_seq,omitempty"`
	Forced    bool   `json:"forced,omitempty"`
}

// NewGenCommand creates the gen command.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a sine table as source code",
		Long: `Generate a quarter-wave sine table and emit it as source code.

The emitted block declares the angle precision, the quarter and full
resolutions and the table itself. With --db the generation is recorded and
checked against the previous digest for the same parameters.

Example:
  fixtrig gen --angle-bits 10 --value-bits 16 > precalc.rs
  fixtrig gen --target go --prefix FAST_SIN --package trig -o sin_table.go
  fixtrig gen --preset audio --db fixtrig.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(opts, cmd)
		},
	}

	opts.tableFlags.register(cmd)
	cmd.Flags().StringVar(&opts.Target, "target", "", fmt.Sprintf("emit target %v (default %q)", emit.Targets(), emit.DefaultTarget))
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", fmt.Sprintf("constant name prefix (default %q)", emit.DefaultPrefix))
	cmd.Flags().StringVar(&opts.Package, "package", "", fmt.Sprintf("package clause for the go target (default %q)", emit.DefaultPackage))
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default stdout)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record the generation in this SQLite database")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "record even if the digest differs from the last one")

	return cmd
}

func runGen(opts *GenOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, t, err := resolveTable(opts.RootOptions, &opts.tableFlags, cmd, formatter)
	if err != nil {
		return err
	}
	opts.applyEmitFlags(cfg, cmd)

	if err := cfg.Validate(); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeTarget, err, nil)
	}

	digest, err := manifest.Digest(t)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err, nil)
	}

	emitOpts := cfg.EmitOptions()
	emitOpts.Digest = digest
	var src bytes.Buffer
	if err := emit.Emit(&src, cfg.Target, t, emitOpts); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeTarget, err, nil)
	}
	slog.Debug("table emitted", "target", cfg.Target, "entries", t.Len(), "digest", digest)

	result := GenResult{
		AngleBits: t.AngleBits(),
		ValueBits: t.ValueBits(),
		Entries:   t.Len(),
		Target:    cfg.Target,
		Digest:    digest,
		Output:    cfg.Output,
	}

	gen := store.Generation{
		AngleBits: t.AngleBits(),
		ValueBits: t.ValueBits(),
		Digest:    digest,
		Target:    cfg.Target,
	}
	ctx := commandContext(cmd)

	// The registry is checked before the file is written and updated
	// after, so a failed write leaves it untouched.
	var st *store.Store
	if cfg.DB != "" {
		st, result.Forced, err = openRegistry(ctx, cfg.DB, gen, opts.Force)
		if err != nil {
			var drift *store.DriftError
			if errors.As(err, &drift) {
				return formatter.Fail(ExitFailure, ErrCodeDrift, err, drift.Recorded)
			}
			return formatter.Fail(ExitCommandError, ErrCodeStore, err, nil)
		}
		defer closeStore(st)
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, src.Bytes(), 0644); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Errorf("writing output file: %w", err), nil)
		}
		formatter.VerboseLog("wrote %d bytes to %s", src.Len(), cfg.Output)
	}

	if st != nil {
		rec, err := st.Record(ctx, gen)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err, nil)
		}
		slog.Debug("generation recorded", "id", rec.ID, "seq", rec.Seq)
		result.RecordID = rec.ID
		result.RecordSeq = rec.Seq
	}

	if formatter.Format == "json" {
		if cfg.Output == "" {
			result.Source = src.String()
		}
		return formatter.Success(result)
	}

	if cfg.Output == "" {
		_, err := formatter.Writer.Write(src.Bytes())
		return err
	}
	fmt.Fprintf(formatter.Writer, "Wrote %s table (%d entries) to %s\n", cfg.Target, t.Len(), cfg.Output)
	fmt.Fprintf(formatter.Writer, "digest: %s\n", digest)
	if result.RecordID != "" {
		fmt.Fprintf(formatter.Writer, "recorded as %s (seq %d)\n", result.RecordID, result.RecordSeq)
	}
	return nil
}

// applyEmitFlags overrides cfg with the emit flags that were given explicitly.
func (opts *GenOptions) applyEmitFlags(cfg *config.Config, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.Target = opts.Target
	}
	if flags.Changed("prefix") {
		cfg.Prefix = opts.Prefix
	}
	if flags.Changed("package") {
		cfg.Package = opts.Package
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("db") {
		cfg.DB = opts.DB
	}
}

// openRegistry opens the store at path and checks g against the latest
// recorded digest. With force a drifting digest is let through and forced
// is true. The store is closed when an error is returned.
func openRegistry(ctx context.Context, path string, g store.Generation, force bool) (st *store.Store, forced bool, err error) {
	st, err = store.Open(path)
	if err != nil {
		return nil, false, err
	}

	if err := st.CheckDrift(ctx, g.AngleBits, g.ValueBits, g.Digest); err != nil {
		var drift *store.DriftError
		if !errors.As(err, &drift) || !force {
			closeStore(st)
			return nil, false, err
		}
		slog.Warn("recording drifting digest", "previous", drift.Recorded.Digest, "digest", g.Digest)
		forced = true
	}
	return st, forced, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}
