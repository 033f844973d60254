package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fixtrig/internal/config"
	"github.com/roach88/fixtrig/internal/lookup"
	"github.com/roach88/fixtrig/internal/table"
)

// tableFlags are the precision flags shared by every command that builds
// a table. Zero means "not given" and leaves the configured value alone.
type tableFlags struct {
	AngleBits int
	ValueBits int
}

func (f *tableFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.AngleBits, "angle-bits", 0,
		fmt.Sprintf("angle precision bits, %d..%d (default %d)", table.MinAngleBits, table.MaxAngleBits, table.DefaultAngleBits))
	cmd.Flags().IntVar(&f.ValueBits, "value-bits", 0,
		fmt.Sprintf("fractional value bits, %d..%d (default %d)", table.MinValueBits, table.MaxValueBits, table.DefaultValueBits))
}

func (f *tableFlags) apply(cfg *config.Config, cmd *cobra.Command) {
	if cmd.Flags().Changed("angle-bits") {
		cfg.AngleBits = f.AngleBits
	}
	if cmd.Flags().Changed("value-bits") {
		cfg.ValueBits = f.ValueBits
	}
}

// loadConfig resolves defaults, then --preset or --config.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	switch {
	case opts.Config != "":
		return config.Load(opts.Config)
	case opts.Preset != "":
		return config.GetPreset(opts.Preset)
	default:
		return config.DefaultConfig(), nil
	}
}

// resolveTable loads the configuration, applies the precision flags and
// generates the table. Failures are reported through formatter.
func resolveTable(opts *RootOptions, flags *tableFlags, cmd *cobra.Command, formatter *OutputFormatter) (*config.Config, *table.Table, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, formatter.Fail(ExitCommandError, ErrCodeConfig, err, nil)
	}
	flags.apply(cfg, cmd)

	params := cfg.Params()
	if err := params.Validate(); err != nil {
		return nil, nil, formatter.Fail(ExitCommandError, ErrCodeInvalidParams, err, params)
	}

	formatter.VerboseLog("generating table angle_precision_bits=%d value_precision_bits=%d", params.AngleBits, params.ValueBits)
	t, err := table.Generate(params)
	if err != nil {
		return nil, nil, formatter.Fail(ExitFailure, ErrCodeInvariant, err, params)
	}
	return cfg, t, nil
}

// resolveProtocol is resolveTable followed by lookup.New.
func resolveProtocol(opts *RootOptions, flags *tableFlags, cmd *cobra.Command, formatter *OutputFormatter) (*lookup.Protocol, error) {
	_, t, err := resolveTable(opts, flags, cmd, formatter)
	if err != nil {
		return nil, err
	}
	return lookup.New(t), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
