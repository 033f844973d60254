package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/fixtrig/internal/config"
)

// PresetInfo is one entry of the presets json payload.
type PresetInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Config      config.Config `json:"config"`
}

// NewPresetsCommand creates the presets command.
func NewPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "presets",
		Short:         "List named presets",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(rootOpts, cmd)
		},
	}
}

func runPresets(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	presets := config.ListPresets()
	if formatter.Format == "json" {
		infos := make([]PresetInfo, len(presets))
		for i, p := range presets {
			infos[i] = PresetInfo{Name: p.Name, Description: p.Description, Config: p.Config}
		}
		return formatter.Success(infos)
	}

	w := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tANGLE\tVALUE\tTARGET\tDESCRIPTION")
	for _, p := range presets {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", p.Name, p.Config.AngleBits, p.Config.ValueBits, p.Config.Target, p.Description)
	}
	return w.Flush()
}
