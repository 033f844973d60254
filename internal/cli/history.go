package cli

import (
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/fixtrig/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generations",
		Long: `List generations recorded by 'fixtrig gen --db', newest first.

Example:
  fixtrig history --db fixtrig.db --limit 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of generations (0 for all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err, nil)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	gens, err := st.List(commandContext(cmd), opts.Limit)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err, nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(gens)
	}

	if len(gens) == 0 {
		fmt.Fprintln(formatter.Writer, "No generations recorded")
		return nil
	}

	w := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tANGLE\tVALUE\tTARGET\tDIGEST\tCREATED")
	for _, g := range gens {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n",
			g.Seq, g.AngleBits, g.ValueBits, g.Target, shortDigest(g.Digest), g.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
