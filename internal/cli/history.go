package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/cupgame/internal/game"
	"github.com/roach88/cupgame/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Game     string
	Limit    int
	Digest   string
	ID       string
}

// HistoryEntry is one journalled run as shown by the history command.
type HistoryEntry struct {
	Seq    int64        `json:"seq"`
	Answer string       `json:"answer"`
	Result *game.Result `json:"result"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in the journal",
		Long: `List finished runs recorded with --db, newest first.

--digest lists every run that produced the same result, oldest first.
--id shows a single run.

Example:
  cupgame history --db runs.db
  cupgame history --db runs.db --game million --limit 5
  cupgame history --db runs.db --digest 3f1c... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Game, "game", "", "only list runs of this game")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 = all)")
	cmd.Flags().StringVar(&opts.Digest, "digest", "", "list runs with this result digest")
	cmd.Flags().StringVar(&opts.ID, "id", "", "show the run with this ID")
	cmd.MarkFlagsMutuallyExclusive("digest", "id")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Reading must not create an empty journal.
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.Database))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer closeJournal(st)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var runs []store.Run
	switch {
	case opts.ID != "":
		run, err := st.ReadRun(ctx, opts.ID)
		if errors.Is(err, sql.ErrNoRows) {
			_ = formatter.Error(ErrCodeJournal, fmt.Sprintf("run not found: %s", opts.ID), nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", opts.ID))
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read run", err)
		}
		runs = []store.Run{*run}
	case opts.Digest != "":
		runs, err = st.FindByDigest(ctx, opts.Digest)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to find runs", err)
		}
	default:
		runs, err = st.ListRuns(ctx, opts.Game, opts.Limit)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
	}

	entries := make([]HistoryEntry, len(runs))
	for i := range runs {
		entries[i] = HistoryEntry{Seq: runs[i].Seq, Answer: runs[i].Answer, Result: &runs[i].Result}
	}

	if opts.Format == "json" {
		return formatter.Success(entries)
	}
	return outputHistoryText(formatter, entries)
}

func outputHistoryText(formatter *OutputFormatter, entries []HistoryEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	header := "SEQ\tGAME\tSEED\tCUPS\tROUNDS\tANSWER\tELAPSED"
	if formatter.Verbose {
		header += "\tID\tDIGEST"
	}
	fmt.Fprintln(tw, header)

	for _, e := range entries {
		name := e.Result.Game
		if name == "" {
			name = "-"
		}
		printer.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\t%s",
			e.Seq, name, e.Result.Seed, e.Result.Size, e.Result.Rounds, e.Answer, e.Result.Elapsed)
		if formatter.Verbose {
			fmt.Fprintf(tw, "\t%s\t%s", e.Result.ID, e.Result.Digest)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
