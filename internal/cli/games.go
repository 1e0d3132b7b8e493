package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/cupgame/internal/config"
	"github.com/roach88/cupgame/internal/game"
	"github.com/roach88/cupgame/internal/ring"
)

// GamesOptions holds flags for the games command.
type GamesOptions struct {
	*RootOptions
	Database    string
	Filter      string
	Progress    bool
	SampleEvery uint64

	// IDGenerator allows overriding the run ID generator (for testing).
	IDGenerator game.IDGenerator
}

// GameOutcome is the result of one game in a batch.
type GameOutcome struct {
	Name   string       `json:"name"`
	Pass   bool         `json:"pass"`
	Result *game.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// GamesResult contains the results of a games batch.
type GamesResult struct {
	Total  int           `json:"total"`
	Passed int           `json:"passed"`
	Failed int           `json:"failed"`
	Games  []GameOutcome `json:"games"`
}

// NewGamesCommand creates the games command.
func NewGamesCommand(rootOpts *RootOptions) *cobra.Command {
	return newGamesCommand(&GamesOptions{RootOptions: rootOpts})
}

func newGamesCommand(opts *GamesOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games <path>",
		Short: "Play every game defined in CUE files",
		Long: `Play the games declared in a directory of .cue files (or a single file).

Each file declares entries under the game field:

  package games

  game: example: {
    seed:   "389125467"
    rounds: 100
  }

Games run in declaration order. A malformed game is reported and the batch
continues; the command fails if any game failed.

Example:
  cupgame games ./games
  cupgame games ./games --filter 'part*' --db runs.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGames(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record runs in this SQLite journal")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only play games whose name matches this glob")
	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "log sampled progress while playing")
	cmd.Flags().Uint64Var(&opts.SampleEvery, "sample-every", ring.DefaultSampleEvery, "rounds between progress samples")

	return cmd
}

func runGames(opts *GamesOptions, path string, cmd *cobra.Command) error {
	logger := setupLogging(cmd.ErrOrStderr(), opts.Verbose)
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loaded, err := config.Load(path)
	if err != nil {
		return outputGamesError(formatter, config.ErrorCode(err), err.Error())
	}
	formatter.VerboseLog("Loaded %d game(s) from %d file(s)", len(loaded.Games), loaded.FileCount)

	specs, err := filterGames(loaded.Games, opts.Filter)
	if err != nil {
		return outputGamesError(formatter, config.ErrCodeGeneric, err.Error())
	}
	if len(specs) == 0 {
		return outputGamesError(formatter, config.ErrCodeNoGames, fmt.Sprintf("no games match filter %q", opts.Filter))
	}

	st, err := openJournal(opts.Database)
	if err != nil {
		return err
	}
	defer closeJournal(st)

	ids := opts.IDGenerator
	if ids == nil {
		ids = game.UUIDv7Generator{}
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	result := GamesResult{Games: make([]GameOutcome, 0, len(specs))}
	for _, spec := range specs {
		res, err := playGame(ctx, logger, st, spec, ids, runOptions(logger, spec.Name, opts.Progress, opts.SampleEvery))
		outcome := GameOutcome{Name: spec.Name, Pass: err == nil, Result: res}
		if err != nil {
			outcome.Error = err.Error()
		}
		result.Games = append(result.Games, outcome)

		if opts.Format != "json" {
			writeOutcomeText(formatter, outcome)
		}

		// Interrupted or unrecordable batches stop here.
		if errors.Is(err, context.Canceled) || errors.Is(err, errJournal) {
			break
		}
	}

	for _, g := range result.Games {
		result.Total++
		if g.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputGamesJSON(formatter, result)
	}
	return outputGamesText(formatter, result)
}

// filterGames keeps specs whose name matches the glob pattern. An empty
// pattern keeps everything.
func filterGames(specs []game.Spec, pattern string) ([]game.Spec, error) {
	if pattern == "" {
		return specs, nil
	}
	var out []game.Spec
	for _, spec := range specs {
		ok, err := filepath.Match(pattern, spec.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", pattern, err)
		}
		if ok {
			out = append(out, spec)
		}
	}
	return out, nil
}

func writeOutcomeText(formatter *OutputFormatter, outcome GameOutcome) {
	w := formatter.Writer
	if !outcome.Pass {
		fmt.Fprintf(w, "✗ %s\n", outcome.Name)
		fmt.Fprintf(w, "  %s\n", outcome.Error)
		return
	}
	fmt.Fprintf(w, "✓ ")
	writeResultText(w, outcome.Result, formatter.Verbose)
}

// outputGamesError outputs a load error (exit code 2).
func outputGamesError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

func outputGamesJSON(formatter *OutputFormatter, result GamesResult) error {
	if result.Failed == 0 {
		return formatter.Success(result)
	}

	response := CLIResponse{
		Status: "error",
		Data:   result,
		Error: &CLIError{
			Code:    ErrCodeRunFailed,
			Message: fmt.Sprintf("%d game(s) failed", result.Failed),
		},
	}
	if err := encodeJSON(formatter.Writer, response); err != nil {
		return err
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d game(s) failed", result.Failed))
}

func outputGamesText(formatter *OutputFormatter, result GamesResult) error {
	w := formatter.Writer

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Games: %d played, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d game(s) failed", result.Failed))
	}
	return nil
}
