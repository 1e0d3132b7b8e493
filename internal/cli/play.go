package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/cupgame/internal/game"
	"github.com/roach88/cupgame/internal/ring"
	"github.com/roach88/cupgame/internal/seed"
	"github.com/roach88/cupgame/internal/store"
)

// Puzzle defaults.
const (
	DefaultSeed   = "219347865"
	DefaultRounds = 100

	PartTwoSize   = 1_000_000
	PartTwoRounds = 10_000_000
)

// errJournal marks failures to record a finished run.
var errJournal = errors.New("run journal")

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Name        string
	Seed        string
	Input       string
	Size        int
	Rounds      uint64
	Readout     string
	Sentinel    int
	Part        int
	Database    string
	Progress    bool
	SampleEvery uint64

	// IDGenerator allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator game.IDGenerator
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	return newPlayCommand(&PlayOptions{RootOptions: rootOpts})
}

func newPlayCommand(opts *PlayOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game and print the answer",
		Long: `Play one game of crab cups and print the readout.

The seed is the puzzle input: one digit per cup, clockwise, starting with
the current cup. --size extends the ring with ascending labels after the
largest seed label. The order readout lists every cup after the sentinel;
the pair readout reports the two cups after it and their product.

--part 2 plays the long game: a million cups, ten million rounds, pair
readout. Explicit --size, --rounds and --readout flags still win.

Example:
  cupgame play --seed 389125467 --rounds 10
  cupgame play --input input.txt --part 2 --progress
  cupgame play --seed 389125467 --size 1000000 --rounds 10000000 --readout pair --db runs.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "name recorded with the run")
	cmd.Flags().StringVar(&opts.Seed, "seed", DefaultSeed, "puzzle input, one digit per cup")
	cmd.Flags().StringVar(&opts.Input, "input", "", "read the seed from a puzzle input file")
	cmd.Flags().IntVar(&opts.Size, "size", 0, "extend the ring to this many cups (0 = seed length)")
	cmd.Flags().Uint64Var(&opts.Rounds, "rounds", DefaultRounds, "number of rounds to play")
	cmd.Flags().StringVar(&opts.Readout, "readout", string(game.ReadoutOrder), "readout mode (order|pair)")
	cmd.Flags().IntVar(&opts.Sentinel, "sentinel", game.DefaultSentinel, "label the readout starts after")
	cmd.Flags().IntVar(&opts.Part, "part", 1, "puzzle part preset (1|2)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite journal")
	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "log sampled progress while playing")
	cmd.Flags().Uint64Var(&opts.SampleEvery, "sample-every", ring.DefaultSampleEvery, "rounds between progress samples")
	cmd.MarkFlagsMutuallyExclusive("seed", "input")

	return cmd
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	logger := setupLogging(cmd.ErrOrStderr(), opts.Verbose)
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	spec, err := opts.gameSpec(cmd)
	if err != nil {
		return outputRunError(formatter, err)
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

	res, err := playGame(ctx, logger, st, spec, ids, runOptions(logger, spec.Name, opts.Progress, opts.SampleEvery))
	if err != nil {
		return outputRunError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	writeResultText(formatter.Writer, res, opts.Verbose)
	return nil
}

// gameSpec assembles the game from flags, applying the part preset to any
// flag left at its default.
func (o *PlayOptions) gameSpec(cmd *cobra.Command) (game.Spec, error) {
	seedText := o.Seed
	if o.Input != "" {
		labels, err := seed.ReadFile(o.Input)
		if err != nil {
			return game.Spec{}, err
		}
		seedText = seed.Format(labels)
	}

	spec := game.Spec{
		Name:     o.Name,
		Seed:     seedText,
		Size:     o.Size,
		Rounds:   o.Rounds,
		Readout:  game.Readout(o.Readout),
		Sentinel: o.Sentinel,
	}

	switch o.Part {
	case 1:
	case 2:
		flags := cmd.Flags()
		if !flags.Changed("size") {
			spec.Size = PartTwoSize
		}
		if !flags.Changed("rounds") {
			spec.Rounds = PartTwoRounds
		}
		if !flags.Changed("readout") {
			spec.Readout = game.ReadoutPair
		}
	default:
		return game.Spec{}, fmt.Errorf("invalid part %d: must be 1 or 2", o.Part)
	}

	if _, err := game.ParseReadout(string(spec.Readout)); err != nil {
		return game.Spec{}, err
	}
	spec.Normalize()
	return spec, nil
}

// playGame plays spec and records the result in st when the journal is open.
func playGame(ctx context.Context, logger *slog.Logger, st *store.Store, spec game.Spec, ids game.IDGenerator, runOpts []ring.RunOption) (*game.Result, error) {
	logger.Debug("playing game",
		"game", spec.Name,
		"seed", spec.Seed,
		"size", spec.Size,
		"rounds", printer.Sprintf("%d", spec.Rounds),
		"readout", spec.Readout,
	)

	res, err := game.Play(ctx, spec, ids, runOpts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("game finished", "game", spec.Name, "answer", res.Answer(), "elapsed", res.Elapsed)

	if st != nil {
		if err := st.WriteRun(ctx, res); err != nil {
			return nil, fmt.Errorf("%w: %w", errJournal, err)
		}
		logger.Debug("run recorded", "id", res.ID, "digest", res.Digest)
	}
	return res, nil
}

// classifyRunError maps a failed game to an exit code and error code.
func classifyRunError(err error) (exitCode int, code, message string) {
	switch {
	case ring.IsMalformed(err):
		return ExitCommandError, ErrCodeMalformedInput, "malformed game"
	case errors.Is(err, errJournal):
		return ExitCommandError, ErrCodeJournal, "failed to record run"
	case ring.IsInvariantViolation(err):
		return ExitFailure, ErrCodeRunFailed, "ring invariant violated"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitFailure, ErrCodeRunFailed, "run interrupted"
	default:
		return ExitCommandError, ErrCodeMalformedInput, "invalid game"
	}
}

// outputRunError outputs a failed game and returns the matching ExitError.
func outputRunError(formatter *OutputFormatter, err error) error {
	exitCode, code, message := classifyRunError(err)
	_ = formatter.Error(code, fmt.Sprintf("%s: %v", message, err), errorDetails(err))
	return WrapExitError(exitCode, message, err)
}

// errorDetails returns structured context for JSON error output.
func errorDetails(err error) any {
	var ie *ring.InputError
	if errors.As(err, &ie) {
		details := map[string]any{"code": ie.Code}
		if ie.Index >= 0 {
			details["index"] = ie.Index
		}
		if ie.Label != 0 {
			details["label"] = ie.Label
		}
		return details
	}
	return nil
}

// writeResultText prints a result for people.
func writeResultText(w io.Writer, res *game.Result, verbose bool) {
	name := res.Game
	if name == "" {
		name = "answer"
	}
	fmt.Fprintf(w, "%s: %s\n", name, res.Answer())
	if res.Readout == game.ReadoutPair && len(res.Pair) == 2 {
		fmt.Fprintf(w, "  cups after %d: %d, %d\n", res.Sentinel, res.Pair[0], res.Pair[1])
	}
	if !verbose {
		return
	}
	printer.Fprintf(w, "  seed %s, %d cups, %d rounds\n", res.Seed, res.Size, res.Rounds)
	fmt.Fprintf(w, "  elapsed %s\n", res.Elapsed)
	fmt.Fprintf(w, "  digest %s\n", res.Digest)
	fmt.Fprintf(w, "  id %s\n", res.ID)
}
