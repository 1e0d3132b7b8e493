package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/cupgame/internal/ring"
	"github.com/roach88/cupgame/internal/store"
)

// printer groups digits in counts shown to people ("10,000,000").
var printer = message.NewPrinter(language.English)

// setupLogging installs a text slog handler on w, at debug level when
// verbose is set.
func setupLogging(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// commandContext returns a context cancelled on SIGINT/SIGTERM or when the
// command's own context ends.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, stopping run", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

// progressLogger logs sampled run progress.
type progressLogger struct {
	logger *slog.Logger
	game   string
	start  time.Time
}

func newProgressLogger(logger *slog.Logger, game string) *progressLogger {
	return &progressLogger{logger: logger, game: game, start: time.Now()}
}

// Observe implements ring.Observer.
func (p *progressLogger) Observe(pr ring.Progress) {
	percent := 100.0
	if pr.Total > 0 {
		percent = 100 * float64(pr.Done) / float64(pr.Total)
	}
	var rate float64
	if secs := time.Since(p.start).Seconds(); secs > 0 {
		rate = float64(pr.Done) / secs
	}

	p.logger.Info("progress",
		"game", p.game,
		"rounds", printer.Sprintf("%d/%d", pr.Done, pr.Total),
		"percent", printer.Sprintf("%.1f", percent),
		"rounds_per_sec", printer.Sprintf("%.0f", rate),
		"current", pr.Current,
	)
}

// runOptions returns the ring options for a run: a progress observer when
// progress is set, otherwise nothing beyond the sample interval.
func runOptions(logger *slog.Logger, game string, progress bool, sampleEvery uint64) []ring.RunOption {
	opts := []ring.RunOption{ring.WithSampleEvery(sampleEvery)}
	if progress {
		opts = append(opts, ring.WithObserver(newProgressLogger(logger, game)))
	}
	return opts
}

// openJournal opens the run journal at path. An empty path disables the
// journal and returns nil.
func openJournal(path string) (*store.Store, error) {
	if path == "" {
		return nil, nil
	}
	slog.Debug("opening run journal", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open run journal", err)
	}
	return st, nil
}

// closeJournal closes st if it is open, logging any error.
func closeJournal(st *store.Store) {
	if st == nil {
		return
	}
	if err := st.Close(); err != nil {
		slog.Error("error closing run journal", "error", err)
	}
}
