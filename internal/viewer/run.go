// Package viewer wires the record source, layout and pager into one run.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/fqview/internal/fastq"
	"github.com/verte-zerg/fqview/internal/layout"
	"github.com/verte-zerg/fqview/internal/model"
	"github.com/verte-zerg/fqview/internal/pager"
)

const feedBuffer = 16

// ErrInputNotFound is returned when the input path does not exist.
var ErrInputNotFound = errors.New("input file does not exist")

// DisplayError wraps a failure of the terminal program.
type DisplayError struct {
	Err error
}

func (e *DisplayError) Error() string {
	return fmt.Sprintf("display failed: %v", e.Err)
}

func (e *DisplayError) Unwrap() error { return e.Err }

// Options carries collaborators that are not part of the user config.
type Options struct {
	Logger *log.Logger
	// Warnf reports best-effort failures once the display has exited.
	// Defaults to stderr.
	Warnf          func(format string, args ...any)
	ProgramOptions []tea.ProgramOption
	Theme          *layout.Theme
}

// CheckInput verifies that path names an existing file.
func CheckInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return fmt.Errorf("failed to stat input: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input is a directory: %s", path)
	}
	return nil
}

// Run streams cfg.InputPath into a live pager until the user quits. A decode
// or decompression error aborts the display and is returned instead of the
// display's own result.
func Run(ctx context.Context, cfg model.Config, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	theme := layout.DefaultTheme
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	states := &tracker{state: StateInit, logger: logger}

	if err := CheckInput(cfg.InputPath); err != nil {
		states.set(StateAborted)
		return err
	}
	rc, format, err := fastq.Open(cfg.InputPath)
	if err != nil {
		states.set(StateAborted)
		return fmt.Errorf("failed to open input: %w", err)
	}
	// Deferred so it runs after the program has restored the terminal.
	defer closeInput(rc, opts.Warnf)
	logger.Printf("opened %s (%s), width %d, delay %s", cfg.InputPath, format, cfg.DisplayWidth, cfg.Delay)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	feed := pager.NewFeed(feedBuffer)
	programOpts := append([]tea.ProgramOption{tea.WithContext(gctx)}, opts.ProgramOptions...)
	program := tea.NewProgram(pager.NewModel(feed.Blocks(), cfg.Follow), programOpts...)

	g.Go(func() error {
		defer cancel()
		defer feed.Detach()
		_, err := program.Run()
		switch {
		case err == nil, errors.Is(err, tea.ErrInterrupted):
			logger.Printf("display closed by user")
			return nil
		case errors.Is(err, tea.ErrProgramKilled) && gctx.Err() != nil:
			return nil
		default:
			return &DisplayError{Err: err}
		}
	})

	g.Go(func() error {
		err := Produce(gctx, fastq.NewReader(rc), feed, ProduceOptions{
			Title:     cfg.InputPath,
			Width:     cfg.DisplayWidth,
			Delay:     cfg.Delay,
			Threshold: cfg.Threshold,
			Theme:     theme,
			OnState:   states.set,
		})
		if err != nil {
			if gctx.Err() != nil && errors.Is(err, context.Canceled) {
				logger.Printf("producer stopped: display exited")
				return nil
			}
			states.set(StateAborted)
			logger.Printf("producer failed: %v", err)
			return err
		}
		feed.Close()
		states.set(StateDraining)
		return nil
	})

	if err := g.Wait(); err != nil {
		states.set(StateAborted)
		return err
	}
	states.set(StateDone)
	return ctx.Err()
}

func closeInput(c io.Closer, warnf func(format string, args ...any)) {
	if warnf == nil {
		warnf = func(format string, args ...any) {
			_, _ = fmt.Fprintf(os.Stderr, format, args...)
		}
	}
	if err := c.Close(); err != nil {
		warnf("failed to close input: %v\n", err)
	}
}
