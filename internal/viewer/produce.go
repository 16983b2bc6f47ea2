package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/fqview/internal/fastq"
	"github.com/verte-zerg/fqview/internal/layout"
	"github.com/verte-zerg/fqview/internal/model"
	"github.com/verte-zerg/fqview/internal/quality"
)

// DefaultDelay is the pause between records.
const DefaultDelay = 100 * time.Millisecond

// RecordSource yields raw records until io.EOF.
type RecordSource interface {
	Next() (model.RawRecord, error)
}

// Sink receives rendered blocks in production order.
type Sink interface {
	Append(ctx context.Context, block []string) error
}

// ProduceOptions controls the producer loop.
type ProduceOptions struct {
	Title string
	// Width is the column count sequences wrap to; the header rule has the
	// same length.
	Width     int
	Delay     time.Duration
	Threshold float32
	Theme     layout.Theme
	// OnState is told when the header is written and when streaming starts.
	OnState func(State)
}

// Produce appends the header, then every record of src as a formatted block,
// pausing Delay after each one. It stops at the first decode error.
func Produce(ctx context.Context, src RecordSource, sink Sink, opts ProduceOptions) error {
	notify := opts.OnState
	if notify == nil {
		notify = func(State) {}
	}
	if err := sink.Append(ctx, layout.Header(opts.Title, opts.Width)); err != nil {
		return err
	}
	notify(StateHeaderWritten)
	notify(StateStreaming)

	for index := 1; ; index++ {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		avg, err := quality.Score(rec.Quality)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", &fastq.DecodeError{Record: index, Reason: err.Error()})
		}
		scored := model.ScoredRecord{Record: rec, Index: index, AvgQuality: avg}
		block := layout.Format(scored, opts.Width, opts.Threshold).Render(opts.Theme)
		if err := sink.Append(ctx, block); err != nil {
			return err
		}
		if err := pace(ctx, opts.Delay); err != nil {
			return err
		}
	}
}

func pace(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
