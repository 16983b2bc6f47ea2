package pager

import (
	"context"
	"sync"
)

// Feed carries rendered blocks from the producer to the controller in order.
// Appends made after Detach are dropped.
type Feed struct {
	ch         chan []string
	detached   chan struct{}
	detachOnce sync.Once
	closeOnce  sync.Once
}

// NewFeed returns a feed that buffers up to buffer blocks.
func NewFeed(buffer int) *Feed {
	if buffer < 0 {
		buffer = 0
	}
	return &Feed{
		ch:       make(chan []string, buffer),
		detached: make(chan struct{}),
	}
}

// Append hands block to the controller. It waits only for buffer space and
// returns early when ctx is done or the controller has detached.
func (f *Feed) Append(ctx context.Context, block []string) error {
	select {
	case <-f.detached:
		return nil
	default:
	}
	select {
	case f.ch <- block:
		return nil
	case <-f.detached:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close marks the end of content. Only the producer may call it, after its
// last Append.
func (f *Feed) Close() {
	f.closeOnce.Do(func() { close(f.ch) })
}

// Detach makes later appends inert. The controller side calls it on exit.
func (f *Feed) Detach() {
	f.detachOnce.Do(func() { close(f.detached) })
}

// Blocks is the receive side consumed by the controller.
func (f *Feed) Blocks() <-chan []string {
	return f.ch
}
