package viewer

import (
	"log"
	"sync"
)

// State is a phase of a viewer run.
type State int

// Run phases. Aborted is terminal and reachable from any other state.
const (
	StateInit State = iota
	StateHeaderWritten
	StateStreaming
	StateDraining
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateHeaderWritten:
		return "header-written"
	case StateStreaming:
		return "streaming"
	case StateDraining:
		return "draining"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

type tracker struct {
	mu     sync.Mutex
	state  State
	logger *log.Logger
}

func (t *tracker) set(next State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateAborted || t.state == StateDone || t.state == next {
		return
	}
	t.logger.Printf("state %s -> %s", t.state, next)
	t.state = next
}

func (t *tracker) current() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
