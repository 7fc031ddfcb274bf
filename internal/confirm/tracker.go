// Package confirm implements the two-click confirmation gate used by every
// destructive action: the first click arms an id, the second one deletes it.
package confirm

import (
	"context"
	"sync"
)

// DeleteFunc performs the destructive action for id
type DeleteFunc func(ctx context.Context, id string) error

// Outcome reports what a click did
type Outcome int

const (
	// OutcomeArmed means the id now waits for a confirming click
	OutcomeArmed Outcome = iota
	// OutcomeDeleted means the delete ran and succeeded
	OutcomeDeleted
	// OutcomeIgnored means a delete for the id was already in flight
	OutcomeIgnored
	// OutcomeFailed means the delete ran and returned an error
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeArmed:
		return "armed"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the visible state of one id
type State struct {
	Clicks   int
	Deleting bool
}

// Armed reports whether the next click deletes
func (s State) Armed() bool {
	return s.Clicks > 0 && !s.Deleting
}

// Tracker keeps click counts per id. Ids that were never clicked, or that went
// back to idle, are not stored.
type Tracker struct {
	onDelete DeleteFunc
	clicks   map[string]int
	inFlight map[string]bool
	mu       sync.Mutex
}

// NewTracker creates a tracker that calls onDelete on a confirming click
func NewTracker(onDelete DeleteFunc) *Tracker {
	return &Tracker{
		onDelete: onDelete,
		clicks:   make(map[string]int),
		inFlight: make(map[string]bool),
	}
}

// Click registers a click on id. The second click runs the delete; clicks that
// arrive while that delete is running are no-ops. Whatever the delete returns,
// the id goes back to idle.
func (t *Tracker) Click(ctx context.Context, id string) (Outcome, error) {
	t.mu.Lock()
	if t.inFlight[id] {
		t.mu.Unlock()
		return OutcomeIgnored, nil
	}
	t.clicks[id]++
	if t.clicks[id] < 2 {
		t.mu.Unlock()
		return OutcomeArmed, nil
	}
	t.inFlight[id] = true
	t.mu.Unlock()

	err := t.onDelete(ctx, id)

	t.mu.Lock()
	delete(t.clicks, id)
	delete(t.inFlight, id)
	t.mu.Unlock()

	if err != nil {
		return OutcomeFailed, err
	}
	return OutcomeDeleted, nil
}

// State returns the current state of id
func (t *Tracker) State(id string) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return State{Clicks: t.clicks[id], Deleting: t.inFlight[id]}
}

// Disarm puts a single id back to idle unless its delete is running
func (t *Tracker) Disarm(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.inFlight[id] {
		delete(t.clicks, id)
	}
}

// ResetAll clears every armed id, e.g. after the list was reloaded.
// Deletes already running are left to finish.
func (t *Tracker) ResetAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id := range t.clicks {
		if !t.inFlight[id] {
			delete(t.clicks, id)
		}
	}
}

// Len returns the number of tracked ids
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.clicks)
}
