// Package task runs units of work for console commands, either inline or
// in a background worker while the caller's terminal shows a spinner.
package task

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Func is the body of a task. Returning nil marks the task successful.
type Func func(ctx context.Context, t *Task) error

// State is a task's position in its lifecycle.
type State int

const (
	StateCreated State = iota
	StateStarted
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarted:
		return "started"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Task is one unit of work with a title and the data it chose to remember.
type Task struct {
	id    string
	title string
	fn    Func

	mu        sync.Mutex
	state     State
	data      map[string]any
	succeeded bool
	err       error
	started   time.Time
	finished  time.Time
}

// New creates a task. Its id is a fresh UUID, used to namespace artifacts.
func New(title string, fn Func) *Task {
	return &Task{
		id:    uuid.NewString(),
		title: title,
		fn:    fn,
		data:  make(map[string]any),
	}
}

// ID returns the task's unique id.
func (t *Task) ID() string { return t.id }

// Title returns the label shown while the task runs.
func (t *Task) Title() string { return t.title }

// Remember merges data into what the task hands back to its caller.
func (t *Task) Remember(data map[string]any) *Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	maps.Copy(t.data, data)
	return t
}

// Data returns a copy of the remembered data.
func (t *Task) Data() map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()
	return maps.Clone(t.data)
}

// Succeeded reports whether the task finished without error. It is false
// until the task finishes.
func (t *Task) Succeeded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == StateFinished && t.succeeded
}

// Err returns the error the task finished with, if any.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// State returns the current lifecycle state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Duration is the time between start and finish, or since start while the
// task is still going.
func (t *Task) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case t.started.IsZero():
		return 0
	case t.finished.IsZero():
		return time.Since(t.started)
	}
	return t.finished.Sub(t.started)
}

func (t *Task) setState(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s == StateStarted {
		t.started = time.Now()
	}
	t.state = s
}

func (t *Task) finish(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = StateFinished
	t.finished = time.Now()
	t.succeeded = err == nil
	t.err = err
}

func (t *Task) replaceData(data map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if data == nil {
		data = make(map[string]any)
	}
	t.data = data
}

// worker returns the copy of t a background worker operates on. It shares
// nothing mutable with t; remembered data only reaches t through the state
// artifact.
func (t *Task) worker() *Task {
	return &Task{
		id:    t.id,
		title: t.title,
		fn:    t.fn,
		state: StateRunning,
		data:  make(map[string]any),
	}
}
