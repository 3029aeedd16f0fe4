package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/rileyhilliard/console/internal/ui"
	"github.com/rileyhilliard/console/pkg/logger"
)

// DefaultInterval is the spinner frame duration and flag poll period.
const DefaultInterval = 100 * time.Millisecond

// Terminal is the output a runner draws on. Control methods are expected
// to be no-ops when the output isn't a terminal.
type Terminal interface {
	Print(s string)
	ClearLine()
	HideCursor()
	ShowCursor()
	EraseLineAbove()
}

// StatusRenderer draws the line a task shows while it runs: "title:
// loading..." inline, or a status line above the spinner in the background.
// ui.PhaseDisplay implements it.
type StatusRenderer interface {
	RenderLoading(title string)
	RenderRunning(title string)
}

// plainStatus prints unstyled status lines on the runner's terminal.
type plainStatus struct{ term Terminal }

func (p plainStatus) RenderLoading(title string) { p.term.Print(title + ": loading...") }

func (p plainStatus) RenderRunning(title string) { p.term.Print("Running: " + title + "\n") }

// Runner executes tasks. In concurrent mode the body runs in a worker
// goroutine while the caller spins; the two sides coordinate only through
// a flag file (present while the worker runs) and a state file (the
// worker's remembered data).
type Runner struct {
	term       Terminal
	fs         afero.Fs
	dir        string
	interval   time.Duration
	concurrent bool
	frames     spinner.Spinner
	frameStyle *lipgloss.Style
	status     StatusRenderer
	log        logger.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrent toggles background execution. When off, Run is RunSync.
func WithConcurrent(on bool) Option {
	return func(r *Runner) { r.concurrent = on }
}

// WithDir sets the artifact directory.
func WithDir(dir string) Option {
	return func(r *Runner) { r.dir = dir }
}

// WithInterval sets the spinner frame duration and poll period.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithFrames replaces the spinner glyphs. Its FPS is ignored in favor of
// the runner's interval.
func WithFrames(frames spinner.Spinner) Option {
	return func(r *Runner) {
		if len(frames.Frames) > 0 {
			r.frames = frames
		}
	}
}

// WithFrameStyle styles the spinner glyph.
func WithFrameStyle(style lipgloss.Style) Option {
	return func(r *Runner) { r.frameStyle = &style }
}

// WithStatus sets what draws the in-progress line. The default prints
// plain text on the runner's terminal.
func WithStatus(s StatusRenderer) Option {
	return func(r *Runner) {
		if s != nil {
			r.status = s
		}
	}
}

// WithFs sets the filesystem artifacts live on.
func WithFs(fs afero.Fs) Option {
	return func(r *Runner) { r.fs = fs }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// NewRunner creates a runner drawing on term. By default it runs
// concurrently with artifacts under the system temp dir.
func NewRunner(term Terminal, opts ...Option) *Runner {
	r := &Runner{
		term:       term,
		fs:         afero.NewOsFs(),
		dir:        filepath.Join(os.TempDir(), "console-tasks"),
		interval:   DefaultInterval,
		concurrent: true,
		frames:     ui.TaskFrames,
		status:     plainStatus{term: term},
		log:        logger.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Concurrent reports whether Run uses a background worker.
func (r *Runner) Concurrent() bool { return r.concurrent }

// Go creates a task for fn and runs it.
func (r *Runner) Go(ctx context.Context, title string, fn Func) (*Task, error) {
	t := New(title, fn)
	return t, r.Run(ctx, t)
}

// RunSync runs t inline, bracketed by a "title: loading..." line.
//
// The returned error is non-nil only for a *WorkerFault; an error from the
// body is recorded on the task (see Task.Err).
func (r *Runner) RunSync(ctx context.Context, t *Task) error {
	t.setState(StateStarted)
	r.status.RenderLoading(t.title)

	t.setState(StateRunning)
	err := guard(ctx, t)

	r.term.ClearLine()
	t.finish(err)

	if fault, ok := err.(*WorkerFault); ok {
		r.log.Error("task %s (%s) crashed: %v", t.id, t.title, fault.Value)
		return fault
	}
	return nil
}

type workerResult struct {
	err      error
	stateErr error
}

// Run executes t, in a background worker when concurrency is on and the
// artifact directory is usable, otherwise through RunSync.
//
// The returned error is non-nil for a *WorkerFault or when the worker's
// state can't be read back; an error from the body is recorded on the
// task. Either way, no artifact is left behind.
func (r *Runner) Run(ctx context.Context, t *Task) error {
	if !r.concurrent {
		return r.RunSync(ctx, t)
	}

	art := newArtifacts(r.fs, r.dir, t.id)
	if err := art.prepare(); err != nil {
		r.log.Warn("concurrent task unavailable, running %q synchronously: %v", t.title, err)
		return r.RunSync(ctx, t)
	}
	r.log.Debug("task %s flag at %s", t.id, art.flag)

	t.setState(StateStarted)
	r.status.RenderRunning(t.title)

	done := make(chan workerResult, 1)
	w := t.worker()
	t.setState(StateRunning)
	go r.work(ctx, w, art, done)

	r.spin(t.title, art)

	res := <-done
	r.term.EraseLineAbove()

	if fault, ok := res.err.(*WorkerFault); ok {
		_ = art.cleanup()
		t.finish(fault)
		r.log.Error("task %s (%s) crashed: %v", t.id, t.title, fault.Value)
		return fault
	}

	data, readErr := art.readState()
	if err := art.cleanup(); err != nil {
		r.log.Warn("task %s cleanup: %v", t.id, err)
	}
	t.replaceData(data)

	switch {
	case res.stateErr != nil:
		t.finish(res.stateErr)
		return res.stateErr
	case readErr != nil:
		t.finish(readErr)
		return readErr
	}
	t.finish(res.err)
	return nil
}

// work is the worker side: run the body, drop the flag, then hand over
// the remembered data.
func (r *Runner) work(ctx context.Context, w *Task, art artifacts, done chan<- workerResult) {
	err := guard(ctx, w)
	if _, crashed := err.(*WorkerFault); crashed {
		_ = art.cleanup()
		done <- workerResult{err: err}
		return
	}

	if rmErr := remove(art.fs, art.flag); rmErr != nil {
		r.log.Warn("task %s flag removal: %v", w.id, rmErr)
	}
	stateErr := art.writeState(w.Data())
	if stateErr != nil {
		stateErr = fmt.Errorf("task %q: %w", w.title, stateErr)
	}
	done <- workerResult{err: err, stateErr: stateErr}
}

// spin draws frames until the flag disappears.
func (r *Runner) spin(title string, art artifacts) {
	s := ui.NewSpinner(r.term, title)
	s.SetFrames(r.frames)
	if r.frameStyle != nil {
		s.SetStyle(*r.frameStyle)
	}

	r.term.HideCursor()
	for art.running() {
		s.Tick()
		time.Sleep(r.interval)
	}
	r.term.ShowCursor()
	r.term.ClearLine()
}

// guard runs t's body, turning a panic into a *WorkerFault.
func guard(ctx context.Context, t *Task) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &WorkerFault{TaskID: t.id, Title: t.title, Value: p, Stack: debug.Stack()}
		}
	}()
	if t.fn == nil {
		return nil
	}
	return t.fn(ctx, t)
}
