package ui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// TaskFrames is the default frame set for background task spinners.
var TaskFrames = spinner.Spinner{
	Frames: []string{"⠏", "⠛", "⠹", "⢸", "⣰", "⣤", "⣆", "⡇"},
	FPS:    time.Second / 10, // 100ms per frame
}

// LineWriter is what a spinner draws on. Terminal implements it.
type LineWriter interface {
	ClearLine()
	Print(s string)
}

// Spinner prints one frame per Tick, cycling through its frame set. It has
// no clock of its own; the caller decides when to tick.
type Spinner struct {
	mu     sync.Mutex
	label  string
	frames spinner.Spinner
	frame  int
	term   LineWriter
	style  *lipgloss.Style
}

// NewSpinner creates a spinner for label drawing on w. Frames are unstyled
// until SetStyle is called.
func NewSpinner(w LineWriter, label string) *Spinner {
	return &Spinner{
		label:  label,
		frames: TaskFrames,
		term:   w,
	}
}

// SetStyle styles the frame glyph.
func (s *Spinner) SetStyle(style lipgloss.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = &style
}

// SetFrames replaces the frame set.
func (s *Spinner) SetFrames(frames spinner.Spinner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(frames.Frames) == 0 {
		return
	}
	s.frames = frames
	s.frame = 0
}

// Tick clears the line, draws the current frame and advances.
func (s *Spinner) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	glyph := s.frames.Frames[s.frame]
	if s.style != nil {
		glyph = s.style.Render(glyph)
	}
	s.term.ClearLine()
	s.term.Print(glyph + " " + s.label)
	s.frame = (s.frame + 1) % len(s.frames.Frames)
}
