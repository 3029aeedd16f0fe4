package ui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Terminal is a thin control layer over an output stream. Cursor and line
// control only happen when the stream is decorated (a TTY, or forced on);
// otherwise clearing a line emits a newline so nothing gets overwritten.
type Terminal struct {
	w         io.Writer
	out       *termenv.Output
	decorated bool
}

// NewTerminal wraps w, decorating only when w is a terminal.
func NewTerminal(w io.Writer) *Terminal {
	return NewTerminalWith(w, IsTerminal(w))
}

// NewTerminalWith wraps w with explicit decoration.
func NewTerminalWith(w io.Writer, decorated bool) *Terminal {
	profile := termenv.Ascii
	if decorated {
		profile = termenv.ANSI256
	}
	return &Terminal{
		w:         w,
		out:       termenv.NewOutput(w, termenv.WithProfile(profile)),
		decorated: decorated,
	}
}

// IsTerminal reports whether w is backed by a terminal file descriptor.
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Writer returns the underlying stream.
func (t *Terminal) Writer() io.Writer { return t.w }

// Decorated reports whether control sequences are emitted.
func (t *Terminal) Decorated() bool { return t.decorated }

// Write implements io.Writer.
func (t *Terminal) Write(p []byte) (int, error) { return t.w.Write(p) }

// Print writes s as-is.
func (t *Terminal) Print(s string) {
	fmt.Fprint(t.w, s)
}

// ClearLine returns to column zero and erases the line, or starts a new
// line when undecorated.
func (t *Terminal) ClearLine() {
	if !t.decorated {
		fmt.Fprintln(t.w)
		return
	}
	fmt.Fprint(t.w, "\r")
	t.out.ClearLine()
}

// HideCursor hides the cursor.
func (t *Terminal) HideCursor() {
	if t.decorated {
		t.out.HideCursor()
	}
}

// ShowCursor shows the cursor again.
func (t *Terminal) ShowCursor() {
	if t.decorated {
		t.out.ShowCursor()
	}
}

// EraseLineAbove moves up one line and erases it.
func (t *Terminal) EraseLineAbove() {
	if t.decorated {
		t.out.CursorPrevLine(1)
		t.out.ClearLine()
	}
}
