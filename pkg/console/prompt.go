package console

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrAborted is returned by a Prompter when the user cancels input.
var ErrAborted = stderrors.New("input aborted")

// Prompter reads one answer. hint is shown next to the input; secret
// answers are not echoed.
type Prompter interface {
	Prompt(ctx context.Context, hint string, secret bool) (string, error)
}

// LinePrompter reads answers a line at a time. Secret answers are read
// without echo when the input is a terminal.
type LinePrompter struct {
	mu  sync.Mutex
	in  io.Reader
	r   *bufio.Reader
	out io.Writer
}

// NewLinePrompter reads from in and writes hints to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: in, r: bufio.NewReader(in), out: out}
}

// Prompt writes the hint and reads one line. EOF after a partial line
// returns that line; EOF with nothing read returns io.EOF.
func (p *LinePrompter) Prompt(ctx context.Context, hint string, secret bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, " %s:\n > ", hint)

	if secret {
		if f, ok := p.in.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
			raw, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(p.out)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		}
	}

	line, err := p.r.ReadString('\n')
	if err != nil && (!stderrors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// FormPrompter asks through a single-field huh form.
type FormPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewFormPrompter runs forms on in and out. Nil streams fall back to the
// process terminal.
func NewFormPrompter(in io.Reader, out io.Writer) *FormPrompter {
	return &FormPrompter{in: in, out: out}
}

// Prompt runs the form until the user submits or ctx ends. Aborting the
// form returns ErrAborted.
func (p *FormPrompter) Prompt(ctx context.Context, hint string, secret bool) (string, error) {
	var value string
	field := huh.NewInput().
		Title(hint).
		Value(&value)
	if secret {
		field = field.EchoMode(huh.EchoModePassword)
	}

	form := huh.NewForm(huh.NewGroup(field)).WithShowHelp(false)
	if p.in != nil {
		form = form.WithInput(p.in)
	}
	if p.out != nil {
		form = form.WithOutput(p.out)
	}

	if err := form.RunWithContext(ctx); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	return value, nil
}
