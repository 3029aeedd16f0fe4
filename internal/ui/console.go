package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Level is the badge printed in front of a console line.
type Level string

const (
	LevelInfo          Level = "INFO"
	LevelWarn          Level = "WARN"
	LevelError         Level = "ERROR"
	LevelDebug         Level = "DEBUG"
	LevelInput         Level = "INPUT"
	LevelConfirm       Level = "CONFIRM INPUT"
	LevelConfirmFailed Level = "CONFIRM FAILED"
	LevelPerformance   Level = "PERFORMANCE"
)

var levelColors = map[Level]lipgloss.Color{
	LevelInfo:          ColorInfo,
	LevelWarn:          ColorWarning,
	LevelError:         ColorError,
	LevelDebug:         ColorDebug,
	LevelInput:         ColorSecondary,
	LevelConfirm:       ColorSecondary,
	LevelConfirmFailed: ColorError,
	LevelPerformance:   ColorMuted,
}

// Console prints badge lines of the form "LEVEL  message". Styling goes
// through a renderer bound to the output, so buffers and pipes get plain
// text.
type Console struct {
	term     *Terminal
	renderer *lipgloss.Renderer
}

// NewConsole creates a console over t. colorMode is one of ColorAuto,
// ColorAlways or ColorNever.
func NewConsole(t *Terminal, colorMode string) *Console {
	r := lipgloss.NewRenderer(t.Writer())
	if profile, ok := profileFor(colorMode); ok {
		r.SetColorProfile(profile)
	}
	return &Console{term: t, renderer: r}
}

// Terminal returns the underlying terminal.
func (c *Console) Terminal() *Terminal { return c.term }

// Renderer returns the lipgloss renderer bound to the output.
func (c *Console) Renderer() *lipgloss.Renderer { return c.renderer }

// Line prints one badge line.
func (c *Console) Line(level Level, message string) {
	color, ok := levelColors[level]
	if !ok {
		color = ColorPrimary
	}
	c.Badge(string(level), color, message)
}

// Badge prints a line with a custom title and color.
func (c *Console) Badge(title string, color lipgloss.Color, message string) {
	fmt.Fprintln(c.term.Writer(), c.FormatBadge(title, color, message))
}

// FormatBadge returns the badge line without printing it.
func (c *Console) FormatBadge(title string, color lipgloss.Color, message string) string {
	badge := c.renderer.NewStyle().Bold(true).Foreground(color).Render(title)
	return badge + "  " + message
}

// Println writes a plain line.
func (c *Console) Println(s string) {
	fmt.Fprintln(c.term.Writer(), s)
}

// Style returns a style bound to this console's renderer.
func (c *Console) Style() lipgloss.Style {
	return c.renderer.NewStyle()
}

// Writer exposes the output for collaborators that print directly.
func (c *Console) Writer() io.Writer { return c.term.Writer() }
