package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// PhaseDisplay renders the status lines around a unit of work: the
// in-progress line while it runs and a finished line once it is done.
type PhaseDisplay struct {
	c *Console
}

// NewPhaseDisplay creates a phase display printing through c.
func NewPhaseDisplay(c *Console) *PhaseDisplay {
	return &PhaseDisplay{c: c}
}

// RenderLoading prints "name: loading..." without a trailing newline, for
// work that runs inline.
func (pd *PhaseDisplay) RenderLoading(name string) {
	pd.c.Terminal().Print(name + ": loading...")
}

// RenderRunning prints the status line above a background task's spinner.
// Shows: ◐ Running: backup
func (pd *PhaseDisplay) RenderRunning(name string) {
	style := pd.c.Style().Foreground(ColorSecondary)
	fmt.Fprintf(pd.c.Writer(), "%s Running: %s\n", style.Render(SymbolProgress), name)
}

// RenderSuccess renders a completed phase.
// Shows: ● backup 0.3s
func (pd *PhaseDisplay) RenderSuccess(name string, duration time.Duration) {
	pd.c.Println(pd.format(SymbolComplete, ColorSuccess, name, formatDuration(duration)))
}

// RenderFailed renders a failed phase, with the error when there is one.
// Shows: ✗ backup failed 2.3s
func (pd *PhaseDisplay) RenderFailed(name string, duration time.Duration, err error) {
	pd.c.Println(pd.format(SymbolFail, ColorError, name+" failed", formatDuration(duration)))
	if err != nil {
		style := pd.c.Style().Foreground(ColorMuted)
		pd.c.Println("  " + style.Render(err.Error()))
	}
}

func (pd *PhaseDisplay) format(symbol string, color lipgloss.Color, name, timing string) string {
	symbolStyle := pd.c.Style().Foreground(color)
	timingStyle := pd.c.Style().Foreground(ColorMuted)
	return fmt.Sprintf("%s %s %s", symbolStyle.Render(symbol), name, timingStyle.Render(timing))
}

// formatDuration formats a duration for display (e.g., "0.3s", "1.2s").
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}
