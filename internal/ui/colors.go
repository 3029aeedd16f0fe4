package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication, as ANSI codes so they degrade
// sensibly on 16-color terminals.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
	ColorDebug     lipgloss.Color = "5" // Magenta
)

// Color modes accepted by output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DisableColors switches the default renderer to monochrome output.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// profileFor maps a color mode to a termenv profile. ok is false for auto,
// leaving detection to the renderer.
func profileFor(mode string) (termenv.Profile, bool) {
	switch mode {
	case ColorNever:
		return termenv.Ascii, true
	case ColorAlways:
		return termenv.ANSI256, true
	}
	return termenv.Ascii, false
}
