// Package ui provides the terminal output layer for console commands.
//
// # Components Overview
//
//	Terminal      - Line and cursor control over termenv, plain newlines when not a TTY
//	Console       - Badge lines ("ERROR  message") styled through a per-output lipgloss renderer
//	Spinner       - Frame cycler for background tasks, ticked by the caller
//	PhaseDisplay  - Loading, running and finished lines around a unit of work
//	Views         - Named text templates plus Compile for template files
//	Table         - Static tables for listing data
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful operations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - Prompts and in-progress indicators
//
// Console honors an output.color mode (auto, always, never); DisableColors
// switches the process-wide default renderer to monochrome (for --no-color).
//
// # Spinner Usage
//
// Background tasks tick a spinner until their worker finishes:
//
//	s := ui.NewSpinner(console.Terminal(), "Backing up")
//	s.SetStyle(console.Style().Foreground(ui.ColorSecondary))
//	for running() {
//		s.Tick()
//		time.Sleep(interval)
//	}
package ui
