package console

import (
	"fmt"

	"github.com/rileyhilliard/console/internal/ui"
)

// Exit stops a command with a status. Message, when set, is printed as a
// single badge line at Level.
type Exit struct {
	Status  int
	Message string
	Level   ui.Level
}

func (e *Exit) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Status)
	}
	return e.Message
}

// Stop returns an Exit with status that prints message as an error.
func Stop(status int, message string) *Exit {
	return &Exit{Status: status, Message: message, Level: ui.LevelError}
}

// Fail stops with status 1.
func Fail(message string) *Exit {
	return Stop(1, message)
}

// Done stops successfully, printing message as info when non-empty.
func Done(message string) *Exit {
	return &Exit{Message: message, Level: ui.LevelInfo}
}

// outcome is what each pipeline phase returns: carry on, stop with an
// exit, or abort with a fault.
type outcome struct {
	exit *Exit
	err  error
}

func proceed() outcome { return outcome{} }

func halt(e *Exit) outcome { return outcome{exit: e} }

func fault(err error) outcome { return outcome{err: err} }

func (o outcome) stopped() bool { return o.exit != nil || o.err != nil }
