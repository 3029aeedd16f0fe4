package task

import "fmt"

// WorkerFault is a panic raised inside a task body. The worker cleans up
// its artifacts before the fault reaches the caller.
type WorkerFault struct {
	TaskID string
	Title  string
	Value  any
	Stack  []byte
}

func (f *WorkerFault) Error() string {
	return fmt.Sprintf("task %q crashed: %v", f.Title, f.Value)
}

// Unwrap exposes the panic value when it was an error.
func (f *WorkerFault) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}
