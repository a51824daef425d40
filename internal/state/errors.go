package state

import "fmt"

// PreconditionError reports misuse of the drawing engine by its host, such
// as an out of range stroke index. It is raised with panic: a correct
// integration never triggers it.
type PreconditionError struct {
	Op     string
	Detail string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition violated in %s: %s", e.Op, e.Detail)
}

func violate(op, format string, args ...any) {
	panic(&PreconditionError{Op: op, Detail: fmt.Sprintf(format, args...)})
}

// Violate panics with a PreconditionError. It is used by the other engine
// packages so that all misuse is reported the same way.
func Violate(op, format string, args ...any) {
	violate(op, format, args...)
}
