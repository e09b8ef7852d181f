package core

import "fmt"

// InvariantError describes a broken internal invariant. Generation stages
// panic with it; the generator boundary recovers and reports it as an error.
type InvariantError struct {
	Stage  string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: invariant violated: %s", e.Stage, e.Detail)
}

// Assert panics with an *InvariantError when cond is false.
func Assert(cond bool, stage, format string, args ...any) {
	if cond {
		return
	}
	panic(&InvariantError{Stage: stage, Detail: fmt.Sprintf(format, args...)})
}
