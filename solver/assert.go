package solver

import "fmt"

// assertf aborts with a diagnostic when cond is false. Structural
// invariant violations here are programming errors, not recoverable
// conditions, so panic is the correct response rather than a returned
// error.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
