package dispatch

import (
	"runtime/debug"
	"time"
)

// Executor runs observers with panic recovery and timing.
type Executor[N any] struct {
	panicHandler PanicHandler[N]
}

// NewExecutor creates a new executor. A nil panic handler silently discards
// recovered panics.
func NewExecutor[N any](h PanicHandler[N]) *Executor[N] {
	return &Executor[N]{panicHandler: h}
}

// Execute runs an observer with the given message and returns the result.
// It recovers from panics and captures timing information.
func (e *Executor[N]) Execute(n N, h Handler[N]) (result Result) {
	start := time.Now()

	defer func() {
		result.Duration = time.Since(start)

		if r := recover(); r != nil {
			stack := debug.Stack()

			result.Panicked = true
			result.PanicValue = r
			result.PanicStack = stack

			if e.panicHandler != nil {
				func() {
					// A panicking panic handler must not escape the fan-out.
					defer func() { _ = recover() }()
					e.panicHandler(n, r, stack)
				}()
			}
		}
	}()

	h.Observe(n)
	return result
}
