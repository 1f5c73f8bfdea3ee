package dispatch

import "time"

// Handler receives a dispatched message.
// This mirrors notification.Observer to avoid circular imports.
type Handler[N any] interface {
	Observe(n N)
}

// Result represents the outcome of a single observer invocation.
type Result struct {
	// Panicked is true if the observer panicked and the panic was recovered.
	Panicked bool

	// PanicValue is the value passed to panic(), if Panicked is true.
	PanicValue any

	// PanicStack is the stack trace at the point of panic.
	PanicStack []byte

	// Duration is how long the observer took to run.
	Duration time.Duration
}

// PanicHandler is called when an isolated observer panics.
// It receives the message being delivered, the panic value, and the stack trace.
type PanicHandler[N any] func(n N, panicValue any, stack []byte)

// Mode selects how observers are invoked.
type Mode int

const (
	// ModeDirect invokes observers without recovery.
	ModeDirect Mode = iota

	// ModeIsolated recovers observer panics and continues the fan-out.
	ModeIsolated
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeDirect:
		return "direct"
	case ModeIsolated:
		return "isolated"
	default:
		return "unknown"
	}
}
