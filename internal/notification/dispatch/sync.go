package dispatch

import (
	"sync/atomic"
	"time"
)

// Dispatcher invokes observers synchronously in the caller's goroutine
// using either the direct or the isolated strategy.
type Dispatcher[N any] struct {
	mode     Mode
	executor *Executor[N]

	// Stats
	dispatched  atomic.Uint64
	succeeded   atomic.Uint64
	panicked    atomic.Uint64
	totalTimeNs atomic.Int64
}

// Option configures a Dispatcher.
type Option[N any] func(*Dispatcher[N])

// WithIsolation switches the dispatcher to ModeIsolated and reports recovered
// panics to h.
func WithIsolation[N any](h PanicHandler[N]) Option[N] {
	return func(d *Dispatcher[N]) {
		d.mode = ModeIsolated
		d.executor = NewExecutor(h)
	}
}

// NewDispatcher creates a new dispatcher. Without options it uses ModeDirect.
func NewDispatcher[N any](opts ...Option[N]) *Dispatcher[N] {
	d := &Dispatcher[N]{mode: ModeDirect}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Mode returns the dispatch strategy in use.
func (d *Dispatcher[N]) Mode() Mode {
	return d.mode
}

// Dispatch invokes a single observer with the given message.
// In ModeDirect a panicking observer propagates the panic to the caller.
func (d *Dispatcher[N]) Dispatch(n N, h Handler[N]) {
	d.dispatched.Add(1)

	var result Result
	if d.mode == ModeIsolated {
		result = d.executor.Execute(n, h)
	} else {
		start := time.Now()
		h.Observe(n)
		result.Duration = time.Since(start)
	}

	d.totalTimeNs.Add(result.Duration.Nanoseconds())
	if result.Panicked {
		d.panicked.Add(1)
	} else {
		d.succeeded.Add(1)
	}
}

// Stats returns dispatch statistics.
// Values are read without a mutex and may be slightly inconsistent while a
// fan-out is in progress.
func (d *Dispatcher[N]) Stats() Stats {
	dispatched := d.dispatched.Load()
	totalNs := d.totalTimeNs.Load()

	var avgNs int64
	if dispatched > 0 {
		avgNs = totalNs / int64(dispatched)
	}

	return Stats{
		Dispatched:    dispatched,
		Succeeded:     d.succeeded.Load(),
		Panicked:      d.panicked.Load(),
		TotalDuration: time.Duration(totalNs),
		AvgDuration:   time.Duration(avgNs),
	}
}

// ResetStats resets all statistics to zero.
func (d *Dispatcher[N]) ResetStats() {
	d.dispatched.Store(0)
	d.succeeded.Store(0)
	d.panicked.Store(0)
	d.totalTimeNs.Store(0)
}

// Stats contains statistics for a dispatcher.
type Stats struct {
	// Dispatched is the total number of observer invocations started.
	Dispatched uint64

	// Succeeded is the number of observers that returned normally.
	Succeeded uint64

	// Panicked is the number of recovered observer panics.
	Panicked uint64

	// TotalDuration is the cumulative time spent in observers.
	TotalDuration time.Duration

	// AvgDuration is the average observer execution time.
	AvgDuration time.Duration
}
