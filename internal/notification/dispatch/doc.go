// Package dispatch provides the fan-out strategies used by a notification
// center to invoke its observers.
//
// # Strategies
//
// Two strategies are provided:
//
//   - ModeDirect: Observers run in the caller's goroutine with no recovery.
//     A panic in one observer aborts delivery to every observer after it and
//     propagates to the publisher. This is the default.
//
//   - ModeIsolated: Each observer invocation is wrapped by an Executor that
//     recovers panics, reports them to a PanicHandler, and continues with the
//     next observer.
//
// Both strategies are synchronous: Dispatch does not return until the
// observer has returned (or panicked).
//
// # Usage
//
//	d := dispatch.NewDispatcher[Msg](
//	    dispatch.WithIsolation[Msg](func(m Msg, recovered any, stack []byte) {
//	        log.Printf("observer panic: %v\n%s", recovered, stack)
//	    }),
//	)
//	for _, h := range handlers {
//	    d.Dispatch(msg, h)
//	}
package dispatch
