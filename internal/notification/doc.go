// Package notification provides a process-local publish/subscribe
// notification center.
//
// Components publish typed messages on named channels and register
// observers on those channels without knowing about each other.
//
// # Components
//
//	Name          value-equal channel identifier ("session.started")
//	Notification  immutable record: name, optional sender, optional payload
//	Channel       ordered observer list for one Name; performs fan-out
//	Center        Name -> Channel mapping with lazy channel creation
//	Scope         owner of a distinguished Center (session or tooling)
//
// # Delivery
//
// Post is synchronous. Every observer registered when Post is called runs
// in registration order in the caller's goroutine, and Post returns after
// the last one returns. Observers registered or removed during a fan-out
// only affect later posts. Posting on a name without observers is a no-op.
//
// Observers may post re-entrantly. Nested posts complete before the outer
// fan-out continues, and there is no cycle detection.
//
// By default a panicking observer aborts the fan-out and the panic reaches
// the caller of Post. WithRecover isolates every observer instead:
//
//	c := notification.NewCenter(notification.WithRecover(nil))
//
// # Typed access
//
// Payload and sender are untyped. ReadPayload and ReadSender return an
// error when the value is absent or of another type, MustReadPayload and
// MustReadSender panic with that error, and TryReadPayload and
// TryReadSender report success with a bool:
//
//	sub := c.Subscribe("player.health", func(n notification.Notification) {
//		hp := notification.MustReadPayload[int](n)
//		...
//	})
//	defer sub.Cancel()
//
//	c.Post("player.health", player, 42)
//
// # Scopes
//
// Default returns the session-scoped center, which StartSession replaces.
// Tooling returns the tooling-scoped center, which survives session
// resets. EndSession drops the observers of both.
package notification
