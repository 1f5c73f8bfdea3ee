package notification

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Observer receives notifications posted on a channel.
type Observer interface {
	// Observe is called synchronously, in the publisher's goroutine.
	Observe(n Notification)
}

// Callback is a function adapter for Observer.
type Callback func(n Notification)

// Observe implements the Observer interface.
func (f Callback) Observe(n Notification) {
	f(n)
}

// Subscription is the handle returned when an observer is registered.
// It is the reliable way to remove a registration: function values are not
// comparable in Go, so a Callback can only be removed through its handle.
type Subscription struct {
	id        string
	name      Name
	observer  Observer
	channel   *Channel
	cancelled atomic.Bool
}

// newSubscription creates a subscription bound to ch.
func newSubscription(ch *Channel, o Observer) *Subscription {
	return &Subscription{
		id:       uuid.NewString(),
		name:     ch.name,
		observer: o,
		channel:  ch,
	}
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Name returns the name the subscription was registered on.
func (s *Subscription) Name() Name {
	return s.name
}

// Observer returns the registered observer.
func (s *Subscription) Observer() Observer {
	return s.observer
}

// Active returns true until the subscription is removed from its channel.
func (s *Subscription) Active() bool {
	return !s.cancelled.Load()
}

// Cancel removes the subscription from its channel.
// Returns false if it was already removed.
func (s *Subscription) Cancel() bool {
	if s.channel == nil {
		return false
	}
	return s.channel.Unsubscribe(s)
}
