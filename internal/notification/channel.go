package notification

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dshills/notifycenter/internal/notification/dispatch"
)

// Channel owns the ordered observer list for one Name and performs fan-out.
//
// Observers run in registration order. The same observer may be registered
// more than once and is then invoked once per registration.
type Channel struct {
	name       Name
	dispatcher *dispatch.Dispatcher[Notification]

	mu   sync.Mutex
	subs []*Subscription
}

// newChannel creates an empty channel.
func newChannel(name Name, d *dispatch.Dispatcher[Notification]) *Channel {
	return &Channel{
		name:       name,
		dispatcher: d,
	}
}

// Name returns the channel name.
func (c *Channel) Name() Name {
	return c.name
}

// Len returns the number of registered observers.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Post delivers n to every observer registered when Post was called.
//
// Delivery runs against a snapshot of the observer list, so observers that
// subscribe or unsubscribe during the fan-out only affect later posts.
// Post returns after every observer has returned. With no observers it is a
// no-op.
func (c *Channel) Post(n Notification) {
	snapshot := c.snapshot()
	for _, sub := range snapshot {
		c.dispatcher.Dispatch(n, sub.observer)
	}
}

// PostFrom creates a notification on this channel's name and posts it.
// A nil sender or payload is treated as absent.
func (c *Channel) PostFrom(sender, payload any) {
	c.Post(NewWithPayload(c.name, sender, payload))
}

// Subscribe appends cb to the observer list.
// A nil callback yields an already-cancelled subscription.
func (c *Channel) Subscribe(cb Callback) *Subscription {
	if cb == nil {
		return c.inert()
	}
	return c.AddObserver(cb)
}

// SubscribeOnce appends cb so that it is delivered at most one notification.
// The subscription removes itself before cb runs.
func (c *Channel) SubscribeOnce(cb Callback) *Subscription {
	if cb == nil {
		return c.inert()
	}

	sub := newSubscription(c, nil)
	var fired atomic.Bool
	sub.observer = Callback(func(n Notification) {
		if !fired.CompareAndSwap(false, true) {
			return
		}
		sub.Cancel()
		cb(n)
	})

	c.add(sub)
	return sub
}

// AddObserver appends o to the observer list.
// A nil observer yields an already-cancelled subscription.
func (c *Channel) AddObserver(o Observer) *Subscription {
	if o == nil {
		return c.inert()
	}
	sub := newSubscription(c, o)
	c.add(sub)
	return sub
}

// Unsubscribe removes sub from the observer list.
// Returns false if sub is not registered on this channel.
func (c *Channel) Unsubscribe(sub *Subscription) bool {
	if sub == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, s := range c.subs {
		if s == sub {
			c.removeAt(i)
			return true
		}
	}
	return false
}

// RemoveObserver removes the earliest registration of o.
// Later duplicate registrations of o stay in place. Observers of
// non-comparable types, such as a bare Callback, never match; remove those
// through their Subscription. Returns false if nothing was removed.
func (c *Channel) RemoveObserver(o Observer) bool {
	if o == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, s := range c.subs {
		if sameObserver(s.observer, o) {
			c.removeAt(i)
			return true
		}
	}
	return false
}

// RemoveAll removes every observer.
func (c *Channel) RemoveAll() {
	c.Clear()
}

// Clear empties the observer list and cancels every subscription.
func (c *Channel) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.subs {
		s.cancelled.Store(true)
	}
	c.subs = nil
}

// snapshot returns a copy of the observer list.
func (c *Channel) snapshot() []*Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.subs) == 0 {
		return nil
	}
	out := make([]*Subscription, len(c.subs))
	copy(out, c.subs)
	return out
}

func (c *Channel) add(sub *Subscription) {
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
}

// removeAt removes the subscription at index i. c.mu must be held.
func (c *Channel) removeAt(i int) {
	c.subs[i].cancelled.Store(true)
	// Copy instead of shifting in place: a snapshot taken by an in-flight
	// Post may share the backing array.
	next := make([]*Subscription, 0, len(c.subs)-1)
	next = append(next, c.subs[:i]...)
	next = append(next, c.subs[i+1:]...)
	c.subs = next
}

// inert returns a subscription that was never registered.
func (c *Channel) inert() *Subscription {
	sub := newSubscription(c, nil)
	sub.cancelled.Store(true)
	return sub
}

// sameObserver reports whether a and b are the same observer value.
func sameObserver(a, b Observer) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() {
		return false
	}
	return a == b
}
