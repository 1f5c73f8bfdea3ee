package notification

import (
	"reflect"
	"testing"
)

// recorder is a comparable observer that records what it saw.
type recorder struct {
	label string
	log   *[]string
}

func (r *recorder) Observe(n Notification) {
	*r.log = append(*r.log, r.label)
}

func newTestChannel(name Name) *Channel {
	return NewCenter().Channel(name)
}

func TestChannelPostEmpty(t *testing.T) {
	ch := newTestChannel("Empty")
	ch.Post(New("Empty"))
	ch.PostFrom("S", 1)
	if ch.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ch.Len())
	}
}

func TestChannelOrder(t *testing.T) {
	ch := newTestChannel("Order")

	var got []string
	for _, label := range []string{"a", "b", "c"} {
		ch.Subscribe(func(Notification) { got = append(got, label) })
	}

	ch.Post(New("Order"))

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("delivery order = %v, want %v", got, want)
	}
}

func TestChannelUnsubscribeMiddle(t *testing.T) {
	ch := newTestChannel("Order")

	var got []string
	ch.Subscribe(func(Notification) { got = append(got, "a") })
	b := ch.Subscribe(func(Notification) { got = append(got, "b") })
	ch.Subscribe(func(Notification) { got = append(got, "c") })

	if !ch.Unsubscribe(b) {
		t.Fatal("Unsubscribe should report removal")
	}
	if b.Active() {
		t.Error("removed subscription should be inactive")
	}

	ch.Post(New("Order"))

	want := []string{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("delivery order = %v, want %v", got, want)
	}
}

func TestChannelUnsubscribeUnknown(t *testing.T) {
	ch := newTestChannel("N")
	other := newTestChannel("N")

	calls := 0
	ch.Subscribe(func(Notification) { calls++ })
	foreign := other.Subscribe(func(Notification) {})

	if ch.Unsubscribe(foreign) {
		t.Error("Unsubscribe of a foreign subscription should report false")
	}
	if ch.Unsubscribe(nil) {
		t.Error("Unsubscribe(nil) should report false")
	}
	if ch.RemoveObserver(&recorder{}) {
		t.Error("RemoveObserver of an unknown observer should report false")
	}

	ch.Post(New("N"))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestChannelClear(t *testing.T) {
	ch := newTestChannel("N")

	calls := 0
	sub := ch.Subscribe(func(Notification) { calls++ })
	ch.Subscribe(func(Notification) { calls++ })

	ch.Clear()
	ch.Post(New("N"))

	if calls != 0 {
		t.Errorf("calls after Clear = %d, want 0", calls)
	}
	if sub.Active() {
		t.Error("Clear should cancel subscriptions")
	}

	ch.Subscribe(func(Notification) { calls++ })
	ch.RemoveAll()
	ch.Post(New("N"))
	if calls != 0 {
		t.Errorf("calls after RemoveAll = %d, want 0", calls)
	}
}

func TestChannelDuplicateObserver(t *testing.T) {
	ch := newTestChannel("Dup")

	var log []string
	r := &recorder{label: "r", log: &log}
	other := &recorder{label: "o", log: &log}

	ch.AddObserver(r)
	ch.AddObserver(other)
	ch.AddObserver(r)

	ch.Post(New("Dup"))
	if want := []string{"r", "o", "r"}; !reflect.DeepEqual(log, want) {
		t.Fatalf("delivery = %v, want %v", log, want)
	}

	// One removal takes out the earliest registration only.
	if !ch.RemoveObserver(r) {
		t.Fatal("RemoveObserver should report removal")
	}
	log = nil
	ch.Post(New("Dup"))
	if want := []string{"o", "r"}; !reflect.DeepEqual(log, want) {
		t.Errorf("delivery after RemoveObserver = %v, want %v", log, want)
	}
}

func TestChannelRemoveObserverFunc(t *testing.T) {
	ch := newTestChannel("N")

	cb := Callback(func(Notification) {})
	sub := ch.Subscribe(cb)

	// Function values are not comparable and never match by identity.
	if ch.RemoveObserver(cb) {
		t.Error("RemoveObserver should not match a Callback")
	}
	if !sub.Cancel() {
		t.Error("Cancel should remove the callback")
	}
	if sub.Cancel() {
		t.Error("second Cancel should report false")
	}
	if ch.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ch.Len())
	}
}

func TestChannelSnapshotUnsubscribe(t *testing.T) {
	ch := newTestChannel("Snap")

	var got []string
	var c2 *Subscription
	ch.Subscribe(func(Notification) {
		got = append(got, "c1")
		ch.Unsubscribe(c2)
	})
	c2 = ch.Subscribe(func(Notification) { got = append(got, "c2") })

	// The first post uses the list taken before C1 ran.
	ch.Post(New("Snap"))
	if want := []string{"c1", "c2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("first post = %v, want %v", got, want)
	}

	got = nil
	ch.Post(New("Snap"))
	if want := []string{"c1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("second post = %v, want %v", got, want)
	}
}

func TestChannelSnapshotSubscribe(t *testing.T) {
	ch := newTestChannel("Snap")

	late := 0
	ch.Subscribe(func(Notification) {
		ch.Subscribe(func(Notification) { late++ })
	})

	ch.Post(New("Snap"))
	if late != 0 {
		t.Errorf("observer added during post ran %d times, want 0", late)
	}

	ch.Post(New("Snap"))
	if late != 1 {
		t.Errorf("late = %d, want 1", late)
	}
}

func TestChannelReentrantPost(t *testing.T) {
	c := NewCenter()

	var got []string
	c.Subscribe("outer", func(Notification) {
		got = append(got, "outer-start")
		c.Post("inner", nil, nil)
		got = append(got, "outer-end")
	})
	c.Subscribe("inner", func(Notification) { got = append(got, "inner") })

	c.Post("outer", nil, nil)

	want := []string{"outer-start", "inner", "outer-end"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("delivery = %v, want %v", got, want)
	}
}

func TestChannelSubscribeOnce(t *testing.T) {
	ch := newTestChannel("Once")

	calls := 0
	sub := ch.SubscribeOnce(func(n Notification) {
		calls++
		// Re-entrant post inside the callback must not deliver again.
		ch.Post(n)
	})

	ch.Post(New("Once"))
	ch.Post(New("Once"))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if sub.Active() {
		t.Error("once subscription should be inactive after delivery")
	}
	if ch.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ch.Len())
	}
}

func TestChannelNilObserver(t *testing.T) {
	ch := newTestChannel("N")

	for _, sub := range []*Subscription{
		ch.Subscribe(nil),
		ch.SubscribeOnce(nil),
		ch.AddObserver(nil),
	} {
		if sub == nil || sub.Active() {
			t.Error("nil observer should yield an inactive subscription")
		}
	}
	if ch.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ch.Len())
	}
	ch.Post(New("N"))
}

func TestSubscriptionHandle(t *testing.T) {
	ch := newTestChannel("Handle")

	a := ch.Subscribe(func(Notification) {})
	b := ch.Subscribe(func(Notification) {})

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("subscription IDs should be unique: %q, %q", a.ID(), b.ID())
	}
	if a.Name() != "Handle" {
		t.Errorf("Name() = %q, want %q", a.Name(), "Handle")
	}
	if !a.Active() {
		t.Error("new subscription should be active")
	}
	if a.Observer() == nil {
		t.Error("Observer() should return the registered observer")
	}
}
