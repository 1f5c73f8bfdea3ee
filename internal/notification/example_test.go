package notification_test

import (
	"errors"
	"fmt"

	"github.com/dshills/notifycenter/internal/notification"
)

func Example() {
	c := notification.NewCenter()
	ready := notification.NewName("Ready")

	c.Subscribe(ready, func(n notification.Notification) {
		fmt.Println("first:", n)
	})
	c.Subscribe(ready, func(n notification.Notification) {
		fmt.Println("second payload:", notification.MustReadPayload[int](n))
	})

	c.Post(ready, "S", 42)

	// Output:
	// first: name = Ready, sender = S, payload = 42
	// second payload: 42
}

func ExampleTryReadPayload() {
	n := notification.NewWithPayload("N", nil, "x")

	if _, ok := notification.TryReadPayload[int](n); !ok {
		fmt.Println("not an int")
	}
	if s, ok := notification.TryReadPayload[string](n); ok {
		fmt.Println("string:", s)
	}

	// Output:
	// not an int
	// string: x
}

func ExampleReadPayload() {
	n := notification.NewWithPayload("N", nil, "x")

	_, err := notification.ReadPayload[int](n)
	fmt.Println(errors.Is(err, notification.ErrUnexpectedData))
	fmt.Println(err)

	// Output:
	// true
	// received a notification with unexpected data: expected int, received name = N, payload = x
}

func ExampleChannel_Unsubscribe() {
	c := notification.NewCenter()
	ch := c.Channel("Snap")

	var second *notification.Subscription
	ch.Subscribe(func(notification.Notification) {
		fmt.Println("c1")
		ch.Unsubscribe(second)
	})
	second = ch.Subscribe(func(notification.Notification) {
		fmt.Println("c2")
	})

	ch.Post(notification.New("Snap"))
	ch.Post(notification.New("Snap"))

	// Output:
	// c1
	// c2
	// c1
}

func ExampleCenter_SubscribeOnce() {
	c := notification.NewCenter()
	c.SubscribeOnce("session.started", func(n notification.Notification) {
		fmt.Println("started")
	})

	c.Post("session.started", nil, nil)
	c.Post("session.started", nil, nil)

	// Output:
	// started
}
