package notification

import (
	"fmt"
	"strings"
)

// Notification carries the data passed through a Center to its observers.
// Notifications are immutable once created.
type Notification struct {
	name    Name
	sender  any
	payload any
}

// New creates a notification with a name only.
func New(name Name) Notification {
	return Notification{name: name}
}

// NewWithSender creates a notification with a name and sender.
func NewWithSender(name Name, sender any) Notification {
	return Notification{name: name, sender: sender}
}

// NewWithPayload creates a notification with a name, sender, and payload.
// A nil sender or payload is treated as absent.
func NewWithPayload(name Name, sender, payload any) Notification {
	return Notification{name: name, sender: sender, payload: payload}
}

// Name returns the notification name.
func (n Notification) Name() Name {
	return n.name
}

// Sender returns the raw sender, or nil when absent.
func (n Notification) Sender() any {
	return n.sender
}

// Payload returns the raw payload, or nil when absent.
func (n Notification) Payload() any {
	return n.payload
}

// HasSender reports whether a sender was supplied.
func (n Notification) HasSender() bool {
	return n.sender != nil
}

// HasPayload reports whether a payload was supplied.
func (n Notification) HasPayload() bool {
	return n.payload != nil
}

// String renders the notification as "name = X, sender = S, payload = P".
// Absent fields are omitted.
func (n Notification) String() string {
	var b strings.Builder
	b.WriteString("name = ")
	b.WriteString(string(n.name))
	if n.sender != nil {
		fmt.Fprintf(&b, ", sender = %v", n.sender)
	}
	if n.payload != nil {
		fmt.Fprintf(&b, ", payload = %v", n.payload)
	}
	return b.String()
}
