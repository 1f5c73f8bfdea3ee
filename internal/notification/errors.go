package notification

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
)

// Sentinel errors for consumer-side type and name checks.
// The typed errors below match them through errors.Is.
var (
	// ErrUnexpectedName is matched by *UnexpectedNameError.
	ErrUnexpectedName = errors.New("received a notification with an unexpected name")

	// ErrUnexpectedSender is matched by *UnexpectedSenderError.
	ErrUnexpectedSender = errors.New("received a notification from an unexpected sender")

	// ErrUnexpectedData is matched by *UnexpectedDataError.
	ErrUnexpectedData = errors.New("received a notification with unexpected data")
)

// UnexpectedNameError reports that a subscriber received a notification on a
// name it did not expect. The center never raises it; subscribers use
// ExpectName to self-check.
type UnexpectedNameError struct {
	// Notification is the offending notification, if available.
	Notification *Notification

	// Expected is the name the subscriber expected, if available.
	Expected *Name
}

// NewUnexpectedNameError creates an UnexpectedNameError. Either argument may
// be nil.
func NewUnexpectedNameError(n *Notification, expected *Name) *UnexpectedNameError {
	return &UnexpectedNameError{Notification: n, Expected: expected}
}

// Error implements the error interface.
func (e *UnexpectedNameError) Error() string {
	expected := ""
	if e.Expected != nil {
		expected = strconv.Quote(string(*e.Expected))
	}
	return mismatchMessage(ErrUnexpectedName, expected, e.Notification)
}

// Is allows errors.Is to match UnexpectedNameError with ErrUnexpectedName.
func (e *UnexpectedNameError) Is(target error) bool {
	return target == ErrUnexpectedName
}

// UnexpectedSenderError reports a sender that is absent or of the wrong type.
type UnexpectedSenderError struct {
	// Notification is the offending notification, if available.
	Notification *Notification

	// Expected is the sender type that was requested, if available.
	Expected reflect.Type
}

// NewUnexpectedSenderError creates an UnexpectedSenderError. Either argument
// may be nil.
func NewUnexpectedSenderError(n *Notification, expected reflect.Type) *UnexpectedSenderError {
	return &UnexpectedSenderError{Notification: n, Expected: expected}
}

// Error implements the error interface.
func (e *UnexpectedSenderError) Error() string {
	return mismatchMessage(ErrUnexpectedSender, typeName(e.Expected), e.Notification)
}

// Is allows errors.Is to match UnexpectedSenderError with ErrUnexpectedSender.
func (e *UnexpectedSenderError) Is(target error) bool {
	return target == ErrUnexpectedSender
}

// UnexpectedDataError reports a payload that is absent or of the wrong type.
type UnexpectedDataError struct {
	// Notification is the offending notification, if available.
	Notification *Notification

	// Expected is the payload type that was requested, if available.
	Expected reflect.Type
}

// NewUnexpectedDataError creates an UnexpectedDataError. Either argument may
// be nil.
func NewUnexpectedDataError(n *Notification, expected reflect.Type) *UnexpectedDataError {
	return &UnexpectedDataError{Notification: n, Expected: expected}
}

// Error implements the error interface.
func (e *UnexpectedDataError) Error() string {
	return mismatchMessage(ErrUnexpectedData, typeName(e.Expected), e.Notification)
}

// Is allows errors.Is to match UnexpectedDataError with ErrUnexpectedData.
func (e *UnexpectedDataError) Is(target error) bool {
	return target == ErrUnexpectedData
}

// ExpectName returns an *UnexpectedNameError if n was not posted on expected.
func ExpectName(n Notification, expected Name) error {
	if n.name == expected {
		return nil
	}
	return NewUnexpectedNameError(&n, &expected)
}

// mismatchMessage builds "<base>[: expected X][, received Y]".
func mismatchMessage(base error, expected string, n *Notification) string {
	var b strings.Builder
	b.WriteString(base.Error())

	sep := ": "
	if expected != "" {
		b.WriteString(sep)
		b.WriteString("expected ")
		b.WriteString(expected)
		sep = ", "
	}
	if n != nil {
		b.WriteString(sep)
		b.WriteString("received ")
		b.WriteString(n.String())
	}
	return b.String()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
