package notification

import "reflect"

// ReadPayload returns the payload as a T.
// It fails with *UnexpectedDataError when the payload is absent or is not a T.
func ReadPayload[T any](n Notification) (T, error) {
	if v, ok := TryReadPayload[T](n); ok {
		return v, nil
	}
	var zero T
	return zero, NewUnexpectedDataError(&n, reflect.TypeFor[T]())
}

// MustReadPayload returns the payload as a T and panics with
// *UnexpectedDataError on mismatch. Use it where a mismatch is a programming
// error.
func MustReadPayload[T any](n Notification) T {
	v, err := ReadPayload[T](n)
	if err != nil {
		panic(err)
	}
	return v
}

// TryReadPayload returns the payload as a T and true, or the zero T and false
// when the payload is absent or of another type. It never fails.
func TryReadPayload[T any](n Notification) (T, bool) {
	v, ok := n.payload.(T)
	return v, ok
}

// ReadSender returns the sender as a T.
// It fails with *UnexpectedSenderError when the sender is absent or is not a T.
func ReadSender[T any](n Notification) (T, error) {
	if v, ok := TryReadSender[T](n); ok {
		return v, nil
	}
	var zero T
	return zero, NewUnexpectedSenderError(&n, reflect.TypeFor[T]())
}

// MustReadSender returns the sender as a T and panics with
// *UnexpectedSenderError on mismatch.
func MustReadSender[T any](n Notification) T {
	v, err := ReadSender[T](n)
	if err != nil {
		panic(err)
	}
	return v
}

// TryReadSender returns the sender as a T and true, or the zero T and false
// when the sender is absent or of another type.
func TryReadSender[T any](n Notification) (T, bool) {
	v, ok := n.sender.(T)
	return v, ok
}
