package notification

import "strings"

// Name identifies a notification channel.
//
// Names compare and hash by their identifier, so two Names built from the
// same string are interchangeable and address the same channel. No
// validation is performed: the empty string is a legal (degenerate) name.
//
// Names conventionally use dot notation, e.g. "session.started" or
// "player.health.changed".
type Name string

// Separator is the character used to separate name segments.
const Separator = "."

// NewName creates a Name from an identifier.
func NewName(identifier string) Name {
	return Name(identifier)
}

// String returns the raw identifier.
func (n Name) String() string {
	return string(n)
}

// Segments returns the name split by the separator.
func (n Name) Segments() []string {
	if n == "" {
		return nil
	}
	return strings.Split(string(n), Separator)
}

// Parent returns the name with its last segment removed.
// Returns an empty name if there is no parent.
//
// Example: "player.health.changed" -> "player.health"
func (n Name) Parent() Name {
	s := string(n)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return ""
	}
	return Name(s[:idx])
}

// Child returns a name with segment appended.
//
// Example: "player".Child("spawned") -> "player.spawned"
func (n Name) Child(segment string) Name {
	if n == "" {
		return Name(segment)
	}
	return Name(string(n) + Separator + segment)
}

// HasPrefix returns true if the name starts with the given prefix on a
// segment boundary.
func (n Name) HasPrefix(prefix Name) bool {
	if prefix == "" {
		return true
	}
	s := string(n)
	p := string(prefix)
	if !strings.HasPrefix(s, p) {
		return false
	}
	if len(s) == len(p) {
		return true
	}
	return s[len(p)] == '.'
}

// Subscribe registers cb for this name on the default center.
func (n Name) Subscribe(cb Callback) *Subscription {
	return Default().Subscribe(n, cb)
}

// Post publishes on this name through the default center.
// A nil sender or payload is treated as absent.
func (n Name) Post(sender, payload any) {
	Default().Post(n, sender, payload)
}
