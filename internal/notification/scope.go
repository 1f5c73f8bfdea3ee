package notification

import "sync"

// Scope owns one distinguished Center and controls its lifetime.
//
// The center is created lazily on first access. Reset replaces it with a
// fresh instance; Clear keeps the instance and drops its observers.
type Scope struct {
	label string

	mu     sync.Mutex
	center *Center
	opts   []Option
}

// NewScope creates a scope whose centers are built with opts.
func NewScope(label string, opts ...Option) *Scope {
	return &Scope{label: label, opts: opts}
}

// Label returns the scope label.
func (s *Scope) Label() string {
	return s.label
}

// Configure replaces the options used for centers created after the call.
// The current center, if any, is unchanged until the next Reset.
func (s *Scope) Configure(opts ...Option) {
	s.mu.Lock()
	s.opts = opts
	s.mu.Unlock()
}

// Center returns the current center, creating it if needed.
func (s *Scope) Center() *Center {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.center == nil {
		s.center = s.newCenter()
	}
	return s.center
}

// Loaded reports whether a center currently exists.
func (s *Scope) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.center != nil
}

// Reset clears the current center and replaces it with a new one.
func (s *Scope) Reset() *Center {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.center != nil {
		s.center.Clear()
	}
	s.center = s.newCenter()
	return s.center
}

// Clear drops every observer of the current center. No-op if none exists.
func (s *Scope) Clear() {
	s.mu.Lock()
	c := s.center
	s.mu.Unlock()

	if c != nil {
		c.Clear()
	}
}

// Release clears the current center and forgets it.
func (s *Scope) Release() {
	s.mu.Lock()
	c := s.center
	s.center = nil
	s.mu.Unlock()

	if c != nil {
		c.Clear()
	}
}

func (s *Scope) newCenter() *Center {
	opts := make([]Option, 0, len(s.opts)+1)
	opts = append(opts, WithLabel(s.label))
	opts = append(opts, s.opts...)
	return NewCenter(opts...)
}

var (
	sessionScope = NewScope("session")
	toolingScope = NewScope("tooling")
)

// SessionScope returns the scope backing Default.
func SessionScope() *Scope {
	return sessionScope
}

// ToolingScope returns the scope backing Tooling.
func ToolingScope() *Scope {
	return toolingScope
}

// Default returns the session-scoped center.
func Default() *Center {
	return sessionScope.Center()
}

// Tooling returns the tooling-scoped center. It survives session resets.
func Tooling() *Center {
	return toolingScope.Center()
}

// StartSession clears the session-scoped center and replaces it.
// The tooling center is not affected.
func StartSession() *Center {
	return sessionScope.Reset()
}

// StartTooling clears the tooling-scoped center and replaces it.
func StartTooling() *Center {
	return toolingScope.Reset()
}

// EndSession drops the observers of every distinguished center.
// The center instances themselves are kept.
func EndSession() {
	sessionScope.Clear()
	toolingScope.Clear()
}

// Shutdown clears and forgets every distinguished center.
func Shutdown() {
	sessionScope.Release()
	toolingScope.Release()
}
