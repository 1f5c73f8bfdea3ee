package notification

import (
	"reflect"
	"testing"
)

func TestNameEquality(t *testing.T) {
	a := NewName("Tick")
	b := NewName("Tick")
	if a != b {
		t.Fatalf("NewName(%q) != NewName(%q)", a, b)
	}
	if NewName("Tick") == NewName("tick") {
		t.Error("names should be case sensitive")
	}

	m := map[Name]int{a: 1}
	if m[b] != 1 {
		t.Error("equal names should address the same map entry")
	}

	if NewName("").String() != "" {
		t.Error("empty name should be legal")
	}
}

func TestNameSegments(t *testing.T) {
	tests := []struct {
		name Name
		want []string
	}{
		{"", nil},
		{"player", []string{"player"}},
		{"player.health.changed", []string{"player", "health", "changed"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			got := tt.name.Segments()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNameParentChild(t *testing.T) {
	n := Name("player.health.changed")
	if got := n.Parent(); got != "player.health" {
		t.Errorf("Parent() = %q, want %q", got, "player.health")
	}
	if got := Name("player").Parent(); got != "" {
		t.Errorf("Parent() of single segment = %q, want empty", got)
	}
	if got := Name("player").Child("spawned"); got != "player.spawned" {
		t.Errorf("Child() = %q, want %q", got, "player.spawned")
	}
	if got := Name("").Child("root"); got != "root" {
		t.Errorf("Child() of empty = %q, want %q", got, "root")
	}
}

func TestNameHasPrefix(t *testing.T) {
	tests := []struct {
		name   Name
		prefix Name
		want   bool
	}{
		{"session.started", "session", true},
		{"session.started", "session.started", true},
		{"sessions.started", "session", false},
		{"session", "session.started", false},
		{"anything", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.name)+"/"+string(tt.prefix), func(t *testing.T) {
			if got := tt.name.HasPrefix(tt.prefix); got != tt.want {
				t.Errorf("HasPrefix(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}
