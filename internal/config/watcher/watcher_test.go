package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string, opts ...Option) <-chan Event {
	t.Helper()

	w, err := New(path, opts...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Event, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(e Event) { events <- e })
	}()

	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return events
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case e := <-events:
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Operation
		ok   bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Chmod, 0, false},
	}

	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in.String())
		if ok {
			assert.Equal(t, tt.want, got, tt.in.String())
		}
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent", "config.toml"))
	assert.Error(t, err)
}

func TestWatcher_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0o644))

	events := startWatcher(t, path, WithDebounce(20*time.Millisecond))

	require.NoError(t, os.WriteFile(path, []byte("a = 2\n"), 0o644))

	e := waitEvent(t, events)
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, abs, e.Path)
	assert.False(t, e.Time.IsZero())
}

func TestWatcher_CreateLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	events := startWatcher(t, path, WithDebounce(0))

	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o644))

	e := waitEvent(t, events)
	assert.Equal(t, OpCreate, e.Op)
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0o644))

	events := startWatcher(t, path, WithDebounce(10*time.Millisecond))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	select {
	case e := <-events:
		t.Fatalf("unexpected event for sibling: %+v", e)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("a = 3\n"), 0o644))
	e := waitEvent(t, events)
	assert.Equal(t, filepath.Base(path), filepath.Base(e.Path))
}

func TestWatcher_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	w, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(path), filepath.Base(w.Path()))

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	err = w.Run(context.Background(), func(Event) {})
	assert.ErrorIs(t, err, ErrWatcherClosed)
}
