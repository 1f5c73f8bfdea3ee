package lua

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/notifycenter/internal/logging"
	"github.com/dshills/notifycenter/internal/notification"
)

func newTestRuntime(t *testing.T, opts ...RuntimeOption) (*Runtime, *notification.Center) {
	t.Helper()
	c := notification.NewCenter()
	rt, err := NewRuntime(c, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	return rt, c
}

func TestNotifyObserve(t *testing.T) {
	rt, c := newTestRuntime(t)

	require.NoError(t, rt.DoString(`
		received = {}
		id = notify.observe("score", function(n)
			received[#received + 1] = n.payload
			last_sender = n.sender
			last_name = n.name
		end)
	`))
	assert.Equal(t, 1, rt.Module().Len())

	c.Post("score", "game", 10)
	c.Post("score", nil, 20)

	received := rt.State().GetGlobal("received").(*lua.LTable)
	assert.Equal(t, 2, received.Len())
	assert.Equal(t, lua.LNumber(10), received.RawGetInt(1))
	assert.Equal(t, lua.LNumber(20), received.RawGetInt(2))
	assert.Equal(t, lua.LNil, rt.State().GetGlobal("last_sender"))
	assert.Equal(t, lua.LString("score"), rt.State().GetGlobal("last_name"))

	id := string(rt.State().GetGlobal("id").(lua.LString))
	assert.NotEmpty(t, id)
}

func TestNotifyPostFromLua(t *testing.T) {
	rt, c := newTestRuntime(t)

	var got notification.Notification
	calls := 0
	c.Subscribe("hello", func(n notification.Notification) {
		got = n
		calls++
	})

	require.NoError(t, rt.DoString(`
		notify.post("hello", { a = 1, list = {"x"} }, "script")
		notify.post("hello")
	`))

	require.Equal(t, 2, calls)
	assert.Equal(t, notification.Name("hello"), got.Name())
	assert.False(t, got.HasPayload())
	assert.False(t, got.HasSender())
}

func TestNotifyPostPayloadTypes(t *testing.T) {
	rt, c := newTestRuntime(t)

	var payload map[string]any
	var sender string
	c.Subscribe("hello", func(n notification.Notification) {
		payload = notification.MustReadPayload[map[string]any](n)
		sender = notification.MustReadSender[string](n)
	})

	require.NoError(t, rt.DoString(`notify.post("hello", { a = 1, list = {"x"} }, "script")`))

	assert.Equal(t, map[string]any{"a": int64(1), "list": []any{"x"}}, payload)
	assert.Equal(t, "script", sender)
}

func TestNotifyPostSenderWithoutPayload(t *testing.T) {
	rt, c := newTestRuntime(t)

	var got notification.Notification
	c.Subscribe("hello", func(n notification.Notification) { got = n })

	require.NoError(t, rt.DoString(`notify.post("hello", nil, "script")`))

	assert.False(t, got.HasPayload())
	sender, ok := notification.TryReadSender[string](got)
	require.True(t, ok)
	assert.Equal(t, "script", sender)
}

func TestNotifyOnce(t *testing.T) {
	rt, c := newTestRuntime(t)

	require.NoError(t, rt.DoString(`
		count = 0
		notify.once("tick", function() count = count + 1 end)
	`))

	c.Post("tick", nil, nil)
	c.Post("tick", nil, nil)

	assert.Equal(t, lua.LNumber(1), rt.State().GetGlobal("count"))
	assert.Equal(t, 0, rt.Module().Len())
	assert.Equal(t, 0, c.Channel("tick").Len())
}

func TestNotifyRemove(t *testing.T) {
	rt, c := newTestRuntime(t)

	require.NoError(t, rt.DoString(`
		count = 0
		local id = notify.observe("tick", function() count = count + 1 end)
		first = notify.remove(id)
		second = notify.remove(id)
		unknown = notify.remove("nope")
	`))

	c.Post("tick", nil, nil)

	assert.Equal(t, lua.LTrue, rt.State().GetGlobal("first"))
	assert.Equal(t, lua.LFalse, rt.State().GetGlobal("second"))
	assert.Equal(t, lua.LFalse, rt.State().GetGlobal("unknown"))
	assert.Equal(t, lua.LNumber(0), rt.State().GetGlobal("count"))
}

func TestNotifyNames(t *testing.T) {
	rt, c := newTestRuntime(t)
	c.Channel("b")
	c.Channel("a")

	require.NoError(t, rt.DoString(`names = notify.names()`))

	names := rt.State().GetGlobal("names").(*lua.LTable)
	assert.Equal(t, 2, names.Len())
	assert.Equal(t, lua.LString("a"), names.RawGetInt(1))
	assert.Equal(t, lua.LString("b"), names.RawGetInt(2))
}

func TestNotifyReentrant(t *testing.T) {
	rt, c := newTestRuntime(t)

	var order []string
	c.Subscribe("pong", func(notification.Notification) { order = append(order, "pong") })

	require.NoError(t, rt.DoString(`
		notify.observe("ping", function(n)
			notify.post("pong", n.payload)
		end)
		notify.post("ping", 1)
	`))
	c.Post("ping", nil, 2)

	assert.Equal(t, []string{"pong", "pong"}, order)
}

func TestNotifyObserverErrorLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	rt, c := newTestRuntime(t, WithLogger(zap.New(core)))

	calls := 0
	require.NoError(t, rt.DoString(`notify.observe("tick", function() error("broken") end)`))
	c.Subscribe("tick", func(notification.Notification) { calls++ })

	c.Post("tick", nil, nil)

	assert.Equal(t, 1, calls)
	entries := logs.FilterMessage("lua observer failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "tick", entries[0].ContextMap()["name"])
	assert.Equal(t, logging.ComponentLua, entries[0].ContextMap()["component"])
}

func TestRuntimeClose(t *testing.T) {
	c := notification.NewCenter()
	rt, err := NewRuntime(c)
	require.NoError(t, err)

	require.NoError(t, rt.DoString(`notify.observe("tick", function() end)`))
	require.Equal(t, 1, c.Channel("tick").Len())

	require.NoError(t, rt.Close())
	assert.Equal(t, 0, c.Channel("tick").Len())
	assert.Equal(t, 0, rt.Module().Len())
	assert.ErrorIs(t, rt.DoString(`x = 1`), ErrStateClosed)
}

func TestRuntimeLoadScripts(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.lua")
	second := filepath.Join(dir, "second.lua")
	broken := filepath.Join(dir, "broken.lua")
	require.NoError(t, os.WriteFile(first, []byte(`order = "first"`), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(`order = order .. ",second"`), 0o644))
	require.NoError(t, os.WriteFile(broken, []byte(`error("bad script")`), 0o644))

	rt, _ := newTestRuntime(t)
	require.NoError(t, rt.LoadScripts([]string{first, second}))
	assert.Equal(t, lua.LString("first,second"), rt.State().GetGlobal("order"))

	assert.Error(t, rt.LoadScripts([]string{broken, first}))
	assert.Equal(t, lua.LString("first,second"), rt.State().GetGlobal("order"))
}
