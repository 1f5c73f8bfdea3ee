package lua

import (
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/notifycenter/internal/notification"
)

// ModuleName is the global name of the notify module.
const ModuleName = "notify"

// Module implements the notify API module.
type Module struct {
	state  *State
	bridge *Bridge
	center *notification.Center
	logger *zap.Logger

	// Track subscriptions for cleanup
	mu   sync.Mutex
	subs map[string]*notification.Subscription
}

// NewModule creates a notify module bound to center.
func NewModule(state *State, center *notification.Center, logger *zap.Logger) *Module {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Module{
		state:  state,
		bridge: NewBridge(state.L),
		center: center,
		logger: logger,
		subs:   make(map[string]*notification.Subscription),
	}
}

// Register installs the module as a global table.
func (m *Module) Register() {
	m.state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"post":    m.post,
		"observe": m.observe,
		"once":    m.once,
		"remove":  m.remove,
		"names":   m.names,
	})
}

// Center returns the center the module posts to.
func (m *Module) Center() *notification.Center {
	return m.center
}

// Len returns the number of live script subscriptions.
func (m *Module) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// Close removes every subscription made by scripts.
func (m *Module) Close() {
	m.mu.Lock()
	subs := m.subs
	m.subs = make(map[string]*notification.Subscription)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}

// post(name, payload?, sender?)
// Posts a notification. Payload precedes sender, unlike Center.Post.
// Absent or nil arguments are absent fields.
func (m *Module) post(L *lua.LState) int {
	name := L.CheckString(1)
	payload := m.bridge.ToGoValue(L.Get(2))
	sender := m.bridge.ToGoValue(L.Get(3))

	m.center.Post(notification.Name(name), sender, payload)
	return 0
}

// observe(name, fn) -> subscriptionID
// Subscribes fn. fn receives a table with name, sender, and payload.
func (m *Module) observe(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	sub := m.center.Subscribe(notification.Name(name), m.callback(fn, nil))
	m.track(sub)

	L.Push(lua.LString(sub.ID()))
	return 1
}

// once(name, fn) -> subscriptionID
// Subscribes fn for a single notification.
func (m *Module) once(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	var sub *notification.Subscription
	sub = m.center.SubscribeOnce(notification.Name(name), m.callback(fn, func() {
		m.forget(sub.ID())
	}))
	m.track(sub)

	L.Push(lua.LString(sub.ID()))
	return 1
}

// remove(subscriptionID) -> bool
// Returns true if the subscription existed.
func (m *Module) remove(L *lua.LState) int {
	id := L.CheckString(1)

	sub := m.forget(id)
	if sub == nil {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(sub.Cancel()))
	return 1
}

// names() -> {name, ...}
// Returns the sorted channel names of the center.
func (m *Module) names(L *lua.LState) int {
	names := m.center.Names()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	L.Push(m.bridge.ToLuaValue(out))
	return 1
}

// callback creates a Go observer that invokes a Lua function. after, if
// set, runs before the function is invoked.
func (m *Module) callback(fn *lua.LFunction, after func()) notification.Callback {
	return func(n notification.Notification) {
		if after != nil {
			after()
		}
		if m.state.IsClosed() {
			return
		}
		if _, err := m.state.Call(fn, m.bridge.NotificationTable(n)); err != nil {
			m.logger.Error("lua observer failed",
				zap.String("name", string(n.Name())),
				zap.Error(err),
			)
		}
	}
}

func (m *Module) track(sub *notification.Subscription) {
	if !sub.Active() {
		return
	}
	m.mu.Lock()
	m.subs[sub.ID()] = sub
	m.mu.Unlock()
}

func (m *Module) forget(id string) *notification.Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.subs[id]
	if !ok {
		return nil
	}
	delete(m.subs, id)
	return sub
}
