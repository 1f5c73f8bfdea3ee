// Package lua lets Lua scripts observe and post notifications.
//
// This package wraps the gopher-lua library to provide:
//   - Sandboxed Lua state management
//   - Go-Lua type conversion bridge
//   - A "notify" module bound to a notification center
//
// # Runtime
//
// A Runtime owns one State and one notify module:
//
//	rt, err := lua.NewRuntime(center, lua.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	if err := rt.LoadScripts([]string{"hooks.lua"}); err != nil {
//	    return err
//	}
//
// # The notify module
//
//	local id = notify.observe("session.started", function(n)
//	    print(n.name, n.sender, n.payload)
//	end)
//	notify.once("config.reloaded", function(n) end)
//	notify.post("score.changed", { points = 10 })
//	notify.remove(id)
//
// notify.post takes (name, payload, sender). The payload comes before the
// sender, the reverse of Center.Post, since scripts usually post a payload
// with no sender. Both are optional.
//
// Observers receive a table with name, sender, and payload fields; absent
// fields are nil. Lua errors raised inside an observer are logged and do
// not reach the poster.
//
// # Sandbox
//
// Only the base, table, string, and math libraries are opened. dofile,
// loadfile, load, and loadstring are removed. An execution timeout bounds
// every top-level script run.
//
// IMPORTANT: gopher-lua's LState is not goroutine-safe. Notifications that
// reach Lua observers must be posted from the goroutine that owns the
// Runtime.
package lua
