// Package config provides host configuration for notifycenter.
//
// Configuration is resolved in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← NOTIFYCENTER_*, highest priority
//	├─────────────────────────────┤
//	│  2. Config File             │  ← notifycenter.toml / .yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A missing config file is not an error; defaults apply.
//
// # Sub-packages
//
//   - loader: file decoding (TOML, YAML) and environment variables
//   - watcher: file change notification for live reload
//
// # Example
//
//	[logging]
//	level = "debug"
//	format = "console"
//
//	[center]
//	recover = true
//
//	[watch]
//	enabled = true
//	debounce = "250ms"
//
//	[plugins]
//	scripts = ["hooks/audit.lua"]
package config
