package loader

import (
	"os"
	"sort"
	"strings"
)

// EnvLoader reads configuration overrides from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "NOTIFYCENTER_")
	mapping map[string]string // Env var suffix -> config path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "NOTIFYCENTER_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		lookup:  os.LookupEnv,
	}
}

// NewEnvLoaderWithLookup creates a loader that reads variables through
// lookup instead of the process environment.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.lookup = lookup
	return l
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"LOG_LEVEL":      "logging.level",
		"LOG_FORMAT":     "logging.format",
		"RECOVER":        "center.recover",
		"STATS":          "center.stats",
		"TOOLING":        "session.tooling",
		"WATCH":          "watch.enabled",
		"WATCH_DEBOUNCE": "watch.debounce",
	}
}

// AddMapping adds a custom environment variable mapping.
// The variable name is given without the prefix.
func (l *EnvLoader) AddMapping(suffix, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[suffix] = configPath
}

// RemoveMapping removes an environment variable mapping.
func (l *EnvLoader) RemoveMapping(suffix string) {
	delete(l.mapping, suffix)
}

// Variables returns the full names of the mapped variables in sorted order.
func (l *EnvLoader) Variables() []string {
	names := make([]string, 0, len(l.mapping))
	for suffix := range l.mapping {
		names = append(names, l.prefix+suffix)
	}
	sort.Strings(names)
	return names
}

// Load returns config path -> raw value for every mapped variable that is
// set. Empty values are treated as set.
func (l *EnvLoader) Load() map[string]string {
	out := make(map[string]string)
	for suffix, path := range l.mapping {
		if val, ok := l.lookup(l.prefix + suffix); ok {
			out[path] = strings.TrimSpace(val)
		}
	}
	return out
}
