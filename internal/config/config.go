package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/dshills/notifycenter/internal/config/loader"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "NOTIFYCENTER_"

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config is the host configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Center  CenterConfig  `toml:"center" yaml:"center"`
	Session SessionConfig `toml:"session" yaml:"session"`
	Watch   WatchConfig   `toml:"watch" yaml:"watch"`
	Plugins PluginsConfig `toml:"plugins" yaml:"plugins"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// Format is "console" or "json".
	Format string `toml:"format" yaml:"format"`
}

// CenterConfig configures the notification centers.
type CenterConfig struct {
	// Recover isolates observer panics instead of propagating them.
	Recover bool `toml:"recover" yaml:"recover"`
	// Stats enables delivery counters.
	Stats bool `toml:"stats" yaml:"stats"`
}

// SessionConfig configures the session lifecycle.
type SessionConfig struct {
	// Tooling creates the tooling center when the host starts.
	Tooling bool `toml:"tooling" yaml:"tooling"`
	// ResetOnReload starts a new session when the config file changes.
	ResetOnReload bool `toml:"reset_on_reload" yaml:"reset_on_reload"`
}

// WatchConfig configures config file watching.
type WatchConfig struct {
	Enabled  bool     `toml:"enabled" yaml:"enabled"`
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// PluginsConfig lists Lua scripts loaded into each session.
type PluginsConfig struct {
	Scripts []string `toml:"scripts" yaml:"scripts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: FormatConsole,
		},
		Center: CenterConfig{
			Stats: true,
		},
		Session: SessionConfig{
			Tooling:       true,
			ResetOnReload: true,
		},
		Watch: WatchConfig{
			Debounce: Duration(100 * time.Millisecond),
		},
	}
}

// Option configures a Loader.
type Option func(*Loader)

// WithFileSystem sets the file system config files are read from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(l *Loader) {
		l.files = loader.NewFileLoaderWithFS(fsys)
	}
}

// WithEnvLookup sets the function environment overrides are read through.
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(l *Loader) {
		l.env = loader.NewEnvLoaderWithLookup(EnvPrefix, lookup)
	}
}

// Loader resolves a Config from defaults, a file, and the environment.
type Loader struct {
	files *loader.FileLoader
	env   *loader.EnvLoader
}

// NewLoader creates a Loader reading the OS file system and environment.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		files: loader.NewFileLoader(),
		env:   loader.NewEnvLoader(EnvPrefix),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves the configuration. An empty path skips the file layer.
// The result is validated.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := l.files.LoadInto(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(l.env.Load()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load resolves the configuration using the OS file system and environment.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// ApplyEnv applies overrides keyed by dotted setting path.
func (c *Config) ApplyEnv(values map[string]string) error {
	// Apply in sorted order so errors are deterministic.
	paths := make([]string, 0, len(values))
	for p := range values {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	for _, path := range paths {
		if err := c.set(path, values[path]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) set(path, raw string) error {
	switch path {
	case "logging.level":
		c.Logging.Level = raw
	case "logging.format":
		c.Logging.Format = raw
	case "center.recover":
		return setBool(&c.Center.Recover, path, raw)
	case "center.stats":
		return setBool(&c.Center.Stats, path, raw)
	case "session.tooling":
		return setBool(&c.Session.Tooling, path, raw)
	case "session.reset_on_reload":
		return setBool(&c.Session.ResetOnReload, path, raw)
	case "watch.enabled":
		return setBool(&c.Watch.Enabled, path, raw)
	case "watch.debounce":
		d, err := ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		c.Watch.Debounce = Duration(d)
	default:
		return &ValidationError{Path: path, Value: raw, Message: "unknown setting"}
	}
	return nil
}

func setBool(dst *bool, path, raw string) error {
	switch strings.ToLower(raw) {
	case "yes", "on":
		*dst = true
		return nil
	case "no", "off":
		*dst = false
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return &ValidationError{Path: path, Value: raw, Message: "expected a boolean"}
	}
	*dst = v
	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "unknown log level"}
	}

	switch c.Logging.Format {
	case FormatConsole, FormatJSON:
	default:
		return &ValidationError{Path: "logging.format", Value: c.Logging.Format, Message: `expected "console" or "json"`}
	}

	if c.Watch.Debounce < 0 {
		return &ValidationError{Path: "watch.debounce", Value: c.Watch.Debounce, Message: "must be >= 0"}
	}

	for i, script := range c.Plugins.Scripts {
		if strings.TrimSpace(script) == "" {
			return &ValidationError{Path: fmt.Sprintf("plugins.scripts[%d]", i), Value: script, Message: "empty script path"}
		}
	}
	return nil
}

// Level returns the parsed log level. Call after Validate.
func (c *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
