// Package host drives the notification center lifecycle.
//
// A Host owns the session-scoped and tooling-scoped centers. Start loads the
// tooling center and begins the first session; StartSession discards the
// session center and every observer on it; Shutdown tears everything down.
// Session transitions are announced on the tooling center so tooling
// observers, which outlive sessions, can follow them.
package host

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/notifycenter/internal/config"
	"github.com/dshills/notifycenter/internal/config/watcher"
	"github.com/dshills/notifycenter/internal/logging"
	"github.com/dshills/notifycenter/internal/notification"
)

// Lifecycle notification names, posted on the tooling center with the Host
// as sender.
const (
	// SessionStarted carries a SessionInfo payload.
	SessionStarted notification.Name = "session.started"

	// SessionEnded carries a SessionInfo payload.
	SessionEnded notification.Name = "session.ended"

	// ConfigReloaded carries the new *config.Config as payload.
	ConfigReloaded notification.Name = "config.reloaded"
)

// SessionInfo describes a session in lifecycle notifications.
type SessionInfo struct {
	// Number counts sessions started by the host, from 1.
	Number int

	// Center is the session-scoped center.
	Center *notification.Center
}

// SessionHook runs when a session starts. The returned release function, if
// any, runs when that session ends.
type SessionHook func(c *notification.Center) (release func(), err error)

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the host logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithScopes replaces the package-level session and tooling scopes.
func WithScopes(session, tooling *notification.Scope) Option {
	return func(h *Host) {
		h.session = session
		h.tooling = tooling
	}
}

// WithLoader sets the config loader used by Reload.
func WithLoader(l *config.Loader) Option {
	return func(h *Host) {
		h.loader = l
	}
}

// WithSessionHook adds a hook run at every session start.
func WithSessionHook(hook SessionHook) Option {
	return func(h *Host) {
		h.hooks = append(h.hooks, hook)
	}
}

// Host coordinates sessions, configuration, and teardown.
type Host struct {
	logger  *zap.Logger
	loader  *config.Loader
	session *notification.Scope
	tooling *notification.Scope
	hooks   []SessionHook

	mu       sync.Mutex
	cfg      *config.Config
	running  bool
	inSess   bool
	sessions int
	releases []func()
}

// New creates a host. A nil cfg uses config.Default.
func New(cfg *config.Config, opts ...Option) *Host {
	if cfg == nil {
		cfg = config.Default()
	}
	h := &Host{
		cfg:     cfg,
		logger:  zap.NewNop(),
		session: notification.SessionScope(),
		tooling: notification.ToolingScope(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.loader == nil {
		h.loader = config.NewLoader()
	}
	h.logger = logging.Component(h.logger, logging.ComponentHost)
	return h
}

// Config returns the active configuration.
func (h *Host) Config() *config.Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg
}

// OnSessionStart adds a hook run at every later session start.
func (h *Host) OnSessionStart(hook SessionHook) {
	h.mu.Lock()
	h.hooks = append(h.hooks, hook)
	h.mu.Unlock()
}

// Session returns the session-scoped center.
func (h *Host) Session() *notification.Center {
	return h.session.Center()
}

// Tooling returns the tooling-scoped center.
func (h *Host) Tooling() *notification.Center {
	return h.tooling.Center()
}

// Sessions returns the number of sessions started.
func (h *Host) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions
}

// Running reports whether the host has been started and not shut down.
func (h *Host) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// Start applies the configuration, creates the tooling center when
// configured, and begins the first session.
func (h *Host) Start() (*notification.Center, error) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	h.running = true
	cfg := h.cfg
	h.mu.Unlock()

	h.configureScopes(cfg)
	if cfg.Session.Tooling {
		h.tooling.Reset()
		h.logger.Debug("tooling center loaded")
	}

	c, err := h.StartSession()
	if err != nil {
		h.Shutdown()
		return nil, err
	}
	h.logger.Info("host started")
	return c, nil
}

// StartSession ends the current session, if any, and replaces the session
// center. Observers on the previous session center are discarded; the
// tooling center is untouched.
func (h *Host) StartSession() (*notification.Center, error) {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return nil, ErrNotRunning
	}
	h.mu.Unlock()

	h.endSession()

	c := h.session.Reset()

	h.mu.Lock()
	h.sessions++
	info := SessionInfo{Number: h.sessions, Center: c}
	hooks := append([]SessionHook(nil), h.hooks...)
	h.inSess = true
	h.mu.Unlock()

	var releases []func()
	var errs []error
	for _, hook := range hooks {
		release, err := hook(c)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if release != nil {
			releases = append(releases, release)
		}
	}

	h.mu.Lock()
	h.releases = releases
	h.mu.Unlock()

	if err := errors.Join(errs...); err != nil {
		return c, NewOperationError("start session", "", err)
	}

	h.logger.Info("session started", zap.Int("session", info.Number))
	h.Tooling().Post(SessionStarted, h, info)
	return c, nil
}

// endSession announces the end of the current session and runs the hook
// releases. The session center itself is cleared by the next Reset or by
// Shutdown.
func (h *Host) endSession() {
	h.mu.Lock()
	if !h.inSess {
		h.mu.Unlock()
		return
	}
	h.inSess = false
	releases := h.releases
	h.releases = nil
	info := SessionInfo{Number: h.sessions, Center: h.session.Center()}
	h.mu.Unlock()

	h.Tooling().Post(SessionEnded, h, info)

	// Release in reverse order of acquisition.
	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
	h.logger.Info("session ended", zap.Int("session", info.Number))
}

// Reload loads the configuration at path, applies it, and announces it on
// the tooling center. When session.reset_on_reload is set a new session is
// started. On error the previous configuration stays active.
func (h *Host) Reload(path string) error {
	cfg, err := h.loader.Load(path)
	if err != nil {
		h.logger.Error("config reload failed", zap.String("path", path), zap.Error(err))
		return NewOperationError("reload", path, err)
	}

	h.mu.Lock()
	h.cfg = cfg
	running := h.running
	h.mu.Unlock()

	h.configureScopes(cfg)
	h.logger.Info("config reloaded", zap.String("path", path))
	h.Tooling().Post(ConfigReloaded, h, cfg)

	if running && cfg.Session.ResetOnReload {
		if _, err := h.StartSession(); err != nil {
			return err
		}
	}
	return nil
}

// Watch reloads the configuration at path whenever it changes, until ctx is
// done. Reload failures are logged and do not stop the watch.
func (h *Host) Watch(ctx context.Context, path string) error {
	return h.WatchChanges(ctx, path, func() { _ = h.Reload(path) })
}

// WatchChanges calls changed from the watcher goroutine each time the file
// at path is written or recreated, until ctx is done. Callers that must
// reload on their own goroutine hand the change over and call Reload there.
func (h *Host) WatchChanges(ctx context.Context, path string, changed func()) error {
	cfg := h.Config()

	w, err := watcher.New(path,
		watcher.WithDebounce(cfg.Watch.Debounce.Std()),
		watcher.WithLogger(h.logger),
	)
	if err != nil {
		return NewOperationError("watch", path, err)
	}
	defer w.Close()

	h.logger.Info("watching config", zap.String("path", w.Path()))
	return w.Run(ctx, func(e watcher.Event) {
		if e.Op == watcher.OpRemove {
			h.logger.Warn("config file removed", zap.String("path", e.Path))
			return
		}
		changed()
	})
}

// Shutdown ends the session and clears every observer of both centers.
// The centers are forgotten, so a later Start begins from scratch.
func (h *Host) Shutdown() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	h.endSession()

	h.session.Release()
	h.tooling.Release()

	h.mu.Lock()
	h.running = false
	h.mu.Unlock()
	h.logger.Info("host stopped")
}

// configureScopes applies center options derived from cfg. They take
// effect when a scope next creates its center.
func (h *Host) configureScopes(cfg *config.Config) {
	opts := CenterOptions(cfg, h.logger)
	h.session.Configure(opts...)
	h.tooling.Configure(opts...)
}

// CenterOptions translates the [center] settings into center options.
func CenterOptions(cfg *config.Config, logger *zap.Logger) []notification.Option {
	opts := []notification.Option{
		notification.WithLogger(logger),
		notification.WithStats(cfg.Center.Stats),
	}
	if cfg.Center.Recover {
		opts = append(opts, notification.WithRecover(nil))
	}
	return opts
}
