package lua

import (
	"time"

	"go.uber.org/zap"

	"github.com/dshills/notifycenter/internal/logging"
	"github.com/dshills/notifycenter/internal/notification"
)

// Runtime runs scripts against one notification center.
type Runtime struct {
	state  *State
	module *Module
	logger *zap.Logger
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*runtimeConfig)

type runtimeConfig struct {
	logger  *zap.Logger
	timeout time.Duration
}

// WithLogger sets the logger for script diagnostics.
func WithLogger(l *zap.Logger) RuntimeOption {
	return func(c *runtimeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout sets the execution timeout for each script run.
func WithTimeout(d time.Duration) RuntimeOption {
	return func(c *runtimeConfig) {
		c.timeout = d
	}
}

// NewRuntime creates a Runtime whose notify module is bound to center.
func NewRuntime(center *notification.Center, opts ...RuntimeOption) (*Runtime, error) {
	cfg := runtimeConfig{
		logger:  zap.NewNop(),
		timeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	state, err := NewState(WithExecutionTimeout(cfg.timeout))
	if err != nil {
		return nil, err
	}

	logger := logging.Component(cfg.logger, logging.ComponentLua)
	module := NewModule(state, center, logger)
	module.Register()

	return &Runtime{
		state:  state,
		module: module,
		logger: logger,
	}, nil
}

// LoadScripts runs each script in order and stops at the first failure.
func (r *Runtime) LoadScripts(paths []string) error {
	for _, path := range paths {
		if err := r.DoFile(path); err != nil {
			return err
		}
	}
	return nil
}

// DoFile runs a script file.
func (r *Runtime) DoFile(path string) error {
	if err := r.state.DoFile(path); err != nil {
		r.logger.Error("script failed", zap.String("script", path), zap.Error(err))
		return err
	}
	r.logger.Debug("script loaded", zap.String("script", path))
	return nil
}

// DoString runs a chunk of Lua code.
func (r *Runtime) DoString(code string) error {
	return r.state.DoString(code)
}

// Module returns the notify module.
func (r *Runtime) Module() *Module {
	return r.module
}

// State returns the underlying state.
func (r *Runtime) State() *State {
	return r.state
}

// Close removes every script subscription and releases the Lua state.
func (r *Runtime) Close() error {
	r.module.Close()
	return r.state.Close()
}
