package notification

import "go.uber.org/zap"

// PanicHandler is called when a recovered observer panics.
// The stack is captured at the point of recovery.
type PanicHandler func(n Notification, recovered any, stack []byte)

// Option configures a Center.
type Option func(*centerConfig)

type centerConfig struct {
	label        string
	logger       *zap.Logger
	recover      bool
	panicHandler PanicHandler
	stats        bool
}

func defaultCenterConfig() centerConfig {
	return centerConfig{
		logger: zap.NewNop(),
		stats:  true,
	}
}

// WithLogger sets the logger used for diagnostics.
// A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *centerConfig) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
}

// WithLabel names the center in log output.
func WithLabel(label string) Option {
	return func(c *centerConfig) {
		c.label = label
	}
}

// WithRecover isolates each observer invocation. A panicking observer is
// recovered and reported to h, and delivery continues with the next
// observer. A nil h logs the panic at error level.
//
// Without this option a panic aborts delivery to later observers and
// propagates to the caller of Post.
func WithRecover(h PanicHandler) Option {
	return func(c *centerConfig) {
		c.recover = true
		c.panicHandler = h
	}
}

// WithStats enables or disables post counters. Enabled by default.
func WithStats(enabled bool) Option {
	return func(c *centerConfig) {
		c.stats = enabled
	}
}
