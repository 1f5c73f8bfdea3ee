package notification

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/notifycenter/internal/logging"
	"github.com/dshills/notifycenter/internal/notification/dispatch"
)

// Center maps Names to Channels, creating channels on first use.
//
// A Center never holds two channels for the same Name. Separate Centers are
// fully independent: a notification posted on one is never seen by
// observers of another, even under an equal Name.
//
// Center is safe for concurrent use. No lock is held while observers run,
// so observers may post, subscribe, and unsubscribe re-entrantly.
type Center struct {
	config     centerConfig
	logger     *zap.Logger
	dispatcher *dispatch.Dispatcher[Notification]

	mu       sync.Mutex
	channels map[Name]*Channel

	posted atomic.Uint64
}

// Stats contains center statistics.
type Stats struct {
	// Posted is the number of notifications posted.
	Posted uint64

	// Delivered is the number of observer invocations that returned normally.
	Delivered uint64

	// Panics is the number of observer panics recovered.
	Panics uint64

	// AvgDelivery is the average observer invocation time.
	AvgDelivery time.Duration

	// Channels is the number of channels currently mapped.
	Channels int

	// Subscribers is the number of registrations across all channels.
	Subscribers int
}

// NewCenter creates an empty center.
func NewCenter(opts ...Option) *Center {
	cfg := defaultCenterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := logging.Component(cfg.logger, logging.ComponentCenter)
	if cfg.label != "" {
		logger = logger.With(zap.String("center", cfg.label))
	}

	c := &Center{
		config:   cfg,
		logger:   logger,
		channels: make(map[Name]*Channel),
	}

	var dopts []dispatch.Option[Notification]
	if cfg.recover {
		handler := cfg.panicHandler
		if handler == nil {
			handler = c.logPanic
		}
		dopts = append(dopts, dispatch.WithIsolation(dispatch.PanicHandler[Notification](handler)))
	}
	c.dispatcher = dispatch.NewDispatcher(dopts...)
	c.logger.Debug("center created", zap.Stringer("dispatch", c.dispatcher.Mode()))

	return c
}

// Label returns the label set with WithLabel.
func (c *Center) Label() string {
	return c.config.label
}

// Channel returns the channel for name, creating it if absent.
func (c *Center) Channel(name Name) *Channel {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ch, ok := c.channels[name]; ok {
		return ch
	}

	ch := newChannel(name, c.dispatcher)
	c.channels[name] = ch
	c.logger.Debug("channel created", zap.String("name", string(name)))
	return ch
}

// Post builds a notification and delivers it on the channel for name.
// A nil sender or payload is treated as absent.
func (c *Center) Post(name Name, sender, payload any) {
	c.PostNotification(NewWithPayload(name, sender, payload))
}

// PostNotification delivers n on the channel for n.Name().
func (c *Center) PostNotification(n Notification) {
	if c.config.stats {
		c.posted.Add(1)
	}
	c.Channel(n.Name()).Post(n)
}

// Subscribe registers cb on the channel for name.
func (c *Center) Subscribe(name Name, cb Callback) *Subscription {
	return c.Channel(name).Subscribe(cb)
}

// SubscribeOnce registers cb on the channel for name for a single delivery.
func (c *Center) SubscribeOnce(name Name, cb Callback) *Subscription {
	return c.Channel(name).SubscribeOnce(cb)
}

// AddObserver registers o on the channel for name.
func (c *Center) AddObserver(name Name, o Observer) *Subscription {
	return c.Channel(name).AddObserver(o)
}

// Unsubscribe removes sub from the channel for name.
// Returns false if sub is not registered there.
func (c *Center) Unsubscribe(name Name, sub *Subscription) bool {
	return c.Channel(name).Unsubscribe(sub)
}

// RemoveObserver removes the earliest registration of o from the channel
// for name.
func (c *Center) RemoveObserver(name Name, o Observer) bool {
	return c.Channel(name).RemoveObserver(o)
}

// Clear empties every channel and drops the name mapping.
// Channels obtained before Clear stay usable but are no longer reachable
// through the center.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range c.channels {
		ch.Clear()
	}
	n := len(c.channels)
	c.channels = make(map[Name]*Channel)
	c.logger.Debug("center cleared", zap.Int("channels", n))
}

// Names returns the mapped names in sorted order.
func (c *Center) Names() []Name {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]Name, 0, len(c.channels))
	for name := range c.channels {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of mapped channels.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.channels)
}

// Stats returns center statistics.
func (c *Center) Stats() Stats {
	c.mu.Lock()
	channels := make([]*Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		channels = append(channels, ch)
	}
	c.mu.Unlock()

	s := Stats{Channels: len(channels)}
	for _, ch := range channels {
		s.Subscribers += ch.Len()
	}
	if !c.config.stats {
		return s
	}

	ds := c.dispatcher.Stats()
	s.Posted = c.posted.Load()
	s.Delivered = ds.Succeeded
	s.Panics = ds.Panicked
	s.AvgDelivery = ds.AvgDuration
	return s
}

// ResetStats resets the post counters.
func (c *Center) ResetStats() {
	c.posted.Store(0)
	c.dispatcher.ResetStats()
}

func (c *Center) logPanic(n Notification, recovered any, stack []byte) {
	c.logger.Error("observer panicked",
		zap.String("name", string(n.Name())),
		zap.Stringer("notification", n),
		zap.Any("panic", recovered),
		zap.ByteString("stack", stack),
	)
}
