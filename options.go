package scouter

import "log/slog"

// Option configures a Controller at construction.
type Option func(c *Controller)

// WithConfig replaces DefaultConfig. The config is validated by New.
func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		c.cfg = cfg
	}
}

// WithBaseMillis sets the initial base instead of the scheduler's current time.
func WithBaseMillis(ms int64) Option {
	return func(c *Controller) {
		c.baseMillis = ms
		c.baseSet = true
	}
}

// WithListener installs a ChangeListener before the construction render, so it
// observes that render too.
func WithListener(l ChangeListener) Option {
	return func(c *Controller) {
		c.listener = l
	}
}

// WithLogger configures the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics configures the metrics collector. The default is NopMetrics.
func WithMetrics(m Metrics) Option {
	return func(c *Controller) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSessionIDs overrides how run-session IDs are minted (uuid.NewString by default).
func WithSessionIDs(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newSession = fn
		}
	}
}
