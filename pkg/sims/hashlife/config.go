package hashlife

import (
	"log/slog"
	"strconv"
)

// Config controls node storage and collection for a Universe.
type Config struct {
	// TableLog2 is log2 of the initial node table size.
	TableLog2 uint8
	// GCThreshold is the node count above which Step collects garbage.
	// Zero disables automatic collection.
	GCThreshold int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		TableLog2:   16,
		GCThreshold: 1 << 22,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["table_log2"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed < 40 {
			c.TableLog2 = uint8(parsed)
		}
	}
	if v, ok := cfg["gc_threshold"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.GCThreshold = parsed
		}
	}
	return c
}

// Option customizes a Universe at construction.
type Option func(*options)

type options struct {
	cfg Config
	log *slog.Logger
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithTableLog2 sets log2 of the initial node table size.
func WithTableLog2(n uint8) Option {
	return func(o *options) { o.cfg.TableLog2 = n }
}

// WithGCThreshold sets the node count above which Step collects garbage.
func WithGCThreshold(n int) Option {
	return func(o *options) { o.cfg.GCThreshold = n }
}

// WithLogger sets the logger used for growth and collection events.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

func newOptions(opts []Option) options {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.Default().With("system", "hashlife")
	}
	return o
}
