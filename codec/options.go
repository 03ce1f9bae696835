package codec

import (
	"github.com/wippyai/vm-abi/codec/internal/layout"
)

type options struct {
	metrics   *Metrics
	calc      *layout.Calculator
	cacheSize int
	base      uint64
}

// Option configures an Encoder or Decoder.
type Option func(*options)

// WithMetrics attaches a metrics recorder.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithCacheSize sets the number of descriptor widths kept in the LRU cache.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithBase sets the absolute offset at which the encoded buffer starts.
// Pointers to dynamic payloads are written and read relative to it.
func WithBase(base uint64) Option {
	return func(o *options) { o.base = base }
}

func buildOptions(opts []Option) options {
	o := options{cacheSize: layout.DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.calc == nil {
		o.calc = layout.NewCalculator(o.cacheSize)
	}
	return o
}
