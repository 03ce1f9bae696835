package codec

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wippyai/vm-abi/errors"
)

// Metrics records codec operations. A nil *Metrics is valid and records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	size       *prometheus.HistogramVec
}

// NewMetrics registers the codec collectors with reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "vmabi",
				Subsystem: "codec",
				Name:      "operations_total",
				Help:      "Total number of encode and decode calls by outcome.",
			},
			[]string{"op", "result"},
		),
		size: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "vmabi",
				Subsystem: "codec",
				Name:      "bytes",
				Help:      "Size in bytes of encoded output or decoded input.",
				Buckets:   prometheus.ExponentialBuckets(8, 4, 10),
			},
			[]string{"op"},
		),
	}
}

func (m *Metrics) observe(op string, n int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		result := string(errors.KindOf(err))
		if result == "" {
			result = "error"
		}
		m.operations.WithLabelValues(op, result).Inc()
		return
	}
	m.operations.WithLabelValues(op, "ok").Inc()
	m.size.WithLabelValues(op).Observe(float64(n))
}
