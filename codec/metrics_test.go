package codec

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	enc := NewEncoder(DefaultConfig(), WithMetrics(m))
	dec := NewDecoder(DefaultConfig(), WithMetrics(m))

	data, err := enc.Encode(U64(1), Bytes{1})
	require.NoError(t, err)
	_, err = enc.Encode(String("\xff"))
	require.Error(t, err)
	_, err = dec.Decode(TypeU64, data)
	require.NoError(t, err)
	_, err = dec.Decode(TypeU64, nil)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("encode", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("encode", "invalid_text")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("decode", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("decode", "insufficient_bytes")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.size, "vmabi_codec_bytes"))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe("encode", 1, nil) })

	_, err := NewEncoder(DefaultConfig(), WithMetrics(nil)).Encode(U8(1))
	assert.NoError(t, err)
}

func TestMetricsUnregistered(t *testing.T) {
	m := NewMetrics(nil)
	_, err := NewEncoder(DefaultConfig(), WithMetrics(m)).EncodePacked(U8(1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("encode_packed", "ok")))
}
