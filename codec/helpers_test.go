package codec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/vm-abi/errors"
)

func word(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

func join(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// padded right-pads b with zeros to a whole word.
func padded(b ...byte) []byte {
	out := append([]byte(nil), b...)
	for len(out)%8 != 0 {
		out = append(out, 0)
	}
	return out
}

func requireKind(t *testing.T, err error, kind errors.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errors.IsKind(err, kind), "expected %s, got %v", kind, err)
}

func limits(depth, tokens, enumWidth uint64) Config {
	return Config{MaxDepth: depth, MaxTokens: tokens, MaxTotalEnumWidth: enumWidth}
}

// nested wraps U64 in n single-member tuples.
func nested(n int) (*Type, Value) {
	var t = TypeU64
	var v Value = U64(1)
	for range n {
		t = NewTuple(t)
		v = Tuple{v}
	}
	return t, v
}
