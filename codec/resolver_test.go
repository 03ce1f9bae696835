package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/vm-abi/errors"
)

func TestResolveNestedPayloads(t *testing.T) {
	inner := &UnresolvedLayout{}
	inner.appendInline(1, 2, 3)

	mid := &UnresolvedLayout{}
	mid.appendWord(7)
	mid.appendDynamic(inner)

	top := &UnresolvedLayout{}
	top.appendDynamic(mid)
	top.appendWord(5)

	got, err := top.Resolve(0)
	require.NoError(t, err)
	assert.Equal(t, join(
		word(16), word(5),
		word(7), word(32),
		padded(1, 2, 3),
	), got)
}

func TestResolveOrdersPayloadsBySegment(t *testing.T) {
	a := &UnresolvedLayout{}
	a.appendInline(0xa)
	b := &UnresolvedLayout{}
	b.appendInline(0xb, 0xb)

	top := &UnresolvedLayout{}
	top.appendDynamic(a)
	top.appendDynamic(b)

	got, err := top.Resolve(8)
	require.NoError(t, err)
	assert.Equal(t, join(word(24), word(32), padded(0xa), padded(0xb, 0xb)), got)
}

func TestResolveEmptyPayload(t *testing.T) {
	top := &UnresolvedLayout{}
	top.appendDynamic(&UnresolvedLayout{})
	top.appendDynamic(&UnresolvedLayout{})

	got, err := top.Resolve(0)
	require.NoError(t, err)
	assert.Equal(t, join(word(16), word(16)), got)
}

func TestResolveOverflow(t *testing.T) {
	_, err := NewEncoder(DefaultConfig()).EncodeAt(math.MaxUint64-10, Bytes{1})
	requireKind(t, err, errors.KindOverflow)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.PhaseResolve, e.Phase)
}

func TestResolveOverflowInPayload(t *testing.T) {
	_, err := NewEncoder(DefaultConfig()).EncodeAt(math.MaxUint64-40, Vector{Bytes{1}})
	requireKind(t, err, errors.KindOverflow)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"segment[0]"}, e.Path)
}

func TestResolveScalarsAtAnyBase(t *testing.T) {
	got, err := NewEncoder(DefaultConfig()).EncodeAt(math.MaxUint64-16, U64(1))
	require.NoError(t, err)
	assert.Equal(t, word(1), got)
}
