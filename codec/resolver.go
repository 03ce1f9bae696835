package codec

import (
	"encoding/binary"
	"strconv"

	"github.com/wippyai/vm-abi/codec/internal/abi"
	"github.com/wippyai/vm-abi/errors"
)

func putWord(b []byte, v uint64) {
	binary.BigEndian.PutUint64(b, v)
}

// Resolve flattens l into bytes that start at absolute offset base. Inline
// data comes first; each dynamic payload follows, padded to a word, in
// segment order, and its inline pointer is patched to its absolute offset.
func (l *UnresolvedLayout) Resolve(base uint64) ([]byte, error) {
	tail := getBuf()
	defer putBuf(tail)

	inline, err := l.resolve(base, tail, 0)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(inline)+len(*tail))
	copy(out, inline)
	copy(out[len(inline):], *tail)
	return out, nil
}

// resolve returns the inline bytes of l and appends its payloads to tail.
func (l *UnresolvedLayout) resolve(base uint64, tail *[]byte, depth int) ([]byte, error) {
	if depth > abi.MaxTypeDepth {
		return nil, errors.New(errors.PhaseResolve, errors.KindDepthExceeded).
			Detail("dynamic payloads nested deeper than %d", abi.MaxTypeDepth).
			Build()
	}

	size := l.InlineSize()
	next, ok := abi.SafeAddU64(base, size)
	if !ok {
		return nil, overflowAt(base, size)
	}

	inline := make([]byte, 0, size)
	for i, seg := range l.Segments {
		if seg.Dynamic == nil {
			inline = append(inline, seg.Inline...)
			continue
		}

		nested := getBuf()
		payload, err := seg.Dynamic.resolve(next, nested, depth+1)
		if err != nil {
			putBuf(nested)
			return nil, wrapSegment(err, i)
		}

		var ptr [abi.WordSize]byte
		putWord(ptr[:], next)
		inline = append(inline, ptr[:]...)

		before := len(*tail)
		*tail = append(*tail, payload...)
		*tail = append(*tail, *nested...)
		putBuf(nested)
		*tail = append(*tail, make([]byte, abi.WordPadding(uint64(len(*tail)-before)))...)

		written := uint64(len(*tail) - before)
		if next, ok = abi.SafeAddU64(next, written); !ok {
			return nil, overflowAt(next, written)
		}
	}
	return inline, nil
}

func overflowAt(offset, size uint64) error {
	return errors.New(errors.PhaseResolve, errors.KindOverflow).
		Detail("offset %d + %d overflows u64", offset, size).
		Build()
}

func wrapSegment(err error, i int) error {
	if e, ok := err.(*errors.Error); ok {
		e.Path = append([]string{"segment[" + strconv.Itoa(i) + "]"}, e.Path...)
		return e
	}
	return err
}
