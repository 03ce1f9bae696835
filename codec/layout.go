package codec

import (
	"github.com/wippyai/vm-abi/codec/internal/abi"
)

// Segment is one piece of an UnresolvedLayout: either inline bytes, or a
// dynamic payload that is referenced by a one-word pointer inline.
type Segment struct {
	Dynamic *UnresolvedLayout
	Inline  []byte
}

func (s Segment) IsDynamic() bool { return s.Dynamic != nil }

// InlineSize is the number of bytes the segment occupies in its parent.
func (s Segment) InlineSize() uint64 {
	if s.Dynamic != nil {
		return abi.WordSize
	}
	return uint64(len(s.Inline))
}

// UnresolvedLayout is encoder output whose heap pointers are not yet known.
type UnresolvedLayout struct {
	Segments []Segment
}

// InlineSize sums the inline size of every segment.
func (l *UnresolvedLayout) InlineSize() uint64 {
	var n uint64
	for _, s := range l.Segments {
		n += s.InlineSize()
	}
	return n
}

func (l *UnresolvedLayout) appendInline(b ...byte) {
	if n := len(l.Segments); n > 0 && l.Segments[n-1].Dynamic == nil {
		l.Segments[n-1].Inline = append(l.Segments[n-1].Inline, b...)
		return
	}
	l.Segments = append(l.Segments, Segment{Inline: append([]byte(nil), b...)})
}

func (l *UnresolvedLayout) appendZeros(n uint64) {
	if n == 0 {
		return
	}
	l.appendInline(make([]byte, n)...)
}

func (l *UnresolvedLayout) appendWord(v uint64) {
	var w [abi.WordSize]byte
	putWord(w[:], v)
	l.appendInline(w[:]...)
}

func (l *UnresolvedLayout) appendDynamic(d *UnresolvedLayout) {
	l.Segments = append(l.Segments, Segment{Dynamic: d})
}
