package types

import (
	"fmt"

	"github.com/wippyai/vm-abi/codec/internal/abi"
)

// Widths are the byte counts an encoder produces for a type, before the
// trailing padding a tuple or struct adds after each member.
//
// A type is sized either in member context (top-level argument, tuple or
// struct member, enum payload) or in element context (array element, vector
// payload element). Only U8 and Bool differ: a word in member context, a
// single byte in element context. In packed mode they are a single byte
// everywhere.

// RawWidth returns the number of bytes t occupies inline.
func (t *Type) RawWidth(packed, element bool) (uint64, error) {
	return newSizer(packed).raw(t, element, 0)
}

// MemberWidth is the raw member-context width rounded up to a word.
func (t *Type) MemberWidth(packed bool) (uint64, error) {
	return newSizer(packed).member(t, 0)
}

// Width is the payload width of an enum: the widest variant in member
// context, rounded to a word. Enums whose variants are all Unit have no payload.
func (v *EnumVariants) Width(packed bool) (uint64, error) {
	return newSizer(packed).enum(v, 0)
}

// PayloadPadding is the number of zero bytes written before the payload of
// variant disc so that every variant occupies the same width.
func (v *EnumVariants) PayloadPadding(disc uint64, packed bool) (uint64, error) {
	variant, ok := v.Variant(disc)
	if !ok {
		return 0, fmt.Errorf("discriminant %d out of range (%d variants)", disc, v.Len())
	}
	if v.OnlyUnits() {
		return 0, nil
	}
	sz := newSizer(packed)
	width, err := sz.enum(v, 0)
	if err != nil {
		return 0, err
	}
	raw, err := sz.raw(variant.Type, false, 0)
	if err != nil {
		return 0, err
	}
	return width - raw, nil
}

type sizeKey struct {
	t       *Type
	element bool
}

// sized is a memoised width together with the composite height of the
// subtree, so a shared subtree reached again deeper can still hit the depth limit.
type sized struct {
	width  uint64
	height int
}

// sizer computes widths for one mode. Descriptors may share subtrees, so
// every (type, context) pair is sized once per walk.
type sizer struct {
	memo   map[sizeKey]sized
	packed bool
}

func newSizer(packed bool) *sizer {
	return &sizer{packed: packed, memo: make(map[sizeKey]sized)}
}

func (s *sizer) member(t *Type, depth int) (uint64, error) {
	raw, err := s.raw(t, false, depth)
	if err != nil {
		return 0, err
	}
	aligned, ok := abi.AlignToWord(raw)
	if !ok {
		return 0, ErrWidthOverflow
	}
	return aligned, nil
}

func (s *sizer) enum(v *EnumVariants, depth int) (uint64, error) {
	if v.OnlyUnits() {
		return 0, nil
	}
	var widest uint64
	for _, f := range v.variants {
		w, err := s.member(f.Type, depth)
		if err != nil {
			return 0, err
		}
		widest = max(widest, w)
	}
	return widest, nil
}

func (s *sizer) raw(t *Type, element bool, depth int) (uint64, error) {
	if t == nil {
		return 0, fmt.Errorf("nil type descriptor")
	}
	k := sizeKey{t: t, element: element}
	if m, ok := s.memo[k]; ok {
		if depth+m.height > abi.MaxTypeDepth {
			return 0, ErrTooDeep
		}
		return m.width, nil
	}
	w, err := s.compute(t, element, depth)
	if err != nil {
		return 0, err
	}
	s.memo[k] = sized{width: w, height: s.height(t, element)}
	return w, nil
}

// height reads the children's memoised heights; it is only called once
// compute has sized every child of t.
func (s *sizer) height(t *Type, element bool) int {
	if !t.Kind.IsComposite() {
		return 0
	}
	var h int
	child := func(c *Type, element bool) {
		if m, ok := s.memo[sizeKey{t: c, element: element}]; ok {
			h = max(h, m.height)
		}
	}
	switch t.Kind {
	case KindArray:
		child(t.Elem, true)
	case KindTuple, KindStruct:
		for _, f := range t.Fields {
			child(f.Type, false)
		}
	case KindEnum:
		for _, f := range t.Variants.variants {
			child(f.Type, false)
		}
	}
	return h + 1
}

func (s *sizer) compute(t *Type, element bool, depth int) (uint64, error) {
	if t.Kind.IsComposite() {
		depth++
		if depth > abi.MaxTypeDepth {
			return 0, ErrTooDeep
		}
	}

	if t.Kind.IsByteSized() && (s.packed || element) {
		return 1, nil
	}

	switch t.Kind {
	case KindUnit, KindBool, KindU8, KindU16, KindU32, KindU64:
		return abi.WordSize, nil
	case KindU128:
		return 2 * abi.WordSize, nil
	case KindU256, KindB256:
		return 4 * abi.WordSize, nil
	case KindRawSlice, KindStringSlice:
		return 2 * abi.WordSize, nil
	case KindBytes, KindString, KindVector:
		return 3 * abi.WordSize, nil
	case KindStringArray:
		w, ok := abi.AlignToWord(t.Len)
		if !ok {
			return 0, ErrWidthOverflow
		}
		return w, nil
	case KindArray:
		elem, err := s.raw(t.Elem, true, depth)
		if err != nil {
			return 0, err
		}
		w, ok := abi.SafeMulU64(elem, t.Len)
		if !ok {
			return 0, ErrWidthOverflow
		}
		return w, nil
	case KindTuple, KindStruct:
		var total uint64
		for _, f := range t.Fields {
			w, err := s.member(f.Type, depth)
			if err != nil {
				return 0, err
			}
			var ok bool
			if total, ok = abi.SafeAddU64(total, w); !ok {
				return 0, ErrWidthOverflow
			}
		}
		return total, nil
	case KindEnum:
		w, err := s.enum(t.Variants, depth)
		if err != nil {
			return 0, err
		}
		total, ok := abi.SafeAddU64(abi.WordSize, w)
		if !ok {
			return 0, ErrWidthOverflow
		}
		return total, nil
	default:
		return 0, fmt.Errorf("unknown kind %d", t.Kind)
	}
}
