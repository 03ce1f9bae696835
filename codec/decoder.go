package codec

import (
	"encoding/binary"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/wippyai/vm-abi/codec/internal/abi"
	"github.com/wippyai/vm-abi/codec/internal/layout"
	"github.com/wippyai/vm-abi/errors"
)

// Decoder reads Values back out of the VM's byte layout. Decoded values
// never alias the input buffer. A Decoder may be shared between goroutines.
type Decoder struct {
	opts options
	cfg  Config
}

func NewDecoder(cfg Config, opts ...Option) *Decoder {
	return &Decoder{cfg: cfg, opts: buildOptions(opts)}
}

func (d *Decoder) Decode(t *Type, data []byte) (Value, error) {
	v, _, err := d.DecodeWithSize(t, data)
	return v, err
}

// DecodeWithSize also returns the number of inline bytes the value occupies,
// including the padding to the next word. Dynamic payloads are not counted.
func (d *Decoder) DecodeWithSize(t *Type, data []byte) (Value, uint64, error) {
	vals, size, err := d.decodeArgs([]*Type{t}, data, false)
	d.opts.metrics.observe("decode", len(data), err)
	logResult("decode", err, zap.Stringer("type", typeName{t}), zap.Int("bytes", len(data)), zap.Uint64("inline", size))
	if err != nil {
		return nil, 0, err
	}
	return vals[0], size, nil
}

// DecodeMultiple decodes consecutive word-padded arguments.
func (d *Decoder) DecodeMultiple(types []*Type, data []byte) ([]Value, error) {
	vals, size, err := d.decodeArgs(types, data, false)
	d.opts.metrics.observe("decode", len(data), err)
	logResult("decode", err, zap.Int("types", len(types)), zap.Int("bytes", len(data)), zap.Uint64("inline", size))
	return vals, err
}

// DecodePacked is the inverse of EncodePacked.
func (d *Decoder) DecodePacked(t *Type, data []byte) (Value, error) {
	vals, _, err := d.decodeArgs([]*Type{t}, data, true)
	d.opts.metrics.observe("decode_packed", len(data), err)
	logResult("decode packed", err, zap.Stringer("type", typeName{t}), zap.Int("bytes", len(data)))
	if err != nil {
		return nil, err
	}
	return vals[0], nil
}

func (d *Decoder) decodeArgs(types []*Type, data []byte, packed bool) ([]Value, uint64, error) {
	if err := d.cfg.Validate(); err != nil {
		return nil, 0, err
	}
	s := &decodeState{
		data:   data,
		budget: uint64(len(data)),
		lim:    NewLimiter(d.cfg, errors.PhaseDecode),
		calc:   d.opts.calc,
		cfg:    d.cfg,
		base:   d.opts.base,
		packed: packed,
	}

	vals := make([]Value, 0, len(types))
	var pos uint64
	for i, t := range types {
		if err := validateType(errors.PhaseDecode, t); err != nil {
			return nil, 0, err
		}
		if packed {
			s.push("value")
		} else {
			s.push("arg[" + strconv.Itoa(i) + "]")
		}
		v, n, err := s.decode(t, pos, false)
		if err != nil {
			return nil, 0, err
		}
		s.pop()
		vals = append(vals, v)
		if !packed {
			n += abi.WordPadding(n)
		}
		pos += n
	}
	return vals, pos, nil
}

type decodeState struct {
	lim    *Limiter
	calc   *layout.Calculator
	data   []byte
	path   []string
	cfg    Config
	base   uint64
	budget uint64 // payload bytes still allowed; well-formed payloads never overlap
	packed bool
}

func (s *decodeState) push(seg string) { s.path = append(s.path, seg) }
func (s *decodeState) pop()            { s.path = s.path[:len(s.path)-1] }
func (s *decodeState) where() []string { return clonePath(s.path) }

// read returns n bytes at pos without copying.
func (s *decodeState) read(t *Type, pos, n uint64) ([]byte, error) {
	end, ok := abi.SafeAddU64(pos, n)
	if !ok || end > uint64(len(s.data)) {
		have := 0
		if pos < uint64(len(s.data)) {
			have = len(s.data) - int(pos)
		}
		return nil, errors.InsufficientBytes(errors.PhaseDecode, s.where(), t.DisplayName(), pos, n, have)
	}
	return s.data[pos:end], nil
}

func (s *decodeState) readWord(t *Type, pos uint64) (uint64, error) {
	b, err := s.read(t, pos, abi.WordSize)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// charge takes n payload bytes from the per-call budget. Payloads of a
// well-formed input are disjoint, so they never sum past len(data); pointers
// that share or overlap payloads run the budget out.
func (s *decodeState) charge(t *Type, n uint64) error {
	if n > s.budget {
		return errors.PayloadExceeded(errors.PhaseDecode, s.where(), t.DisplayName(), n, s.budget)
	}
	s.budget -= n
	return nil
}

// payloadPos converts an absolute pointer into a position in the buffer.
func (s *decodeState) payloadPos(t *Type, ptr uint64) (uint64, error) {
	if ptr < s.base {
		return 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(s.where()...).
			AbiType(t.DisplayName()).
			Detail("pointer %d precedes base offset %d", ptr, s.base).
			Build()
	}
	return ptr - s.base, nil
}

func (s *decodeState) decode(t *Type, pos uint64, element bool) (Value, uint64, error) {
	if err := s.lim.Visit(s.path); err != nil {
		return nil, 0, err
	}

	switch t.Kind {
	case KindUnit:
		if _, err := s.read(t, pos, abi.WordSize); err != nil {
			return nil, 0, err
		}
		return Unit{}, abi.WordSize, nil
	case KindBool:
		b, n, err := s.decodeSmall(t, pos, element, 1)
		if err != nil {
			return nil, 0, err
		}
		return Bool(b == 1), n, nil
	case KindU8:
		b, n, err := s.decodeSmall(t, pos, element, 0xff)
		if err != nil {
			return nil, 0, err
		}
		return U8(b), n, nil
	case KindU16, KindU32, KindU64:
		return s.decodeWordInt(t, pos)
	case KindU128:
		b, err := s.read(t, pos, 16)
		if err != nil {
			return nil, 0, err
		}
		var x uint256.Int
		x.SetBytes(b)
		return U128(x), 16, nil
	case KindU256:
		b, err := s.read(t, pos, 32)
		if err != nil {
			return nil, 0, err
		}
		var x uint256.Int
		x.SetBytes(b)
		return U256(x), 32, nil
	case KindB256:
		b, err := s.read(t, pos, 32)
		if err != nil {
			return nil, 0, err
		}
		var h B256
		copy(h[:], b)
		return h, 32, nil
	case KindBytes, KindString:
		return s.decodeHeap(t, pos, true)
	case KindRawSlice, KindStringSlice:
		return s.decodeHeap(t, pos, false)
	case KindStringArray:
		return s.decodeStringArray(t, pos)
	case KindTuple, KindStruct:
		return s.decodeMembers(t, pos)
	case KindArray:
		return s.decodeArray(t, pos)
	case KindVector:
		return s.decodeVector(t, pos)
	case KindEnum:
		return s.decodeEnum(t, pos)
	default:
		return nil, 0, errors.New(errors.PhaseDecode, errors.KindUnsupported).
			Path(s.where()...).
			Detail("unknown type kind %d", t.Kind).
			Build()
	}
}

// decodeSmall reads a U8 or Bool, a single byte in element or packed
// context and a right-aligned word otherwise.
func (s *decodeState) decodeSmall(t *Type, pos uint64, element bool, limit uint64) (uint64, uint64, error) {
	var v, n uint64
	if s.packed || element {
		b, err := s.read(t, pos, 1)
		if err != nil {
			return 0, 0, err
		}
		v, n = uint64(b[0]), 1
	} else {
		w, err := s.readWord(t, pos)
		if err != nil {
			return 0, 0, err
		}
		v, n = w, abi.WordSize
	}
	if v > limit {
		if t.Kind == KindBool {
			return 0, 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(s.where()...).
				AbiType("bool").
				Value(v).
				Detail("boolean must be 0 or 1, got %d", v).
				Build()
		}
		return 0, 0, errors.Overflow(errors.PhaseDecode, s.where(), v, t.Kind.String())
	}
	return v, n, nil
}

func (s *decodeState) decodeWordInt(t *Type, pos uint64) (Value, uint64, error) {
	w, err := s.readWord(t, pos)
	if err != nil {
		return nil, 0, err
	}
	switch t.Kind {
	case KindU16:
		if w > math.MaxUint16 {
			return nil, 0, errors.Overflow(errors.PhaseDecode, s.where(), w, "u16")
		}
		return U16(w), abi.WordSize, nil
	case KindU32:
		if w > math.MaxUint32 {
			return nil, 0, errors.Overflow(errors.PhaseDecode, s.where(), w, "u32")
		}
		return U32(w), abi.WordSize, nil
	default:
		return U64(w), abi.WordSize, nil
	}
}

// decodeHeap reads a (ptr[, cap], len) header and copies exactly len payload
// bytes; the padding after the payload is not part of the value.
func (s *decodeState) decodeHeap(t *Type, pos uint64, withCap bool) (Value, uint64, error) {
	header := uint64(2 * abi.WordSize)
	lenPos := pos + abi.WordSize
	if withCap {
		header += abi.WordSize
		lenPos += abi.WordSize
	}
	if _, err := s.read(t, pos, header); err != nil {
		return nil, 0, err
	}
	ptr, _ := s.readWord(t, pos)
	n, _ := s.readWord(t, lenPos)

	start, err := s.payloadPos(t, ptr)
	if err != nil {
		return nil, 0, err
	}
	raw, err := s.read(t, start, n)
	if err != nil {
		return nil, 0, err
	}
	if err := s.charge(t, n); err != nil {
		return nil, 0, err
	}
	data := make([]byte, len(raw))
	copy(data, raw)

	switch t.Kind {
	case KindBytes:
		return Bytes(data), header, nil
	case KindRawSlice:
		return RawSlice(data), header, nil
	case KindString:
		if !utf8.Valid(data) {
			return nil, 0, errors.InvalidText(errors.PhaseDecode, s.where(), "String", data)
		}
		return String(data), header, nil
	default:
		if !abi.IsASCII(data) {
			return nil, 0, errors.InvalidText(errors.PhaseDecode, s.where(), "str", data)
		}
		return StringSlice(data), header, nil
	}
}

func (s *decodeState) decodeStringArray(t *Type, pos uint64) (Value, uint64, error) {
	raw, err := s.read(t, pos, t.Len)
	if err != nil {
		return nil, 0, err
	}
	if !abi.IsASCII(raw) {
		return nil, 0, errors.InvalidText(errors.PhaseDecode, s.where(), t.DisplayName(), raw)
	}
	width, ok := abi.AlignToWord(t.Len)
	if !ok {
		return nil, 0, errors.Overflow(errors.PhaseDecode, s.where(), t.Len, t.DisplayName())
	}
	return StringArray{Text: string(raw), Len: t.Len}, width, nil
}

func (s *decodeState) decodeMembers(t *Type, pos uint64) (Value, uint64, error) {
	if err := s.lim.Enter(s.path); err != nil {
		return nil, 0, err
	}
	defer s.lim.Leave()

	members := make([]Value, len(t.Fields))
	var total uint64
	for i, f := range t.Fields {
		seg := f.Name
		if seg == "" {
			seg = strconv.Itoa(i)
		}
		s.push(seg)
		cur, ok := abi.SafeAddU64(pos, total)
		if !ok {
			return nil, 0, errors.Overflow(errors.PhaseDecode, s.where(), total, "u64")
		}
		v, n, err := s.decode(f.Type, cur, false)
		if err != nil {
			return nil, 0, err
		}
		s.pop()
		members[i] = v
		total += n + abi.WordPadding(n)
	}

	if t.Kind == KindStruct {
		return Struct(members), total, nil
	}
	return Tuple(members), total, nil
}

// elements decodes n consecutive elements of t.Elem starting at pos, after
// checking that the buffer can hold all of them. Out-of-line elements are
// charged to the payload budget.
func (s *decodeState) elements(t *Type, pos, n uint64, payload bool) ([]Value, uint64, error) {
	info, err := s.calc.Calculate(t.Elem, s.packed)
	if err != nil {
		return nil, 0, widthError(errors.PhaseDecode, s.where(), err)
	}
	total, ok := abi.SafeMulU64(info.Element, n)
	if !ok {
		return nil, 0, errors.Overflow(errors.PhaseDecode, s.where(), n, t.DisplayName())
	}
	if _, err := s.read(t, pos, total); err != nil {
		return nil, 0, err
	}
	if payload {
		if err := s.charge(t, total); err != nil {
			return nil, 0, err
		}
	}

	elems := make([]Value, 0, min(n, abi.MaxPrealloc))
	cur := pos
	for i := uint64(0); i < n; i++ {
		s.push("[" + strconv.FormatUint(i, 10) + "]")
		v, w, err := s.decode(t.Elem, cur, true)
		if err != nil {
			return nil, 0, err
		}
		s.pop()
		elems = append(elems, v)
		cur += w
	}
	return elems, total, nil
}

func (s *decodeState) decodeArray(t *Type, pos uint64) (Value, uint64, error) {
	if err := s.lim.Enter(s.path); err != nil {
		return nil, 0, err
	}
	defer s.lim.Leave()

	elems, total, err := s.elements(t, pos, t.Len, false)
	if err != nil {
		return nil, 0, err
	}
	return Array(elems), total, nil
}

func (s *decodeState) decodeVector(t *Type, pos uint64) (Value, uint64, error) {
	if err := s.lim.Enter(s.path); err != nil {
		return nil, 0, err
	}
	defer s.lim.Leave()

	if _, err := s.read(t, pos, 3*abi.WordSize); err != nil {
		return nil, 0, err
	}
	ptr, _ := s.readWord(t, pos)
	n, _ := s.readWord(t, pos+2*abi.WordSize)

	start, err := s.payloadPos(t, ptr)
	if err != nil {
		return nil, 0, err
	}
	elems, _, err := s.elements(t, start, n, true)
	if err != nil {
		return nil, 0, err
	}
	return Vector(elems), 3 * abi.WordSize, nil
}

func (s *decodeState) decodeEnum(t *Type, pos uint64) (Value, uint64, error) {
	if err := s.lim.Enter(s.path); err != nil {
		return nil, 0, err
	}
	defer s.lim.Leave()

	disc, err := s.readWord(t, pos)
	if err != nil {
		return nil, 0, err
	}
	variant, ok := t.Variants.Variant(disc)
	if !ok {
		return nil, 0, errors.UnknownDiscriminant(errors.PhaseDecode, s.where(), t.DisplayName(), disc, t.Variants.Len())
	}

	width, err := s.calc.EnumWidth(t.Variants, s.packed)
	if err != nil {
		return nil, 0, widthError(errors.PhaseDecode, s.where(), err)
	}
	if width > s.cfg.MaxTotalEnumWidth {
		return nil, 0, errors.EnumWidthExceeded(errors.PhaseDecode, s.where(), t.DisplayName(), width, s.cfg.MaxTotalEnumWidth)
	}
	if t.Variants.OnlyUnits() {
		return Enum{Discriminant: disc, Value: Unit{}, Variants: t.Variants}, abi.WordSize, nil
	}

	padding, err := s.calc.EnumPadding(t.Variants, disc, s.packed)
	if err != nil {
		return nil, 0, widthError(errors.PhaseDecode, s.where(), err)
	}
	start, ok := abi.SafeAddU64(pos+abi.WordSize, padding)
	if !ok {
		return nil, 0, errors.Overflow(errors.PhaseDecode, s.where(), padding, "u64")
	}
	s.push(variant.Name)
	inner, _, err := s.decode(variant.Type, start, false)
	if err != nil {
		return nil, 0, err
	}
	s.pop()
	return Enum{Discriminant: disc, Value: inner, Variants: t.Variants}, abi.WordSize + width, nil
}
