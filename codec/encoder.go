package codec

import (
	"strconv"
	"unicode/utf8"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/wippyai/vm-abi/codec/internal/abi"
	"github.com/wippyai/vm-abi/codec/internal/layout"
	"github.com/wippyai/vm-abi/errors"
)

// Encoder turns Values into the VM's byte layout. It holds only immutable
// configuration and a width cache, and may be shared between goroutines.
type Encoder struct {
	opts options
	cfg  Config
}

func NewEncoder(cfg Config, opts ...Option) *Encoder {
	return &Encoder{cfg: cfg, opts: buildOptions(opts)}
}

// EncodeUnresolved encodes values as call arguments without assigning heap
// pointers. Each argument is padded to a word.
func (e *Encoder) EncodeUnresolved(values ...Value) (*UnresolvedLayout, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	s := e.newState(false)
	out := &UnresolvedLayout{}
	for i, v := range values {
		s.push("arg[" + strconv.Itoa(i) + "]")
		n, err := s.encode(out, v, false)
		if err != nil {
			return nil, err
		}
		out.appendZeros(abi.WordPadding(n))
		s.pop()
	}
	return out, nil
}

// Encode encodes values as call arguments placed at the encoder's base offset.
func (e *Encoder) Encode(values ...Value) ([]byte, error) {
	return e.EncodeAt(e.opts.base, values...)
}

// EncodeAt encodes values as call arguments placed at absolute offset base.
func (e *Encoder) EncodeAt(base uint64, values ...Value) ([]byte, error) {
	out, err := e.encodeAt(base, values)
	e.opts.metrics.observe("encode", len(out), err)
	logResult("encode", err, zap.Int("values", len(values)), zap.Uint64("base", base), zap.Int("bytes", len(out)))
	return out, err
}

func (e *Encoder) encodeAt(base uint64, values []Value) ([]byte, error) {
	l, err := e.EncodeUnresolved(values...)
	if err != nil {
		return nil, err
	}
	return l.Resolve(base)
}

// EncodePacked encodes a single value with U8 and Bool at their natural
// single-byte width and no trailing padding. It is used for patching
// configurable constants into a binary.
func (e *Encoder) EncodePacked(v Value) ([]byte, error) {
	out, err := e.encodePacked(v)
	e.opts.metrics.observe("encode_packed", len(out), err)
	logResult("encode packed", err, zap.Int("bytes", len(out)))
	return out, err
}

func (e *Encoder) encodePacked(v Value) ([]byte, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	s := e.newState(true)
	s.push("value")
	l := &UnresolvedLayout{}
	if _, err := s.encode(l, v, false); err != nil {
		return nil, err
	}
	return l.Resolve(e.opts.base)
}

// EncodeArgs checks every value against its descriptor before encoding.
func (e *Encoder) EncodeArgs(types []*Type, values []Value) ([]byte, error) {
	if len(types) != len(values) {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Detail("argument count mismatch: expected %d, got %d", len(types), len(values)).
			Build()
	}
	for i, t := range types {
		if err := checkAt(t, values[i], []string{"arg[" + strconv.Itoa(i) + "]"}); err != nil {
			return nil, err
		}
	}
	return e.Encode(values...)
}

type encodeState struct {
	lim    *Limiter
	calc   *layout.Calculator
	path   []string
	cfg    Config
	packed bool
}

func (e *Encoder) newState(packed bool) *encodeState {
	return &encodeState{
		lim:    NewLimiter(e.cfg, errors.PhaseEncode),
		calc:   e.opts.calc,
		cfg:    e.cfg,
		packed: packed,
	}
}

func (s *encodeState) push(seg string) { s.path = append(s.path, seg) }
func (s *encodeState) pop()            { s.path = s.path[:len(s.path)-1] }
func (s *encodeState) where() []string { return clonePath(s.path) }

// encode appends v to out and returns the number of inline bytes written,
// before any member padding the caller adds.
func (s *encodeState) encode(out *UnresolvedLayout, v Value, element bool) (uint64, error) {
	if err := s.lim.Visit(s.path); err != nil {
		return 0, err
	}

	switch v := v.(type) {
	case nil:
		return 0, errors.InvalidData(errors.PhaseEncode, s.where(), "nil value")
	case Unit:
		out.appendZeros(abi.WordSize)
		return abi.WordSize, nil
	case Bool:
		var b byte
		if v {
			b = 1
		}
		return s.encodeByte(out, b, element), nil
	case U8:
		return s.encodeByte(out, byte(v), element), nil
	case U16:
		out.appendWord(uint64(v))
		return abi.WordSize, nil
	case U32:
		out.appendWord(uint64(v))
		return abi.WordSize, nil
	case U64:
		out.appendWord(uint64(v))
		return abi.WordSize, nil
	case U128:
		if v[2] != 0 || v[3] != 0 {
			return 0, errors.Overflow(errors.PhaseEncode, s.where(), v.Int().Dec(), "u128")
		}
		x := uint256.Int(v)
		b := x.Bytes32()
		out.appendInline(b[16:]...)
		return 16, nil
	case U256:
		x := uint256.Int(v)
		b := x.Bytes32()
		out.appendInline(b[:]...)
		return 32, nil
	case B256:
		out.appendInline(v[:]...)
		return 32, nil
	case Bytes:
		return s.encodeHeap(out, []byte(v), true), nil
	case RawSlice:
		return s.encodeHeap(out, []byte(v), false), nil
	case String:
		if !utf8.ValidString(string(v)) {
			return 0, errors.InvalidText(errors.PhaseEncode, s.where(), "String", []byte(v))
		}
		return s.encodeHeap(out, []byte(v), true), nil
	case StringSlice:
		if !abi.IsASCIIString(string(v)) {
			return 0, errors.InvalidText(errors.PhaseEncode, s.where(), "str", []byte(v))
		}
		return s.encodeHeap(out, []byte(v), false), nil
	case StringArray:
		return s.encodeStringArray(out, v)
	case Tuple:
		return s.encodeMembers(out, v)
	case Struct:
		return s.encodeMembers(out, v)
	case Array:
		return s.encodeArray(out, v)
	case Vector:
		return s.encodeVector(out, v)
	case Enum:
		return s.encodeEnum(out, v)
	default:
		return 0, errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Path(s.where()...).
			GoType(abi.TypeName(v)).
			Detail("unsupported value type").
			Build()
	}
}

func (s *encodeState) encodeByte(out *UnresolvedLayout, b byte, element bool) uint64 {
	if s.packed || element {
		out.appendInline(b)
		return 1
	}
	out.appendWord(uint64(b))
	return abi.WordSize
}

// encodeHeap writes a (ptr[, cap], len) header and queues data as a dynamic payload.
func (s *encodeState) encodeHeap(out *UnresolvedLayout, data []byte, withCap bool) uint64 {
	payload := &UnresolvedLayout{}
	if len(data) > 0 {
		payload.appendInline(data...)
	}
	out.appendDynamic(payload)
	n := uint64(abi.WordSize)
	if withCap {
		out.appendWord(uint64(len(data)))
		n += abi.WordSize
	}
	out.appendWord(uint64(len(data)))
	return n + abi.WordSize
}

func (s *encodeState) encodeStringArray(out *UnresolvedLayout, v StringArray) (uint64, error) {
	if uint64(len(v.Text)) != v.Len {
		return 0, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Path(s.where()...).
			AbiType("str[" + strconv.FormatUint(v.Len, 10) + "]").
			Detail("text length %d does not match declared length %d", len(v.Text), v.Len).
			Build()
	}
	if !abi.IsASCIIString(v.Text) {
		return 0, errors.InvalidText(errors.PhaseEncode, s.where(), "str["+strconv.FormatUint(v.Len, 10)+"]", []byte(v.Text))
	}
	out.appendInline([]byte(v.Text)...)
	pad := abi.WordPadding(v.Len)
	out.appendZeros(pad)
	return v.Len + pad, nil
}

func (s *encodeState) encodeMembers(out *UnresolvedLayout, members []Value) (uint64, error) {
	if err := s.lim.Enter(s.path); err != nil {
		return 0, err
	}
	defer s.lim.Leave()

	var total uint64
	for i, m := range members {
		s.push(strconv.Itoa(i))
		n, err := s.encode(out, m, false)
		if err != nil {
			return 0, err
		}
		pad := abi.WordPadding(n)
		out.appendZeros(pad)
		s.pop()

		var ok bool
		if total, ok = abi.SafeAddU64(total, n+pad); !ok {
			return 0, errors.Overflow(errors.PhaseEncode, s.where(), total, "u64")
		}
	}
	return total, nil
}

func (s *encodeState) encodeArray(out *UnresolvedLayout, elems []Value) (uint64, error) {
	if err := s.lim.Enter(s.path); err != nil {
		return 0, err
	}
	defer s.lim.Leave()

	var total uint64
	for i, el := range elems {
		s.push("[" + strconv.Itoa(i) + "]")
		n, err := s.encode(out, el, true)
		if err != nil {
			return 0, err
		}
		s.pop()
		total += n
	}
	return total, nil
}

func (s *encodeState) encodeVector(out *UnresolvedLayout, elems []Value) (uint64, error) {
	if err := s.lim.Enter(s.path); err != nil {
		return 0, err
	}
	defer s.lim.Leave()

	payload := &UnresolvedLayout{}
	for i, el := range elems {
		s.push("[" + strconv.Itoa(i) + "]")
		if _, err := s.encode(payload, el, true); err != nil {
			return 0, err
		}
		s.pop()
	}
	out.appendDynamic(payload)
	out.appendWord(uint64(len(elems)))
	out.appendWord(uint64(len(elems)))
	return 3 * abi.WordSize, nil
}

func (s *encodeState) encodeEnum(out *UnresolvedLayout, v Enum) (uint64, error) {
	if err := s.lim.Enter(s.path); err != nil {
		return 0, err
	}
	defer s.lim.Leave()

	if v.Variants == nil || v.Variants.Len() == 0 {
		return 0, errors.InvalidData(errors.PhaseEncode, s.where(), "enum value without variants")
	}
	variant, ok := v.Variants.Variant(v.Discriminant)
	if !ok {
		return 0, errors.UnknownDiscriminant(errors.PhaseEncode, s.where(), "enum", v.Discriminant, v.Variants.Len())
	}

	width, err := s.calc.EnumWidth(v.Variants, s.packed)
	if err != nil {
		return 0, s.widthError(err)
	}
	if width > s.cfg.MaxTotalEnumWidth {
		return 0, errors.EnumWidthExceeded(errors.PhaseEncode, s.where(), "enum", width, s.cfg.MaxTotalEnumWidth)
	}

	out.appendWord(v.Discriminant)
	if v.Variants.OnlyUnits() {
		if _, isUnit := v.Value.(Unit); v.Value != nil && !isUnit {
			return 0, errors.TypeMismatch(errors.PhaseEncode, s.where(), abi.TypeName(v.Value), "()")
		}
		return abi.WordSize, nil
	}

	padding, err := s.calc.EnumPadding(v.Variants, v.Discriminant, s.packed)
	if err != nil {
		return 0, s.widthError(err)
	}
	out.appendZeros(padding)

	payload := v.Value
	if payload == nil && variant.Type.Kind == KindUnit {
		payload = Unit{}
	}
	s.push(variant.Name)
	n, err := s.encode(out, payload, false)
	if err != nil {
		return 0, err
	}
	if n+padding != width {
		return 0, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(s.where()...).
			GoType(abi.TypeName(payload)).
			AbiType(variant.Type.DisplayName()).
			Detail("payload encodes to %d bytes, variant %s expects %d", n, variant.Name, width-padding).
			Build()
	}
	s.pop()
	return abi.WordSize + width, nil
}

func (s *encodeState) widthError(err error) error {
	return widthError(errors.PhaseEncode, s.where(), err)
}
