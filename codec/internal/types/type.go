package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Type describes the shape of a value. Descriptors are built once, used by
// pointer and never mutated afterwards; they must be fully monomorphized and acyclic.
type Type struct {
	Elem     *Type         // Array, Vector
	Variants *EnumVariants // Enum
	Name     string        // Struct, Enum
	Fields   []Field       // Struct (named), Tuple (unnamed)
	Generics []*Type       // Struct, Enum; informational only
	Len      uint64        // Array, StringArray
	Kind     Kind
}

type Field struct {
	Type *Type
	Name string
}

var (
	Unit        = &Type{Kind: KindUnit}
	Bool        = &Type{Kind: KindBool}
	U8          = &Type{Kind: KindU8}
	U16         = &Type{Kind: KindU16}
	U32         = &Type{Kind: KindU32}
	U64         = &Type{Kind: KindU64}
	U128        = &Type{Kind: KindU128}
	U256        = &Type{Kind: KindU256}
	B256        = &Type{Kind: KindB256}
	Bytes       = &Type{Kind: KindBytes}
	RawSlice    = &Type{Kind: KindRawSlice}
	String      = &Type{Kind: KindString}
	StringSlice = &Type{Kind: KindStringSlice}
)

var primitives = map[Kind]*Type{
	KindUnit:        Unit,
	KindBool:        Bool,
	KindU8:          U8,
	KindU16:         U16,
	KindU32:         U32,
	KindU64:         U64,
	KindU128:        U128,
	KindU256:        U256,
	KindB256:        B256,
	KindBytes:       Bytes,
	KindRawSlice:    RawSlice,
	KindString:      String,
	KindStringSlice: StringSlice,
}

// Leaf returns the shared descriptor for kinds that carry no parameters.
func Leaf(k Kind) (*Type, bool) {
	t, ok := primitives[k]
	return t, ok
}

func NewArray(elem *Type, n uint64) *Type {
	return &Type{Kind: KindArray, Elem: elem, Len: n}
}

func NewVector(elem *Type) *Type {
	return &Type{Kind: KindVector, Elem: elem}
}

func NewStringArray(n uint64) *Type {
	return &Type{Kind: KindStringArray, Len: n}
}

func NewTuple(members ...*Type) *Type {
	fields := make([]Field, len(members))
	for i, m := range members {
		fields[i] = Field{Type: m}
	}
	return &Type{Kind: KindTuple, Fields: fields}
}

func NewStruct(name string, fields ...Field) *Type {
	return &Type{Kind: KindStruct, Name: name, Fields: append([]Field(nil), fields...)}
}

func NewEnum(name string, variants ...Field) *Type {
	return &Type{Kind: KindEnum, Name: name, Variants: NewEnumVariants(variants...)}
}

// WithGenerics returns a copy of t carrying the resolved generic arguments.
func (t *Type) WithGenerics(generics ...*Type) *Type {
	c := *t
	c.Generics = append([]*Type(nil), generics...)
	return &c
}

// maxDisplayName caps DisplayName; descriptors sharing subtrees would
// otherwise render exponentially long names.
const maxDisplayName = 256

// DisplayName returns a Rust-flavoured display name used in errors and debug
// output, truncated with "..." past maxDisplayName bytes.
func (t *Type) DisplayName() string {
	var b strings.Builder
	t.writeDisplayName(&b)
	if b.Len() > maxDisplayName {
		return b.String()[:maxDisplayName] + "..."
	}
	return b.String()
}

func (t *Type) writeDisplayName(b *strings.Builder) {
	if b.Len() > maxDisplayName {
		return
	}
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	switch t.Kind {
	case KindUnit:
		b.WriteString("()")
	case KindBytes:
		b.WriteString("Bytes")
	case KindRawSlice:
		b.WriteString("RawSlice")
	case KindString:
		b.WriteString("String")
	case KindStringSlice:
		b.WriteString("str")
	case KindStringArray:
		b.WriteString("str[" + strconv.FormatUint(t.Len, 10) + "]")
	case KindArray:
		b.WriteByte('[')
		t.Elem.writeDisplayName(b)
		b.WriteString("; " + strconv.FormatUint(t.Len, 10) + "]")
	case KindVector:
		b.WriteString("Vec<")
		t.Elem.writeDisplayName(b)
		b.WriteByte('>')
	case KindTuple:
		b.WriteByte('(')
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			f.Type.writeDisplayName(b)
		}
		b.WriteByte(')')
	case KindStruct, KindEnum:
		if t.Name != "" {
			b.WriteString(t.Name)
			return
		}
		b.WriteString(t.Kind.String())
	default:
		b.WriteString(t.Kind.String())
	}
}

// String renders the canonical signature of t, as hashed into function selectors.
func (t *Type) String() string {
	var b strings.Builder
	t.writeSignature(&b)
	return b.String()
}

func (t *Type) writeSignature(b *strings.Builder) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	switch t.Kind {
	case KindUnit:
		b.WriteString("()")
	case KindBytes:
		b.WriteString("s(s(rawptr,u64),u64)")
	case KindString:
		b.WriteString("s(s(s(rawptr,u64),u64))")
	case KindRawSlice:
		b.WriteString("rawslice")
	case KindStringSlice:
		b.WriteString("str")
	case KindStringArray:
		b.WriteString("str[")
		b.WriteString(strconv.FormatUint(t.Len, 10))
		b.WriteByte(']')
	case KindArray:
		b.WriteString("a[")
		t.Elem.writeSignature(b)
		b.WriteByte(';')
		b.WriteString(strconv.FormatUint(t.Len, 10))
		b.WriteByte(']')
	case KindVector:
		inner := t.Elem.String()
		b.WriteString("s<" + inner + ">(s<" + inner + ">(rawptr,u64),u64)")
	case KindTuple:
		b.WriteByte('(')
		writeFieldSignatures(b, t.Fields)
		b.WriteByte(')')
	case KindStruct, KindEnum:
		if t.Kind == KindStruct {
			b.WriteByte('s')
		} else {
			b.WriteByte('e')
		}
		if len(t.Generics) > 0 {
			b.WriteByte('<')
			for i, g := range t.Generics {
				if i > 0 {
					b.WriteByte(',')
				}
				g.writeSignature(b)
			}
			b.WriteByte('>')
		}
		b.WriteByte('(')
		if t.Kind == KindStruct {
			writeFieldSignatures(b, t.Fields)
		} else if t.Variants != nil {
			writeFieldSignatures(b, t.Variants.variants)
		}
		b.WriteByte(')')
	default:
		b.WriteString(t.Kind.String())
	}
}

func writeFieldSignatures(b *strings.Builder, fields []Field) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		f.Type.writeSignature(b)
	}
}

var (
	ErrTooDeep       = errors.New("type descriptor nesting too deep")
	ErrWidthOverflow = errors.New("encoded width overflows u64")
)

// Validate checks structural well-formedness of t, walking at most maxDepth composite levels.
// Shared subtrees are checked once.
func (t *Type) Validate(maxDepth uint64) error {
	v := validator{maxDepth: maxDepth, heights: make(map[*Type]uint64)}
	_, err := v.validate(t, 0, "$")
	return err
}

type validator struct {
	heights  map[*Type]uint64 // composite height of every subtree already validated
	maxDepth uint64
}

// validate returns the composite height of t.
func (v *validator) validate(t *Type, depth uint64, path string) (uint64, error) {
	if t == nil {
		return 0, fmt.Errorf("%s: nil type descriptor", path)
	}
	if h, ok := v.heights[t]; ok {
		if depth+h > v.maxDepth {
			return 0, fmt.Errorf("%s: %w", path, ErrTooDeep)
		}
		return h, nil
	}
	if t.Kind.IsComposite() {
		depth++
		if depth > v.maxDepth {
			return 0, fmt.Errorf("%s: %w", path, ErrTooDeep)
		}
	}

	var h uint64
	child := func(c *Type, path string) error {
		ch, err := v.validate(c, depth, path)
		h = max(h, ch)
		return err
	}

	switch t.Kind {
	case KindArray, KindVector:
		if t.Elem == nil {
			return 0, fmt.Errorf("%s: %s without element type", path, t.Kind)
		}
		if err := child(t.Elem, path+"[]"); err != nil {
			return 0, err
		}
	case KindTuple:
		for i, f := range t.Fields {
			if err := child(f.Type, path+"."+strconv.Itoa(i)); err != nil {
				return 0, err
			}
		}
	case KindStruct:
		seen := make(map[string]struct{}, len(t.Fields))
		for _, f := range t.Fields {
			if f.Name == "" {
				return 0, fmt.Errorf("%s: struct %s has an unnamed field", path, t.Name)
			}
			if _, dup := seen[f.Name]; dup {
				return 0, fmt.Errorf("%s: struct %s has duplicate field %q", path, t.Name, f.Name)
			}
			seen[f.Name] = struct{}{}
			if err := child(f.Type, path+"."+f.Name); err != nil {
				return 0, err
			}
		}
	case KindEnum:
		if t.Variants == nil || t.Variants.Len() == 0 {
			return 0, fmt.Errorf("%s: enum %s has no variants", path, t.Name)
		}
		seen := make(map[string]struct{}, t.Variants.Len())
		for _, vr := range t.Variants.variants {
			if vr.Name == "" {
				return 0, fmt.Errorf("%s: enum %s has an unnamed variant", path, t.Name)
			}
			if _, dup := seen[vr.Name]; dup {
				return 0, fmt.Errorf("%s: enum %s has duplicate variant %q", path, t.Name, vr.Name)
			}
			seen[vr.Name] = struct{}{}
			if err := child(vr.Type, path+"::"+vr.Name); err != nil {
				return 0, err
			}
		}
	default:
		if t.Kind > KindEnum {
			return 0, fmt.Errorf("%s: unknown kind %d", path, t.Kind)
		}
	}
	if t.Kind.IsComposite() {
		h++
	}
	v.heights[t] = h
	return h, nil
}

// Equal reports whether a and b describe the same layout, variant names
// included. Shared subtrees are compared once.
func Equal(a, b *Type) bool {
	return equal(a, b, make(map[[2]*Type]struct{}))
}

func equal(a, b *Type, seen map[[2]*Type]struct{}) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind || a.Len != b.Len {
		return false
	}
	k := [2]*Type{a, b}
	if _, ok := seen[k]; ok {
		return true
	}
	seen[k] = struct{}{}

	if (a.Elem == nil) != (b.Elem == nil) || (a.Elem != nil && !equal(a.Elem, b.Elem, seen)) {
		return false
	}
	if !equalFields(a.Fields, b.Fields, seen) || len(a.Generics) != len(b.Generics) {
		return false
	}
	for i := range a.Generics {
		if !equal(a.Generics[i], b.Generics[i], seen) {
			return false
		}
	}
	if a.Kind == KindEnum {
		return equalVariants(a.Variants, b.Variants, seen)
	}
	return true
}

// EqualVariants reports whether two variant lists agree on names and payload types.
func EqualVariants(a, b *EnumVariants) bool {
	return equalVariants(a, b, make(map[[2]*Type]struct{}))
}

func equalVariants(a, b *EnumVariants, seen map[[2]*Type]struct{}) bool {
	if a == b {
		return true
	}
	if a.Len() != b.Len() {
		return false
	}
	return equalFields(a.variants, b.variants, seen)
}

// equalFields compares names and types position by position.
func equalFields(a, b []Field, seen map[[2]*Type]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !equal(a[i].Type, b[i].Type, seen) {
			return false
		}
	}
	return true
}
