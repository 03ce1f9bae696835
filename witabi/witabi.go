package witabi

import (
	"fmt"
	"strconv"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/vm-abi/codec"
	"github.com/wippyai/vm-abi/errors"
)

// maxDepth bounds the walk over nested WIT definitions.
const maxDepth = 1 << 10

// Converter memoises descriptors per WIT type definition, so a type used in
// several places maps to a single descriptor.
type Converter struct {
	cache map[*wit.TypeDef]*codec.Type
}

func NewConverter() *Converter {
	return &Converter{cache: make(map[*wit.TypeDef]*codec.Type)}
}

// FromWIT converts a single WIT type with a fresh Converter.
func FromWIT(t wit.Type) (*codec.Type, error) {
	return NewConverter().Convert(t)
}

func (c *Converter) Convert(t wit.Type) (*codec.Type, error) {
	return c.convert(t, nil, 0)
}

// Params converts function parameters in order.
func (c *Converter) Params(params []wit.Param) ([]*codec.Type, error) {
	out := make([]*codec.Type, len(params))
	for i, p := range params {
		t, err := c.convert(p.Type, []string{p.Name}, 0)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func unsupported(path []string, what string) error {
	return errors.New(errors.PhaseConvert, errors.KindUnsupported).
		Path(path...).
		Detail("%s has no VM ABI representation", what).
		Build()
}

func (c *Converter) convert(t wit.Type, path []string, depth int) (*codec.Type, error) {
	if depth > maxDepth {
		return nil, errors.DepthExceeded(errors.PhaseConvert, path, maxDepth)
	}

	switch typ := t.(type) {
	case nil:
		return codec.TypeUnit, nil
	case wit.Bool:
		return codec.TypeBool, nil
	case wit.U8:
		return codec.TypeU8, nil
	case wit.U16:
		return codec.TypeU16, nil
	case wit.U32:
		return codec.TypeU32, nil
	case wit.U64:
		return codec.TypeU64, nil
	case wit.String:
		return codec.TypeString, nil
	case wit.S8, wit.S16, wit.S32, wit.S64:
		return nil, unsupported(path, "signed integer")
	case wit.F32, wit.F64:
		return nil, unsupported(path, "floating point")
	case wit.Char:
		return nil, unsupported(path, "char")
	case *wit.TypeDef:
		return c.convertTypeDef(typ, path, depth)
	default:
		return nil, unsupported(path, fmt.Sprintf("WIT type %T", typ))
	}
}

func typeDefName(td *wit.TypeDef, fallback string) string {
	if td.Name != nil {
		return *td.Name
	}
	return fallback
}

func (c *Converter) convertTypeDef(td *wit.TypeDef, path []string, depth int) (*codec.Type, error) {
	if cached, ok := c.cache[td]; ok {
		return cached, nil
	}

	var out *codec.Type
	var err error
	switch kind := td.Kind.(type) {
	case *wit.Record:
		fields := make([]codec.Field, len(kind.Fields))
		for i, f := range kind.Fields {
			ft, err := c.convert(f.Type, extend(path, f.Name), depth+1)
			if err != nil {
				return nil, err
			}
			fields[i] = codec.Field{Name: f.Name, Type: ft}
		}
		out = codec.NewStruct(typeDefName(td, "record"), fields...)
	case *wit.Variant:
		variants := make([]codec.Field, len(kind.Cases))
		for i, cs := range kind.Cases {
			vt, err := c.convert(cs.Type, extend(path, cs.Name), depth+1)
			if err != nil {
				return nil, err
			}
			variants[i] = codec.Field{Name: cs.Name, Type: vt}
		}
		out = codec.NewEnum(typeDefName(td, "variant"), variants...)
	case *wit.Enum:
		variants := make([]codec.Field, len(kind.Cases))
		for i, cs := range kind.Cases {
			variants[i] = codec.Field{Name: cs.Name, Type: codec.TypeUnit}
		}
		out = codec.NewEnum(typeDefName(td, "enum"), variants...)
	case *wit.List:
		if _, isByte := kind.Type.(wit.U8); isByte {
			out = codec.TypeBytes
			break
		}
		var elem *codec.Type
		if elem, err = c.convert(kind.Type, extend(path, "[]"), depth+1); err != nil {
			return nil, err
		}
		out = codec.NewVector(elem)
	case *wit.Tuple:
		members := make([]*codec.Type, len(kind.Types))
		for i, mt := range kind.Types {
			if members[i], err = c.convert(mt, extend(path, strconv.Itoa(i)), depth+1); err != nil {
				return nil, err
			}
		}
		out = codec.NewTuple(members...)
	case *wit.Option:
		var some *codec.Type
		if some, err = c.convert(kind.Type, extend(path, "Some"), depth+1); err != nil {
			return nil, err
		}
		out = codec.NewEnum("Option",
			codec.Field{Name: "None", Type: codec.TypeUnit},
			codec.Field{Name: "Some", Type: some},
		).WithGenerics(some)
	case *wit.Result:
		var ok, fail *codec.Type
		if ok, err = c.convert(kind.OK, extend(path, "Ok"), depth+1); err != nil {
			return nil, err
		}
		if fail, err = c.convert(kind.Err, extend(path, "Err"), depth+1); err != nil {
			return nil, err
		}
		out = codec.NewEnum("Result",
			codec.Field{Name: "Ok", Type: ok},
			codec.Field{Name: "Err", Type: fail},
		).WithGenerics(ok, fail)
	case *wit.Flags:
		return nil, unsupported(path, "flags")
	case *wit.Own, *wit.Borrow:
		return nil, unsupported(path, "resource handle")
	case wit.Type:
		if out, err = c.convert(kind, path, depth+1); err != nil {
			return nil, err
		}
	default:
		return nil, unsupported(path, "type definition "+typeDefName(td, "<anonymous>"))
	}

	c.cache[td] = out
	return out, nil
}

func extend(path []string, seg string) []string {
	return append(path[:len(path):len(path)], seg)
}
