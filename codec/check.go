package codec

import (
	"strconv"

	"github.com/wippyai/vm-abi/codec/internal/abi"
	"github.com/wippyai/vm-abi/codec/internal/types"
	"github.com/wippyai/vm-abi/errors"
)

// Check reports whether v structurally matches t.
func Check(t *Type, v Value) error {
	return checkAt(t, v, nil)
}

func checkAt(t *Type, v Value, path []string) error {
	if err := validateType(errors.PhaseValidate, t); err != nil {
		return err
	}
	return check(t, v, path, 0)
}

// extend appends seg without sharing the backing array of path.
func extend(path []string, seg string) []string {
	return append(path[:len(path):len(path)], seg)
}

func mismatch(path []string, v Value, t *Type, detail string) error {
	b := errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
		Path(path...).
		GoType(abi.TypeName(v)).
		AbiType(t.DisplayName())
	if detail != "" {
		b.Detail("%s", detail)
	}
	return b.Build()
}

func check(t *Type, v Value, path []string, depth int) error {
	if t == nil {
		return errors.InvalidInput(errors.PhaseValidate, "nil type descriptor")
	}
	if v == nil {
		return mismatch(path, v, t, "missing value")
	}
	if v.Kind() != t.Kind {
		return mismatch(path, v, t, "")
	}
	if t.Kind.IsComposite() {
		depth++
		if depth > abi.MaxTypeDepth {
			return errors.DepthExceeded(errors.PhaseValidate, path, abi.MaxTypeDepth)
		}
	}

	switch t.Kind {
	case KindStringArray:
		if sa := v.(StringArray); sa.Len != t.Len || uint64(len(sa.Text)) != t.Len {
			return mismatch(path, v, t, "length "+strconv.Itoa(len(sa.Text)))
		}
	case KindTuple:
		return checkMembers(t, v, v.(Tuple), path, depth)
	case KindStruct:
		return checkMembers(t, v, v.(Struct), path, depth)
	case KindArray:
		elems := v.(Array)
		if uint64(len(elems)) != t.Len {
			return mismatch(path, v, t, "length "+strconv.Itoa(len(elems)))
		}
		return checkElems(t.Elem, elems, path, depth)
	case KindVector:
		return checkElems(t.Elem, v.(Vector), path, depth)
	case KindEnum:
		e := v.(Enum)
		variant, ok := t.Variants.Variant(e.Discriminant)
		if !ok {
			return errors.UnknownDiscriminant(errors.PhaseValidate, path, t.DisplayName(), e.Discriminant, t.Variants.Len())
		}
		if !types.EqualVariants(e.Variants, t.Variants) {
			return mismatch(path, v, t, "enum value carries a different variant list")
		}
		payload := e.Value
		if payload == nil && variant.Type.Kind == KindUnit {
			payload = Unit{}
		}
		return check(variant.Type, payload, extend(path, variant.Name), depth)
	}
	return nil
}

func checkMembers(t *Type, v Value, members []Value, path []string, depth int) error {
	if len(members) != len(t.Fields) {
		return mismatch(path, v, t, "expected "+strconv.Itoa(len(t.Fields))+" members, got "+strconv.Itoa(len(members)))
	}
	for i, f := range t.Fields {
		seg := f.Name
		if seg == "" {
			seg = strconv.Itoa(i)
		}
		if err := check(f.Type, members[i], extend(path, seg), depth); err != nil {
			return err
		}
	}
	return nil
}

func checkElems(elem *Type, elems []Value, path []string, depth int) error {
	for i, el := range elems {
		if err := check(elem, el, extend(path, "["+strconv.Itoa(i)+"]"), depth); err != nil {
			return err
		}
	}
	return nil
}
