package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/vm-abi/errors"
)

func TestCheck(t *testing.T) {
	point := NewStruct("Point", Field{Name: "x", Type: TypeU32}, Field{Name: "y", Type: TypeU32})
	otherColors := NewEnum("Color", Field{Name: "Red", Type: TypeUnit}, Field{Name: "Blue", Type: TypeUnit})

	tests := []struct {
		name  string
		typ   *Type
		value Value
		kind  errors.Kind
	}{
		{"scalar", TypeU8, U8(1), ""},
		{"wrong scalar", TypeU8, U16(1), errors.KindTypeMismatch},
		{"missing value", TypeU8, nil, errors.KindTypeMismatch},
		{"struct", point, Struct{U32(1), U32(2)}, ""},
		{"struct member count", point, Struct{U32(1)}, errors.KindTypeMismatch},
		{"struct member kind", point, Struct{U32(1), U64(2)}, errors.KindTypeMismatch},
		{"array length", NewArray(TypeU8, 2), Array{U8(1)}, errors.KindTypeMismatch},
		{"vector elements", NewVector(TypeU8), Vector{U8(1), Bool(true)}, errors.KindTypeMismatch},
		{"str array length", NewStringArray(3), StringArrayOf("ab"), errors.KindTypeMismatch},
		{"enum", colors, NewEnumValue(colors.Variants, 1, nil), ""},
		{"enum discriminant", colors, NewEnumValue(colors.Variants, 5, nil), errors.KindUnknownDiscriminant},
		{"enum variants", colors, NewEnumValue(otherColors.Variants, 0, nil), errors.KindTypeMismatch},
		{"enum payload", twoWords, NewEnumValue(twoWords.Variants, 0, U8(1)), errors.KindTypeMismatch},
		{"nil type", nil, U8(1), errors.KindInvalidInput},
		{"bad descriptor", NewStruct("S", Field{Name: "a", Type: TypeU8}, Field{Name: "a", Type: TypeU8}), Struct{U8(1), U8(1)}, errors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.typ, tt.value)
			if tt.kind == "" {
				require.NoError(t, err)
				return
			}
			requireKind(t, err, tt.kind)
		})
	}
}

func TestCheckPath(t *testing.T) {
	typ := NewStruct("Outer", Field{Name: "items", Type: NewVector(NewTuple(TypeU8, TypeBool))})
	err := Check(typ, Struct{Vector{Tuple{U8(1), Bool(true)}, Tuple{U8(1), U8(0)}}})

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"items", "[1]", "1"}, e.Path)
	assert.Equal(t, "bool", e.AbiType)
	assert.Equal(t, errors.PhaseValidate, e.Phase)
}

func TestCheckEquivalentVariantLists(t *testing.T) {
	a := NewEnum("E", Field{Name: "A", Type: TypeU64})
	b := NewEnum("E", Field{Name: "A", Type: TypeU64})
	require.NoError(t, Check(a, NewEnumValue(b.Variants, 0, U64(1))))
}
