package codec

import (
	"github.com/wippyai/vm-abi/codec/internal/types"
)

type (
	Type         = types.Type
	Field        = types.Field
	EnumVariants = types.EnumVariants
	Kind         = types.Kind
)

const (
	KindUnit        = types.KindUnit
	KindBool        = types.KindBool
	KindU8          = types.KindU8
	KindU16         = types.KindU16
	KindU32         = types.KindU32
	KindU64         = types.KindU64
	KindU128        = types.KindU128
	KindU256        = types.KindU256
	KindB256        = types.KindB256
	KindBytes       = types.KindBytes
	KindRawSlice    = types.KindRawSlice
	KindString      = types.KindString
	KindStringArray = types.KindStringArray
	KindStringSlice = types.KindStringSlice
	KindTuple       = types.KindTuple
	KindArray       = types.KindArray
	KindVector      = types.KindVector
	KindStruct      = types.KindStruct
	KindEnum        = types.KindEnum
)

// Shared leaf descriptors. They are package-wide singletons and must not be
// modified; build a new Type instead. Width caches never key on them.
var (
	TypeUnit        = types.Unit
	TypeBool        = types.Bool
	TypeU8          = types.U8
	TypeU16         = types.U16
	TypeU32         = types.U32
	TypeU64         = types.U64
	TypeU128        = types.U128
	TypeU256        = types.U256
	TypeB256        = types.B256
	TypeBytes       = types.Bytes
	TypeRawSlice    = types.RawSlice
	TypeString      = types.String
	TypeStringSlice = types.StringSlice
)

var (
	NewArray        = types.NewArray
	NewVector       = types.NewVector
	NewTuple        = types.NewTuple
	NewStringArray  = types.NewStringArray
	NewStruct       = types.NewStruct
	NewEnum         = types.NewEnum
	NewEnumVariants = types.NewEnumVariants
	ParseKind       = types.ParseKind
)
