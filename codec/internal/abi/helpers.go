package abi

import (
	"math/bits"
	"reflect"
	"unicode/utf8"
)

// WordSize is the VM's unit of inline alignment in bytes.
const WordSize = 8

const (
	// MaxPrealloc caps the element capacity reserved up front while decoding a
	// length header; larger collections grow as elements are actually read.
	MaxPrealloc = 1 << 12

	// MaxTypeDepth bounds walks over descriptors that happen outside a
	// limiter, such as width computation and validation.
	MaxTypeDepth = 1 << 10
)

func SafeMulU64(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

func SafeAddU64(a, b uint64) (uint64, bool) {
	v, carry := bits.Add64(a, b, 0)
	return v, carry == 0
}

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

func AlignTo(offset, align uint64) uint64 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// AlignToWord rounds n up to a word boundary, reporting false on overflow.
func AlignToWord(n uint64) (uint64, bool) {
	if n > ^uint64(0)-(WordSize-1) {
		return 0, false
	}
	return AlignTo(n, WordSize), true
}

// WordPadding is the number of zero bytes needed after n bytes to reach a word boundary.
func WordPadding(n uint64) uint64 {
	return (WordSize - n%WordSize) % WordSize
}

func IsASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func IsASCIIString(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
