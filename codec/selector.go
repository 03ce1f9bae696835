package codec

import (
	"strings"

	sha256 "github.com/minio/sha256-simd"
)

// SelectorSize is the width of an encoded function selector.
const SelectorSize = 8

// Signature returns the canonical signature name(T1,T2,...) hashed into the
// function selector.
func Signature(name string, inputs []*Type) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, t := range inputs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.String())
	}
	b.WriteByte(')')
	return b.String()
}

// FunctionSelector places the first four bytes of the SHA-256 of the
// signature right-aligned in a word.
func FunctionSelector(name string, inputs []*Type) [SelectorSize]byte {
	return SelectorFromSignature(Signature(name, inputs))
}

func SelectorFromSignature(sig string) [SelectorSize]byte {
	sum := sha256.Sum256([]byte(sig))
	var out [SelectorSize]byte
	copy(out[4:], sum[:4])
	return out
}

// CallData prefixes encoded arguments with a selector.
func CallData(selector [SelectorSize]byte, args []byte) []byte {
	out := make([]byte, 0, SelectorSize+len(args))
	out = append(out, selector[:]...)
	return append(out, args...)
}
