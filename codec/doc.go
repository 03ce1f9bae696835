// Package codec encodes and decodes values in the fixed-layout byte format of
// a word-addressed blockchain virtual machine.
//
// # Wire Format
//
// Words are 8 bytes and integers are big-endian:
//
//	Type            Inline size     Notes
//	──────────────────────────────────────────────────────────────
//	()              8               one zero word
//	bool, u8        8 / 1           1 byte in arrays, vectors and packed mode
//	u16, u32, u64   8               right-aligned in a word
//	u128            16
//	u256, b256      32
//	str[n]          roundup(n, 8)   ASCII, zero-padded on the right
//	[T; n]          n * T           elements back to back, no padding
//	(A, B), struct  sum             each member padded to a word
//	Bytes, String   24              (ptr, cap, len), payload after inline data
//	RawSlice, str   16              (ptr, len), payload after inline data
//	Vec<T>          24              (ptr, cap, len), payload after inline data
//	enum            8 + width       discriminant, left-padded payload
//
// An enum's width is its widest variant rounded to a word; narrower variants
// are zero-padded on the left. Enums whose variants are all () encode as the
// bare discriminant.
//
// # Encoding Flow
//
//  1. Encoder.EncodeUnresolved(values...) → UnresolvedLayout
//  2. UnresolvedLayout.Resolve(base) → []byte, with every dynamic payload
//     placed after the inline data and its pointer patched in
//
// Encoder.Encode does both steps. Decoder.Decode mirrors the traversal and
// follows pointers relative to the same base offset.
//
// # Limits
//
// Every call owns a Limiter built from Config: nesting depth, visited node
// count and enum width are bounded, so adversarial descriptors or input bytes
// fail with a structured error instead of exhausting memory or stack.
//
//	dec := codec.NewDecoder(codec.Config{MaxDepth: 8, MaxTokens: 1000, MaxTotalEnumWidth: 256})
//	v, err := dec.Decode(typ, data)
package codec
