package abi

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// CoerceToUint64 handles JSON decoded numbers (float64, json.Number) and other numeric types.
func CoerceToUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		// 2^64 itself is representable as float64, so the bound is exclusive
		if v >= 0 && v < float64(math.MaxUint64) && v == math.Trunc(v) {
			return uint64(v), true
		}
	case float32:
		if v >= 0 && float64(v) < float64(math.MaxUint64) && float64(v) == math.Trunc(float64(v)) {
			return uint64(v), true
		}
	case json.Number:
		if n, err := strconv.ParseUint(v.String(), 0, 64); err == nil {
			return n, true
		}
	case string:
		if n, err := strconv.ParseUint(strings.TrimSpace(v), 0, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// CoerceToUint256 accepts anything CoerceToUint64 does plus decimal or 0x-prefixed
// strings, json.Number, *big.Int and uint256 values.
func CoerceToUint256(value any) (*uint256.Int, bool) {
	switch v := value.(type) {
	case *uint256.Int:
		if v == nil {
			return nil, false
		}
		return new(uint256.Int).Set(v), true
	case uint256.Int:
		return new(uint256.Int).Set(&v), true
	case *big.Int:
		if v == nil || v.Sign() < 0 {
			return nil, false
		}
		out, overflow := uint256.FromBig(v)
		return out, !overflow
	case string:
		return parseBigString(v)
	case json.Number:
		return parseBigString(v.String())
	}
	if n, ok := CoerceToUint64(value); ok {
		return uint256.NewInt(n), true
	}
	return nil, false
}

func parseBigString(s string) (*uint256.Int, bool) {
	b, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
	if !ok || b.Sign() < 0 {
		return nil, false
	}
	out, overflow := uint256.FromBig(b)
	return out, !overflow
}

// FitsBits reports whether x is representable in the given number of bits.
func FitsBits(x *uint256.Int, bits int) bool {
	return x.BitLen() <= bits
}
