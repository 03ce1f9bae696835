// Package abi provides internal utilities for VM ABI encoding/decoding.
//
// This package contains word arithmetic, overflow-checked math, text checks
// and Go-native coercion helpers used by the codec package.
//
// # Contents
//
//   - helpers.go: word alignment, padding and overflow-safe arithmetic
//   - coerce.go: coercion of Go natives (including JSON numbers) to integers
//
// This package is internal to the codec.
package abi
