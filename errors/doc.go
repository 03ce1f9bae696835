// Package errors provides structured error types for the vm-abi SDK.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: value path, Go/ABI type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("arg[0]", "owner").
//		GoType("string").
//		AbiType("u64").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseEncode, path, "string", "u64")
//	err := errors.InsufficientBytes(errors.PhaseDecode, path, "u32", 0, 8, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
// IsKind matches a Kind anywhere in the chain regardless of phase.
package errors
