package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // values to unresolved layout
	PhaseResolve  Phase = "resolve"  // pointer resolution
	PhaseDecode   Phase = "decode"   // bytes to values
	PhaseValidate Phase = "validate" // descriptor and value checks
	PhaseCoerce   Phase = "coerce"   // Go natives to values
	PhaseConfig   Phase = "config"   // limits configuration
	PhaseConvert  Phase = "convert"  // foreign type systems to descriptors
	PhaseCLI      Phase = "cli"      // command line tooling
)

// Kind categorizes the error
type Kind string

const (
	KindDepthExceeded       Kind = "depth_exceeded"
	KindTokenCountExceeded  Kind = "token_count_exceeded"
	KindEnumWidthExceeded   Kind = "enum_width_exceeded"
	KindInsufficientBytes   Kind = "insufficient_bytes"
	KindUnknownDiscriminant Kind = "unknown_discriminant"
	KindInvalidText         Kind = "invalid_text"
	KindOverflow            Kind = "overflow"
	KindTypeMismatch        Kind = "type_mismatch"
	KindInvalidData         Kind = "invalid_data"
	KindInvalidInput        Kind = "invalid_input"
	KindUnsupported         Kind = "unsupported"
	KindNotFound            Kind = "not_found"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindPayloadExceeded     Kind = "payload_budget_exceeded"
)

// Error is the structured error type used throughout the SDK
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	AbiType string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.AbiType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.AbiType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", ABI type ")
			b.WriteString(e.AbiType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("ABI type ")
			b.WriteString(e.AbiType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.AbiType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether any *Error in err's chain has the given kind, regardless of phase.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}

// KindOf returns the kind of the outermost *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// AbiType sets the type descriptor name
func (b *Builder) AbiType(t string) *Builder {
	b.err.AbiType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, abiType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		GoType:  goType,
		AbiType: abiType,
	}
}

// DepthExceeded creates a nesting depth error
func DepthExceeded(phase Phase, path []string, maxDepth uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDepthExceeded,
		Path:   path,
		Detail: fmt.Sprintf("nesting depth exceeds the maximum of %d", maxDepth),
		Value:  maxDepth,
	}
}

// TokenCountExceeded creates a node count error
func TokenCountExceeded(phase Phase, path []string, maxTokens uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTokenCountExceeded,
		Path:   path,
		Detail: fmt.Sprintf("token count exceeds the maximum of %d", maxTokens),
		Value:  maxTokens,
	}
}

// EnumWidthExceeded creates an enum width error
func EnumWidthExceeded(phase Phase, path []string, enumType string, width, maxWidth uint64) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindEnumWidthExceeded,
		Path:    path,
		AbiType: enumType,
		Detail:  fmt.Sprintf("enum width %d exceeds the maximum of %d bytes", width, maxWidth),
		Value:   width,
	}
}

// InsufficientBytes creates a short input error
func InsufficientBytes(phase Phase, path []string, abiType string, offset, want uint64, have int) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindInsufficientBytes,
		Path:    path,
		AbiType: abiType,
		Detail:  fmt.Sprintf("need %d bytes at offset %d, have %d", want, offset, have),
	}
}

// UnknownDiscriminant creates an invalid discriminant error for enums
func UnknownDiscriminant(phase Phase, path []string, enumType string, disc uint64, numVariants int) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindUnknownDiscriminant,
		Path:    path,
		AbiType: enumType,
		Detail:  fmt.Sprintf("discriminant %d out of range (%d variants)", disc, numVariants),
		Value:   disc,
	}
}

// InvalidText creates an error for text that is not valid UTF-8 or ASCII
func InvalidText(phase Phase, path []string, abiType string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:   phase,
		Kind:    KindInvalidText,
		Path:    path,
		AbiType: abiType,
		Detail:  fmt.Sprintf("invalid %s content: %x", abiType, preview),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// PayloadExceeded creates an error for dynamic payloads that add up to more
// bytes than the input holds, which only overlapping or repeated pointers produce.
func PayloadExceeded(phase Phase, path []string, abiType string, want, remaining uint64) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindPayloadExceeded,
		Path:    path,
		AbiType: abiType,
		Detail:  fmt.Sprintf("payload of %d bytes exceeds the remaining budget of %d", want, remaining),
		Value:   want,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindOverflow,
		Path:    path,
		AbiType: targetType,
		Detail:  fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:   value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
