package codec

import (
	stderrors "errors"

	"github.com/wippyai/vm-abi/codec/internal/abi"
	"github.com/wippyai/vm-abi/codec/internal/types"
	"github.com/wippyai/vm-abi/errors"
)

// widthError maps width computation failures onto codec errors.
func widthError(phase errors.Phase, path []string, err error) error {
	kind, detail := errors.KindInvalidData, "invalid type descriptor"
	switch {
	case stderrors.Is(err, types.ErrTooDeep):
		kind, detail = errors.KindDepthExceeded, "type descriptor too deep"
	case stderrors.Is(err, types.ErrWidthOverflow):
		kind, detail = errors.KindOverflow, "encoded width overflows u64"
	}
	e := errors.Wrap(phase, kind, err, detail)
	e.Path = path
	return e
}

// validateType rejects malformed descriptors before any traversal, so the
// walkers can rely on every member being present.
func validateType(phase errors.Phase, t *Type) error {
	err := t.Validate(abi.MaxTypeDepth)
	if err == nil {
		return nil
	}
	kind := errors.KindInvalidInput
	if stderrors.Is(err, types.ErrTooDeep) {
		kind = errors.KindDepthExceeded
	}
	return errors.Wrap(phase, kind, err, "invalid type descriptor")
}
