package codec

import (
	"github.com/wippyai/vm-abi/errors"
)

// Configurables collects constant overrides to be written into a compiled
// binary at fixed offsets. Values are encoded in packed mode.
type Configurables struct {
	enc     *Encoder
	patches []patch
}

type patch struct {
	data   []byte
	offset uint64
}

func NewConfigurables(enc *Encoder) *Configurables {
	if enc == nil {
		enc = NewEncoder(DefaultConfig())
	}
	return &Configurables{enc: enc}
}

// Add encodes v for the constant at offset.
func (c *Configurables) Add(offset uint64, v Value) error {
	data, err := c.enc.EncodePacked(v)
	if err != nil {
		return err
	}
	c.patches = append(c.patches, patch{offset: offset, data: data})
	return nil
}

func (c *Configurables) Len() int { return len(c.patches) }

// Apply returns a copy of binary with every patch written in insertion order.
func (c *Configurables) Apply(binary []byte) ([]byte, error) {
	out := make([]byte, len(binary))
	copy(out, binary)
	for _, p := range c.patches {
		end := p.offset + uint64(len(p.data))
		if end < p.offset || end > uint64(len(out)) {
			return nil, errors.New(errors.PhaseEncode, errors.KindOutOfBounds).
				Value(p.offset).
				Detail("patch of %d bytes at offset %d exceeds binary of %d bytes", len(p.data), p.offset, len(out)).
				Build()
		}
		copy(out[p.offset:end], p.data)
	}
	return out, nil
}
