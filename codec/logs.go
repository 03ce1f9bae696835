package codec

import (
	"slices"
	"strconv"

	"github.com/wippyai/vm-abi/errors"
)

// LogDecoder decodes log payloads by their numeric log id.
type LogDecoder struct {
	dec   *Decoder
	types map[uint64]*Type
}

// NewLogDecoder copies types; later changes to the map are not observed.
func NewLogDecoder(dec *Decoder, types map[uint64]*Type) *LogDecoder {
	if dec == nil {
		dec = NewDecoder(DefaultConfig())
	}
	m := make(map[uint64]*Type, len(types))
	for id, t := range types {
		m[id] = t
	}
	return &LogDecoder{dec: dec, types: m}
}

// IDs returns the registered log ids in ascending order.
func (l *LogDecoder) IDs() []uint64 {
	ids := make([]uint64, 0, len(l.types))
	for id := range l.types {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (l *LogDecoder) Type(id uint64) (*Type, error) {
	t, ok := l.types[id]
	if !ok {
		return nil, errors.NotFound(errors.PhaseDecode, "log id", strconv.FormatUint(id, 10))
	}
	return t, nil
}

func (l *LogDecoder) DecodeLog(id uint64, data []byte) (Value, error) {
	t, err := l.Type(id)
	if err != nil {
		return nil, err
	}
	return l.dec.Decode(t, data)
}

// RenderLog decodes a log and renders it with Debug.
func (l *LogDecoder) RenderLog(id uint64, data []byte) (string, error) {
	t, err := l.Type(id)
	if err != nil {
		return "", err
	}
	v, err := l.dec.Decode(t, data)
	if err != nil {
		return "", err
	}
	return Debug(t, v)
}
