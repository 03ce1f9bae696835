package layout

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wippyai/vm-abi/codec/internal/types"
)

const DefaultCacheSize = 1024

var ErrUnknownVariant = errors.New("discriminant out of range")

// Info holds the widths of one descriptor in one mode.
type Info struct {
	Raw     uint64 // member context
	Element uint64 // element context
	Member  uint64 // Raw rounded up to a word
	Payload uint64 // enums only: padded payload width, 0 for all-unit enums
}

type key struct {
	t      *types.Type
	packed bool
}

type enumKey struct {
	v      *types.EnumVariants
	packed bool
}

// Calculator is safe for concurrent use.
type Calculator struct {
	cache *lru.Cache[key, Info]
	enums *lru.Cache[enumKey, uint64]
}

func NewCalculator(size int) *Calculator {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[key, Info](size)
	if err != nil {
		// only reachable with a non-positive size
		panic(err)
	}
	enums, err := lru.New[enumKey, uint64](size)
	if err != nil {
		panic(err)
	}
	return &Calculator{cache: cache, enums: enums}
}

// Calculate returns the widths of t. Composite descriptors are cached by
// pointer; scalar and heap leaves are sized directly, since their widths
// depend on the kind alone.
func (c *Calculator) Calculate(t *types.Type, packed bool) (Info, error) {
	if t != nil && !t.Kind.IsComposite() && t.Kind != types.KindStringArray {
		return c.compute(t, packed)
	}

	k := key{t: t, packed: packed}
	if info, ok := c.cache.Get(k); ok {
		return info, nil
	}
	info, err := c.compute(t, packed)
	if err != nil {
		return Info{}, err
	}
	c.cache.Add(k, info)
	return info, nil
}

func (c *Calculator) compute(t *types.Type, packed bool) (Info, error) {
	var info Info
	var err error
	if info.Raw, err = t.RawWidth(packed, false); err != nil {
		return Info{}, err
	}
	if info.Element, err = t.RawWidth(packed, true); err != nil {
		return Info{}, err
	}
	if info.Member, err = t.MemberWidth(packed); err != nil {
		return Info{}, err
	}
	if t.Kind == types.KindEnum {
		if info.Payload, err = c.EnumWidth(t.Variants, packed); err != nil {
			return Info{}, err
		}
	}
	return info, nil
}

// EnumWidth returns the padded payload width of an enum with variants v.
func (c *Calculator) EnumWidth(v *types.EnumVariants, packed bool) (uint64, error) {
	k := enumKey{v: v, packed: packed}
	if w, ok := c.enums.Get(k); ok {
		return w, nil
	}
	w, err := v.Width(packed)
	if err != nil {
		return 0, err
	}
	c.enums.Add(k, w)
	return w, nil
}

// EnumPadding returns the left padding written before the payload of variant
// disc so that every variant of v occupies the same width.
func (c *Calculator) EnumPadding(v *types.EnumVariants, disc uint64, packed bool) (uint64, error) {
	variant, ok := v.Variant(disc)
	if !ok {
		return 0, ErrUnknownVariant
	}
	width, err := c.EnumWidth(v, packed)
	if err != nil {
		return 0, err
	}
	if width == 0 {
		return 0, nil
	}
	payload, err := c.Calculate(variant.Type, packed)
	if err != nil {
		return 0, err
	}
	return width - payload.Raw, nil
}

func (c *Calculator) Len() int {
	return c.cache.Len()
}
