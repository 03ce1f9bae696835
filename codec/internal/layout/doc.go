// Package layout caches the inline widths of type descriptors.
//
// Width rules live on the descriptors themselves (types.Type.RawWidth and
// friends); the Calculator memoises them per descriptor pointer and mode in a
// bounded LRU so that shared encoders and decoders do not recompute enum
// widths on every value.
//
// # Usage
//
//	c := layout.NewCalculator(layout.DefaultCacheSize)
//	info, err := c.Calculate(typ, false)
//	// info.Raw, info.Element, info.Member, info.Payload
//
// This package is internal to the codec.
package layout
