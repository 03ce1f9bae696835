package types

// EnumVariants is the ordered variant list of an enum. The position of a
// variant is its discriminant.
type EnumVariants struct {
	variants []Field
}

func NewEnumVariants(variants ...Field) *EnumVariants {
	return &EnumVariants{variants: append([]Field(nil), variants...)}
}

func (v *EnumVariants) Len() int {
	if v == nil {
		return 0
	}
	return len(v.variants)
}

// Variant returns the variant selected by disc.
func (v *EnumVariants) Variant(disc uint64) (Field, bool) {
	if v == nil || disc >= uint64(len(v.variants)) {
		return Field{}, false
	}
	return v.variants[disc], true
}

// Index returns the discriminant of the variant called name.
func (v *EnumVariants) Index(name string) (uint64, bool) {
	if v == nil {
		return 0, false
	}
	for i, f := range v.variants {
		if f.Name == name {
			return uint64(i), true
		}
	}
	return 0, false
}

// All returns a copy of the variant list.
func (v *EnumVariants) All() []Field {
	if v == nil {
		return nil
	}
	return append([]Field(nil), v.variants...)
}

func (v *EnumVariants) Names() []string {
	if v == nil {
		return nil
	}
	names := make([]string, len(v.variants))
	for i, f := range v.variants {
		names[i] = f.Name
	}
	return names
}

// OnlyUnits reports whether every variant carries a Unit payload. Such enums
// encode as the bare discriminant.
func (v *EnumVariants) OnlyUnits() bool {
	if v == nil {
		return true
	}
	for _, f := range v.variants {
		if f.Type == nil || f.Type.Kind != KindUnit {
			return false
		}
	}
	return true
}
