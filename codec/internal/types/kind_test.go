package types

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnit, "unit"},
		{KindBool, "bool"},
		{KindU256, "u256"},
		{KindB256, "b256"},
		{KindRawSlice, "raw_slice"},
		{KindStringArray, "str_array"},
		{KindStringSlice, "str"},
		{KindVector, "vector"},
		{KindEnum, "enum"},
		{Kind(200), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for k := KindUnit; k <= KindEnum; k++ {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), got, ok, k)
		}
	}
	if _, ok := ParseKind("f64"); ok {
		t.Error("ParseKind should reject unknown names")
	}
}

func TestKindClassification(t *testing.T) {
	tests := []struct {
		kind      Kind
		primitive bool
		dynamic   bool
		composite bool
	}{
		{KindUnit, true, false, false},
		{KindU8, true, false, false},
		{KindB256, true, false, false},
		{KindBytes, false, true, false},
		{KindRawSlice, false, true, false},
		{KindString, false, true, false},
		{KindStringSlice, false, true, false},
		{KindStringArray, false, false, false},
		{KindTuple, false, false, true},
		{KindArray, false, false, true},
		{KindVector, false, true, true},
		{KindStruct, false, false, true},
		{KindEnum, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.IsPrimitive(); got != tt.primitive {
				t.Errorf("IsPrimitive = %v, want %v", got, tt.primitive)
			}
			if got := tt.kind.IsDynamic(); got != tt.dynamic {
				t.Errorf("IsDynamic = %v, want %v", got, tt.dynamic)
			}
			if got := tt.kind.IsComposite(); got != tt.composite {
				t.Errorf("IsComposite = %v, want %v", got, tt.composite)
			}
		})
	}

	if !KindU8.IsByteSized() || !KindBool.IsByteSized() || KindU16.IsByteSized() {
		t.Error("only u8 and bool are byte sized")
	}
}
